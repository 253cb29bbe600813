package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/pvilarim/ecomdash-api/infrastructure/repository"
	"github.com/pvilarim/ecomdash-api/internal/domain"
	"github.com/pvilarim/ecomdash-api/pkg/apiErrors"
)

type UpsertProductCostRequest struct {
	ProductName string  `json:"product_name"`
	UnitCost    float64 `json:"unit_cost"`
}

// ListProductCosts lista a tabela de custos por SKU
func ListProductCosts(repo repository.ProductCostRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		costs, err := repo.ListAll()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar tabela de custos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(costs); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// UpsertProductCost grava o custo unitário de um SKU. Atualizações
// sobrescrevem a entrada anterior.
func UpsertProductCost(repo repository.ProductCostRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpsertProductCost")

		sku := httprouter.ParamsFromContext(r.Context()).ByName("sku")
		if sku == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "SKU não fornecido", nil)
			return
		}

		var req UpsertProductCostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.UnitCost < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Custo unitário não pode ser negativo", nil)
			return
		}

		cost := &domain.ProductCost{
			SKU:         sku,
			ProductName: req.ProductName,
			UnitCost:    req.UnitCost,
			UpdatedAt:   time.Now(),
		}

		if err := repo.Upsert(cost); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar custo do produto", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(cost); err != nil {
			logrus.Error(err)
		}
	}
}
