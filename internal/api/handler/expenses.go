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
	"github.com/pvilarim/ecomdash-api/pkg/utils"
)

type CreateExpenseRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
}

// ListExpenses lista todas as despesas manuais
func ListExpenses(repo repository.ExpenseRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenses, err := repo.ListAll()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar despesas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(expenses); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// CreateExpense registra uma nova despesa manual
func CreateExpense(repo repository.ExpenseRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateExpense")

		var req CreateExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.Category == "" || req.Amount <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Categoria e valor positivo são obrigatórios", nil)
			return
		}

		id, err := utils.GenerateID()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador da despesa", nil)
			return
		}

		expense := &domain.Expense{
			ID:        id,
			Category:  req.Category,
			Amount:    req.Amount,
			Note:      req.Note,
			CreatedAt: time.Now(),
		}

		if err := repo.Insert(expense); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar despesa", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(expense); err != nil {
			logrus.Error(err)
		}
	}
}

// DeleteExpense remove uma despesa manual pelo ID
func DeleteExpense(repo repository.ExpenseRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteExpense")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da despesa não fornecido", nil)
			return
		}

		if err := repo.Delete(id); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover despesa", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
