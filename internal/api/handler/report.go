package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/pvilarim/ecomdash-api/internal/domain"
	"github.com/pvilarim/ecomdash-api/internal/usecases/reporting"
	"github.com/pvilarim/ecomdash-api/pkg/apiErrors"
	"github.com/pvilarim/ecomdash-api/pkg/log"
	"github.com/pvilarim/ecomdash-api/pkg/utils"
)

// GetReportSummary retorna o resumo de métricas e a série de receita do período
func GetReportSummary(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"start_date": r.URL.Query().Get("start_date"),
				"error":      err.Error(),
			}).Warn("reports: invalid start_date parameter")

			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"end_date": r.URL.Query().Get("end_date"),
				"error":    err.Error(),
			}).Warn("reports: invalid end_date parameter")

			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filters := &domain.ReportFilters{
			StartDate: startDate,
			EndDate:   endDate,
		}

		logger.WithFields(log.Fields{
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Debug("reports: building summary with filters")

		report, err := service.GetSummary(filters)
		if err != nil {
			logger.WithFields(log.Fields{
				"start_date": startDate.Format(time.DateOnly),
				"end_date":   endDate.Format(time.DateOnly),
				"error":      err.Error(),
			}).Error("reports: failed to build summary")

			// Filtro inválido é erro do cliente; qualquer outra falha é do servidor.
			if errors.Is(err, reporting.ErrMissingPeriod) || errors.Is(err, reporting.ErrInvalidPeriod) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular o resumo do período", nil)
			return
		}

		logger.WithFields(log.Fields{
			"revenue_source": report.RevenueSource,
			"orders_count":   report.Summary.OrdersCount,
		}).Info("reports: summary built successfully")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithField("error", err.Error()).Error("reports: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
