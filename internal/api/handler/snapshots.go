package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pvilarim/ecomdash-api/infrastructure/repository"
	"github.com/pvilarim/ecomdash-api/pkg/log"
	"github.com/pvilarim/ecomdash-api/pkg/utils"
)

// GetSnapshotHistory retorna os snapshots diários já consolidados pelo
// agendador. Com o parâmetro "date" retorna o snapshot de um único dia;
// com "start_date" e "end_date" retorna o histórico do período.
func GetSnapshotHistory(repo repository.StatsSnapshotRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			date, err := utils.ParseDate(dateStr)
			if err != nil {
				logger.WithFields(log.Fields{
					"date":  dateStr,
					"error": err.Error(),
				}).Warn("snapshots: invalid date parameter")

				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			snapshot, err := repo.GetByDate(*date)
			if err != nil {
				logger.WithField("error", err.Error()).Error("snapshots: failed to load snapshot")

				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if snapshot == nil {
				http.Error(w, "snapshot não encontrado para a data informada", http.StatusNotFound)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(snapshot); err != nil {
				logger.WithField("error", err.Error()).Error("snapshots: failed to encode response")

				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"start_date": r.URL.Query().Get("start_date"),
				"error":      err.Error(),
			}).Warn("snapshots: invalid start_date parameter")

			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"end_date": r.URL.Query().Get("end_date"),
				"error":    err.Error(),
			}).Warn("snapshots: invalid end_date parameter")

			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if startDate.IsZero() || endDate.IsZero() {
			http.Error(w, "é necessário informar as datas de início e fim", http.StatusBadRequest)
			return
		}

		snapshots, err := repo.GetByDateRange(*startDate, *endDate)
		if err != nil {
			logger.WithFields(log.Fields{
				"start_date": startDate.Format(time.DateOnly),
				"end_date":   endDate.Format(time.DateOnly),
				"error":      err.Error(),
			}).Error("snapshots: failed to load snapshot history")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		logger.WithFields(log.Fields{
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Info("snapshots: history loaded successfully")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshots); err != nil {
			logger.WithField("error", err.Error()).Error("snapshots: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
