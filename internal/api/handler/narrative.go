package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pvilarim/ecomdash-api/internal/domain"
	"github.com/pvilarim/ecomdash-api/internal/usecases/narrating"
	"github.com/pvilarim/ecomdash-api/pkg/log"
	"github.com/pvilarim/ecomdash-api/pkg/utils"
)

type NarrativeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// GenerateNarrative gera a análise narrativa das métricas do período
func GenerateNarrative(service narrating.Narrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req NarrativeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithField("error", err.Error()).Warn("narrative: invalid request body")

			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		startDate, err := utils.ParseDate(req.StartDate)
		if err != nil {
			logger.WithFields(log.Fields{
				"start_date": req.StartDate,
				"error":      err.Error(),
			}).Warn("narrative: invalid start_date parameter")

			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		endDate, err := utils.ParseDate(req.EndDate)
		if err != nil {
			logger.WithFields(log.Fields{
				"end_date": req.EndDate,
				"error":    err.Error(),
			}).Warn("narrative: invalid end_date parameter")

			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filters := &domain.ReportFilters{
			StartDate: startDate,
			EndDate:   endDate,
		}

		response, err := service.GenerateNarrative(filters)
		if err != nil {
			logger.WithField("error", err.Error()).Error("narrative: failed to generate narrative")

			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		logger.WithField("generated", response.Generated).Info("narrative: narrative ready")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithField("error", err.Error()).Error("narrative: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
