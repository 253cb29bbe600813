package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pvilarim/ecomdash-api/internal/usecases/ingesting"
	"github.com/pvilarim/ecomdash-api/pkg/apiErrors"
	"github.com/pvilarim/ecomdash-api/pkg/log"
)

// Limite do corpo da requisição de upload. Exports de loja ficam bem abaixo.
const maxUploadSize = 20 << 20 // 20 MB

// UploadReport recebe um arquivo CSV e importa os registros do tipo informado
func UploadReport(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		uploadType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		logger.WithField("upload_type", uploadType).Info("uploads: receiving report file")

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			logger.WithFields(log.Fields{
				"upload_type": uploadType,
				"error":       err.Error(),
			}).Warn("uploads: invalid multipart form")

			apiErrors.WriteError(w, apiErrors.ErrInvalidUpload, "Arquivo de upload inválido", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			logger.WithFields(log.Fields{
				"upload_type": uploadType,
				"error":       err.Error(),
			}).Warn("uploads: missing file field")

			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo 'file' é obrigatório", nil)
			return
		}
		defer file.Close()

		result, err := service.Ingest(uploadType, file)
		if err != nil {
			logger.WithFields(log.Fields{
				"upload_type": uploadType,
				"filename":    header.Filename,
				"error":       err.Error(),
			}).Error("uploads: failed to ingest report file")

			apiErrors.WriteError(w, apiErrors.ErrInvalidUpload, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"upload_type": uploadType,
			"filename":    header.Filename,
			"imported":    result.Imported,
			"failed":      result.Failed,
		}).Info("uploads: report file ingested")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithField("error", err.Error()).Error("uploads: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
