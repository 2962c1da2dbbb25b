package controllers

import (
	"net/http"

	"github.com/vestiplan/vestiplan-backend/api/responses"
	"github.com/vestiplan/vestiplan-backend/api/validators"
	analysissvc "github.com/vestiplan/vestiplan-backend/internal/analysis"
	"github.com/vestiplan/vestiplan-backend/pkg/logger"
)

// AnalyzeImage handles POST /v1/analysis/image. The result pre-fills the
// listing form client side; nothing is persisted here.
func AnalyzeImage(svc analysissvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := authedUserID(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload analyzeImageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AnalyzeImages(r.Context(), payload.ImageURLs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type analyzeImageRequest struct {
	ImageURLs []string `json:"image_urls" validate:"required,min=1,dive,url"`
}
