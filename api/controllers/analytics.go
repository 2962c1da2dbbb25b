package controllers

import (
	"net/http"
	"strings"

	"github.com/vestiplan/vestiplan-backend/api/responses"
	analyticssvc "github.com/vestiplan/vestiplan-backend/internal/analytics"
	"github.com/vestiplan/vestiplan-backend/pkg/logger"
)

// SalesAnalytics handles GET /v1/analytics/sales?range=30d.
func SalesAnalytics(svc analyticssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rangeKey := strings.TrimSpace(r.URL.Query().Get("range"))
		report, err := svc.SalesReport(r.Context(), userID, rangeKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
