package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vestiplan/vestiplan-backend/api/responses"
	suggestionsvc "github.com/vestiplan/vestiplan-backend/internal/suggestions"
	pkgerrors "github.com/vestiplan/vestiplan-backend/pkg/errors"
	"github.com/vestiplan/vestiplan-backend/pkg/logger"
)

// ListSuggestions handles GET /v1/suggestions.
func ListSuggestions(svc suggestionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		suggestions, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, suggestions)
	}
}

// GenerateSuggestions handles POST /v1/suggestions/generate.
func GenerateSuggestions(svc suggestionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Generate(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AcceptSuggestion handles POST /v1/suggestions/{id}/accept.
func AcceptSuggestion(svc suggestionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, suggestionID, err := authedUserAndSuggestion(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		suggestion, err := svc.Accept(r.Context(), userID, suggestionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, suggestion)
	}
}

// RejectSuggestion handles POST /v1/suggestions/{id}/reject.
func RejectSuggestion(svc suggestionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, suggestionID, err := authedUserAndSuggestion(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		suggestion, err := svc.Reject(r.Context(), userID, suggestionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, suggestion)
	}
}

func authedUserAndSuggestion(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	userID, err := authedUserID(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	suggestionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid suggestion id")
	}
	return userID, suggestionID, nil
}
