package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/middleware"
	"TRAVELBUDDY_BACK-END/internal/services"
	"TRAVELBUDDY_BACK-END/internal/utils"
)

// statusFor maps a rule-engine error kind to its HTTP status
func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindForbidden, services.KindQuotaExceeded:
		return http.StatusForbidden
	case services.KindInvalidInput, services.KindInvalidSignature:
		return http.StatusBadRequest
	case services.KindInvalidState, services.KindConflict:
		return http.StatusConflict
	case services.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError renders err as a dto.ErrorResponse. Internal causes are
// logged and never echoed to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	kind := services.KindOf(err)
	status := statusFor(kind)

	message := "Internal server error"
	var se *services.Error
	if errors.As(err, &se) && kind != services.KindInternal {
		message = se.Message
	}
	if status == http.StatusInternalServerError {
		log.Printf("Error %s: %v (path=%s)", action, err, r.URL.Path)
	}
	utils.WriteErrorResponse(w, status, string(kind), message)
}

// callerID returns the authenticated user id or writes a 401
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a chi URL parameter or writes a 400
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid "+name, name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes and validates a JSON body or writes a 400
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := utils.DecodeJSONRequest(w, r, v); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}
