package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/dto"
	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/services"
	"TRAVELBUDDY_BACK-END/internal/utils"
)

// ConnectionsHandler manages peer connection requests
type ConnectionsHandler struct {
	connections *services.ConnectionService
}

func NewConnectionsHandler(connections *services.ConnectionService) *ConnectionsHandler {
	return &ConnectionsHandler{connections: connections}
}

// SendRequest handles POST /api/connections
// @Summary Send a connection request
// @Description Counts against the caller's monthly connection request quota
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SendConnectionRequest true "Receiver"
// @Success 201 {object} dto.ConnectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Monthly quota reached"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already connected or pending"
// @Router /api/connections [post]
func (h *ConnectionsHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req dto.SendConnectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid receiver_id", "receiver_id must be a valid UUID")
		return
	}

	conn, err := h.connections.SendRequest(r.Context(), userID, receiverID)
	if err != nil {
		writeServiceError(w, r, "sending connection request", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toConnectionResponse(conn))
}

// Respond handles PATCH /api/connections/{id}
// @Summary Accept or reject a connection request
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Connection ID"
// @Param payload body dto.RespondConnectionRequest true "Decision"
// @Success 200 {object} dto.ConnectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Not the receiver"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/connections/{id} [patch]
func (h *ConnectionsHandler) Respond(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	connID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dto.RespondConnectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	conn, err := h.connections.RespondToRequest(r.Context(), userID, connID, models.ConnectionStatus(req.Status))
	if err != nil {
		writeServiceError(w, r, "responding to connection request", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toConnectionResponse(conn))
}

// Delete handles DELETE /api/connections/{id}
// @Summary Remove a connection or withdraw a request
// @Tags connections
// @Security BearerAuth
// @Param id path string true "Connection ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/connections/{id} [delete]
func (h *ConnectionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	connID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.connections.DeleteConnection(r.Context(), connID, userID); err != nil {
		writeServiceError(w, r, "deleting connection", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Buddies handles GET /api/connections/buddies
// @Summary List accepted connections
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.BuddyResponse
// @Router /api/connections/buddies [get]
func (h *ConnectionsHandler) Buddies(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	buddies, err := h.connections.GetMyBuddies(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "listing buddies", err)
		return
	}
	out := make([]dto.BuddyResponse, 0, len(buddies))
	for _, b := range buddies {
		out = append(out, dto.BuddyResponse{
			ConnectionID: b.ConnectionID.String(),
			User:         *toUserSummary(b.UserSummary),
			Since:        formatTime(b.Since),
		})
	}
	utils.WriteJSONResponse(w, http.StatusOK, out)
}

// Incoming handles GET /api/connections/incoming
// @Summary List pending requests sent to me
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ConnectionResponse
// @Router /api/connections/incoming [get]
func (h *ConnectionsHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	views, err := h.connections.GetIncomingRequests(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "listing incoming requests", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toConnectionViews(views))
}

// Sent handles GET /api/connections/sent
// @Summary List pending requests I sent
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ConnectionResponse
// @Router /api/connections/sent [get]
func (h *ConnectionsHandler) Sent(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	views, err := h.connections.GetSentRequests(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "listing sent requests", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toConnectionViews(views))
}
