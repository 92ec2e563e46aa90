package handlers

import (
	"net/http"

	"TRAVELBUDDY_BACK-END/internal/dto"
	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/services"
	"TRAVELBUDDY_BACK-END/internal/utils"
)

// AdminHandler exposes moderation endpoints
type AdminHandler struct {
	users *services.UserService
}

func NewAdminHandler(users *services.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// SetUserStatus godoc
// @Summary      Ban or restore a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "User ID"
// @Param        request  body      dto.UpdateUserStatusRequest  true  "new status"
// @Success      200      {object}  dto.UserResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/status [patch]
func (h *AdminHandler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	adminID, ok := callerID(w, r)
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.users.SetUserStatus(r.Context(), adminID, userID, models.UserStatus(req.Status))
	if err != nil {
		writeServiceError(w, r, "updating user status", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toUserResponse(u))
}
