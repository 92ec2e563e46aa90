package handlers

import (
	"net/http"

	"TRAVELBUDDY_BACK-END/internal/dto"
	"TRAVELBUDDY_BACK-END/internal/services"
	"TRAVELBUDDY_BACK-END/internal/utils"
)

type ProfileHandler struct {
	users *services.UserService
}

func NewProfileHandler(users *services.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// GetMe godoc
// @Summary      Get my profile
// @Description  Returns the caller's account, subscription state and rating
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	u, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "loading profile", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toUserResponse(u))
}

// Update godoc
// @Summary      Update my profile
// @Description  Partial update: only provided fields change
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.UpdateProfileRequest  true  "fields to update"
// @Success      200      {object}  dto.UserResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), userID, services.ProfileInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	})
	if err != nil {
		writeServiceError(w, r, "updating profile", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toUserResponse(u))
}
