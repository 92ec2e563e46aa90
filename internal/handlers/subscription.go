package handlers

import (
	"net/http"

	"TRAVELBUDDY_BACK-END/internal/dto"
	"TRAVELBUDDY_BACK-END/internal/services"
	"TRAVELBUDDY_BACK-END/internal/utils"
)

// SubscriptionHandler reports entitlement state
type SubscriptionHandler struct {
	entitlements *services.EntitlementService
}

func NewSubscriptionHandler(entitlements *services.EntitlementService) *SubscriptionHandler {
	return &SubscriptionHandler{entitlements: entitlements}
}

// Get handles GET /api/subscription
// @Summary My tier, limits and usage
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/subscription [get]
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	s, err := h.entitlements.Summary(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "loading subscription", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.SubscriptionResponse{
		Tier:                   string(s.Tier),
		SubscriptionType:       s.SubscriptionType,
		ExpiresAt:              formatTimePtr(s.ExpiresAt),
		Premium:                s.Premium,
		TravelPlans:            toQuota(s.PlanQuota, s.PlansUsed),
		ConnectionRequests:     toQuota(s.ConnectionQuota, s.ConnectionsUsed),
		ConnectionWindowOpened: formatTime(s.ConnectionWindowOpened),
	})
}
