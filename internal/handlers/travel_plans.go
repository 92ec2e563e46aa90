package handlers

import (
	"net/http"
	"strings"

	"TRAVELBUDDY_BACK-END/internal/dto"
	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/services"
	"TRAVELBUDDY_BACK-END/internal/utils"
)

// TravelPlansHandler manages travel plans and their join requests
type TravelPlansHandler struct {
	plans *services.TravelPlanService
}

// NewTravelPlansHandler creates a new TravelPlansHandler
func NewTravelPlansHandler(plans *services.TravelPlanService) *TravelPlansHandler {
	return &TravelPlansHandler{plans: plans}
}

// planInput parses dates and enum fields of a plan payload
func planInput(w http.ResponseWriter, req *dto.TravelPlanRequest) (services.PlanInput, bool) {
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid start_date", err.Error())
		return services.PlanInput{}, false
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid end_date", err.Error())
		return services.PlanInput{}, false
	}
	return services.PlanInput{
		Destination: req.Destination,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Budget:      req.Budget,
		TravelType:  models.TravelType(req.TravelType),
		Visibility:  models.Visibility(req.Visibility),
	}, true
}

// CreatePlan handles POST /api/travel-plans
// @Summary Create a travel plan
// @Description Counts against the caller's subscription plan quota
// @Tags travel-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.TravelPlanRequest true "Travel plan payload"
// @Success 201 {object} dto.TravelPlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Plan quota reached"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/travel-plans [post]
func (h *TravelPlansHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req dto.TravelPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	in, ok := planInput(w, &req)
	if !ok {
		return
	}

	plan, err := h.plans.CreatePlan(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, "creating travel plan", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toTravelPlanResponse(plan))
}

// ListPlans handles GET /api/travel-plans
// @Summary List public travel plans
// @Tags travel-plans
// @Produce json
// @Security BearerAuth
// @Param destination query string false "case-insensitive substring match"
// @Param limit query int false "default 20 (max 100)"
// @Param offset query int false "default 0"
// @Success 200 {object} dto.TravelPlanListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/travel-plans [get]
func (h *TravelPlansHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	destination := strings.TrimSpace(r.URL.Query().Get("destination"))
	page, err := h.plans.ListPlans(r.Context(), destination, utils.QueryInt(r, "limit", 0), utils.QueryInt(r, "offset", 0))
	if err != nil {
		writeServiceError(w, r, "listing travel plans", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTravelPlanList(page))
}

// ListMyPlans handles GET /api/travel-plans/mine
// @Summary List my travel plans
// @Tags travel-plans
// @Produce json
// @Security BearerAuth
// @Param limit query int false "default 20 (max 100)"
// @Param offset query int false "default 0"
// @Success 200 {object} dto.TravelPlanListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/travel-plans/mine [get]
func (h *TravelPlansHandler) ListMyPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	page, err := h.plans.ListMyPlans(r.Context(), userID, utils.QueryInt(r, "limit", 0), utils.QueryInt(r, "offset", 0))
	if err != nil {
		writeServiceError(w, r, "listing own travel plans", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTravelPlanList(page))
}

// GetPlan handles GET /api/travel-plans/{id}
// @Summary Get a travel plan
// @Description Private plans are visible to their host, requesters and admins only
// @Tags travel-plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Travel plan ID"
// @Success 200 {object} dto.TravelPlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/travel-plans/{id} [get]
func (h *TravelPlansHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	planID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	plan, err := h.plans.GetPlan(r.Context(), userID, planID)
	if err != nil {
		writeServiceError(w, r, "loading travel plan", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTravelPlanResponse(plan))
}

// UpdatePlan handles PUT /api/travel-plans/{id}
// @Summary Replace a travel plan
// @Tags travel-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Travel plan ID"
// @Param payload body dto.TravelPlanRequest true "Travel plan payload"
// @Success 200 {object} dto.TravelPlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/travel-plans/{id} [put]
func (h *TravelPlansHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	planID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dto.TravelPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	in, ok := planInput(w, &req)
	if !ok {
		return
	}

	plan, err := h.plans.UpdatePlan(r.Context(), userID, planID, in)
	if err != nil {
		writeServiceError(w, r, "updating travel plan", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTravelPlanResponse(plan))
}

// DeletePlan handles DELETE /api/travel-plans/{id}
// @Summary Delete a travel plan
// @Description Removes the plan with its join requests and reviews, and recomputes the host's rating
// @Tags travel-plans
// @Security BearerAuth
// @Param id path string true "Travel plan ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/travel-plans/{id} [delete]
func (h *TravelPlansHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	planID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.plans.DeletePlan(r.Context(), userID, planID); err != nil {
		writeServiceError(w, r, "deleting travel plan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RequestJoin handles POST /api/travel-plans/{id}/join
// @Summary Ask to join a trip
// @Tags travel-plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Travel plan ID"
// @Success 201 {object} dto.JoinRequestResponse
// @Failure 400 {object} dto.ErrorResponse "Own trip"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already requested"
// @Router /api/travel-plans/{id}/join [post]
func (h *TravelPlansHandler) RequestJoin(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	planID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	buddy, err := h.plans.RequestJoinTrip(r.Context(), planID, userID)
	if err != nil {
		writeServiceError(w, r, "requesting to join trip", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toJoinRequestResponse(buddy))
}

// ListJoinRequests handles GET /api/travel-plans/{id}/requests
// @Summary List join requests for my trip
// @Tags travel-plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Travel plan ID"
// @Success 200 {array} dto.JoinRequestResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/travel-plans/{id}/requests [get]
func (h *TravelPlansHandler) ListJoinRequests(w http.ResponseWriter, r *http.Request) {
	hostID, ok := callerID(w, r)
	if !ok {
		return
	}
	planID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	views, err := h.plans.ListJoinRequests(r.Context(), planID, hostID)
	if err != nil {
		writeServiceError(w, r, "listing join requests", err)
		return
	}
	out := make([]dto.JoinRequestResponse, 0, len(views))
	for i := range views {
		resp := toJoinRequestResponse(&views[i].TravelBuddy)
		resp.User = toUserSummary(views[i].User)
		out = append(out, resp)
	}
	utils.WriteJSONResponse(w, http.StatusOK, out)
}

// UpdateJoinRequest handles PATCH /api/travel-buddies/{id}
// @Summary Approve or reject a join request
// @Tags travel-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Travel buddy ID"
// @Param payload body dto.UpdateJoinRequestRequest true "Decision"
// @Success 200 {object} dto.JoinRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already decided"
// @Router /api/travel-buddies/{id} [patch]
func (h *TravelPlansHandler) UpdateJoinRequest(w http.ResponseWriter, r *http.Request) {
	hostID, ok := callerID(w, r)
	if !ok {
		return
	}
	buddyID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateJoinRequestRequest
	if !decodeBody(w, r, &req) {
		return
	}
	buddy, err := h.plans.UpdateJoinRequestStatus(r.Context(), buddyID, hostID, models.BuddyStatus(req.Status))
	if err != nil {
		writeServiceError(w, r, "updating join request", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toJoinRequestResponse(buddy))
}
