package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/dto"
	"TRAVELBUDDY_BACK-END/internal/services"
	"TRAVELBUDDY_BACK-END/internal/utils"
)

// ReviewsHandler manages post-trip reviews
type ReviewsHandler struct {
	reviews *services.ReviewService
}

func NewReviewsHandler(reviews *services.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

// Create handles POST /api/reviews
// @Summary Review the host of a finished trip
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateReviewRequest true "Review"
// @Success 201 {object} dto.ReviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Not an approved buddy"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Trip not finished or already reviewed"
// @Router /api/reviews [post]
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	planID, err := uuid.Parse(req.TravelPlanID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid travel_plan_id", "travel_plan_id must be a valid UUID")
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), userID, services.ReviewInput{
		TravelPlanID: planID,
		Rating:       req.Rating,
		Content:      req.Content,
	})
	if err != nil {
		writeServiceError(w, r, "creating review", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toReviewResponse(review))
}

// Update handles PUT /api/reviews/{id}
// @Summary Edit my review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param payload body dto.UpdateReviewRequest true "Review"
// @Success 200 {object} dto.ReviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reviews/{id} [put]
func (h *ReviewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	reviewID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	review, err := h.reviews.UpdateReview(r.Context(), userID, reviewID, req.Rating, req.Content)
	if err != nil {
		writeServiceError(w, r, "updating review", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toReviewResponse(review))
}

// Delete handles DELETE /api/reviews/{id}
// @Summary Delete my review
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reviews/{id} [delete]
func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	reviewID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.reviews.DeleteReview(r.Context(), userID, reviewID); err != nil {
		writeServiceError(w, r, "deleting review", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Pending handles GET /api/reviews/pending
// @Summary Find a finished trip I have not reviewed yet
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PendingReviewResponse
// @Router /api/reviews/pending [get]
func (h *ReviewsHandler) Pending(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	plan, err := h.reviews.GetPendingReview(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "finding pending review", err)
		return
	}
	resp := dto.PendingReviewResponse{}
	if plan != nil {
		p := toTravelPlanResponse(plan)
		resp.TravelPlan = &p
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// ForUser handles GET /api/users/{id}/reviews
// @Summary List reviews a user received
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {array} dto.ReviewResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/{id}/reviews [get]
func (h *ReviewsHandler) ForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	views, err := h.reviews.ListReviewsForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "listing reviews", err)
		return
	}
	out := make([]dto.ReviewResponse, 0, len(views))
	for i := range views {
		resp := toReviewResponse(&views[i].Review)
		resp.Reviewer = toUserSummary(views[i].Reviewer)
		out = append(out, resp)
	}
	utils.WriteJSONResponse(w, http.StatusOK, out)
}
