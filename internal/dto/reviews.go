package dto

// CreateReviewRequest is the payload for reviewing a finished trip's host
type CreateReviewRequest struct {
	TravelPlanID string `json:"travel_plan_id" validate:"required,uuid"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Content      string `json:"content" validate:"max=2000"`
}

// UpdateReviewRequest edits an existing review
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content" validate:"max=2000"`
}

// ReviewResponse represents a review in responses
type ReviewResponse struct {
	ID           string               `json:"id"`
	TravelPlanID string               `json:"travel_plan_id"`
	ReviewerID   string               `json:"reviewer_id"`
	RevieweeID   string               `json:"reviewee_id"`
	Rating       int                  `json:"rating"`
	Content      string               `json:"content"`
	Reviewer     *UserSummaryResponse `json:"reviewer,omitempty"`
	CreatedAt    string               `json:"created_at"`
	UpdatedAt    string               `json:"updated_at"`
}

// PendingReviewResponse names the finished trip the caller should review,
// or carries a nil plan when there is none
type PendingReviewResponse struct {
	TravelPlan *TravelPlanResponse `json:"travel_plan"`
}
