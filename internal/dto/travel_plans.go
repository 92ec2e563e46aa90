package dto

// TravelPlanRequest is the payload to create or replace a travel plan
type TravelPlanRequest struct {
	Destination string  `json:"destination" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=5000"`
	StartDate   string  `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate     string  `json:"end_date" validate:"required"`   // YYYY-MM-DD
	Budget      float64 `json:"budget" validate:"gte=0"`
	TravelType  string  `json:"travel_type" validate:"omitempty,oneof=SOLO FAMILY FRIENDS COUPLE"`
	Visibility  string  `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE"`
}

// TravelPlanResponse represents a travel plan in responses
type TravelPlanResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Destination string  `json:"destination"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Budget      float64 `json:"budget"`
	TravelType  string  `json:"travel_type"`
	Visibility  string  `json:"visibility"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// TravelPlanListResponse is a page of travel plans
type TravelPlanListResponse struct {
	TravelPlans []TravelPlanResponse `json:"travel_plans"`
	Pagination  Pagination           `json:"pagination"`
}

// UpdateJoinRequestRequest is the host's decision on a join request
type UpdateJoinRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// JoinRequestResponse represents a travel buddy row
type JoinRequestResponse struct {
	ID           string               `json:"id"`
	TravelPlanID string               `json:"travel_plan_id"`
	UserID       string               `json:"user_id"`
	Status       string               `json:"status"`
	User         *UserSummaryResponse `json:"user,omitempty"`
	CreatedAt    string               `json:"created_at"`
	UpdatedAt    string               `json:"updated_at"`
}
