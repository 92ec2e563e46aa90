package dto

type NotificationItem struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Message      string  `json:"message"`
	Link         string  `json:"link,omitempty"`
	TravelPlanID *string `json:"travel_plan_id,omitempty"`
	Read         bool    `json:"read"`
	CreatedAt    string  `json:"created_at"`
}

type NotificationsPagination struct {
	Total       int `json:"total"`
	UnreadCount int `json:"unread_count"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
}

type NotificationsListResponse struct {
	Notifications []NotificationItem      `json:"notifications"`
	Pagination    NotificationsPagination `json:"pagination"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
