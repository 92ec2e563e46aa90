package handlers

import (
	"time"

	"TRAVELBUDDY_BACK-END/internal/dto"
	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/services"
	"TRAVELBUDDY_BACK-END/internal/utils"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                    u.ID.String(),
		Email:                 u.Email,
		Name:                  u.Name,
		AvatarURL:             u.AvatarURL,
		Bio:                   u.Bio,
		Role:                  string(u.Role),
		Status:                string(u.Status),
		SubscriptionType:      string(u.SubscriptionType),
		SubscriptionExpiresAt: formatTimePtr(u.SubscriptionExpiresAt),
		Premium:               u.Premium,
		Rating:                u.Rating,
		CreatedAt:             formatTime(u.CreatedAt),
		UpdatedAt:             formatTime(u.UpdatedAt),
	}
}

func toUserSummary(s services.UserSummary) *dto.UserSummaryResponse {
	return &dto.UserSummaryResponse{ID: s.ID.String(), Name: s.Name, AvatarURL: s.AvatarURL, Rating: s.Rating}
}

func toTravelPlanResponse(p *models.TravelPlan) dto.TravelPlanResponse {
	return dto.TravelPlanResponse{
		ID:          p.ID.String(),
		UserID:      p.UserID.String(),
		Destination: p.Destination,
		Description: p.Description,
		StartDate:   p.StartDate.Format(utils.DateLayout),
		EndDate:     p.EndDate.Format(utils.DateLayout),
		Budget:      p.Budget,
		TravelType:  string(p.TravelType),
		Visibility:  string(p.Visibility),
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func toTravelPlanList(page *services.PlanPage) dto.TravelPlanListResponse {
	items := make([]dto.TravelPlanResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toTravelPlanResponse(&page.Items[i]))
	}
	return dto.TravelPlanListResponse{
		TravelPlans: items,
		Pagination:  dto.Pagination{Total: page.Total, Limit: page.Limit, Offset: page.Offset},
	}
}

func toJoinRequestResponse(b *models.TravelBuddy) dto.JoinRequestResponse {
	return dto.JoinRequestResponse{
		ID:           b.ID.String(),
		TravelPlanID: b.TravelPlanID.String(),
		UserID:       b.UserID.String(),
		Status:       string(b.Status),
		CreatedAt:    formatTime(b.CreatedAt),
		UpdatedAt:    formatTime(b.UpdatedAt),
	}
}

func toConnectionResponse(c *models.Connection) dto.ConnectionResponse {
	return dto.ConnectionResponse{
		ID:         c.ID.String(),
		SenderID:   c.SenderID.String(),
		ReceiverID: c.ReceiverID.String(),
		Status:     string(c.Status),
		CreatedAt:  formatTime(c.CreatedAt),
		UpdatedAt:  formatTime(c.UpdatedAt),
	}
}

func toConnectionViews(views []services.ConnectionView) []dto.ConnectionResponse {
	out := make([]dto.ConnectionResponse, 0, len(views))
	for i := range views {
		resp := toConnectionResponse(&views[i].Connection)
		resp.User = toUserSummary(views[i].User)
		out = append(out, resp)
	}
	return out
}

func toReviewResponse(r *models.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:           r.ID.String(),
		TravelPlanID: r.TravelPlanID.String(),
		ReviewerID:   r.ReviewerID.String(),
		RevieweeID:   r.RevieweeID.String(),
		Rating:       r.Rating,
		Content:      r.Content,
		CreatedAt:    formatTime(r.CreatedAt),
		UpdatedAt:    formatTime(r.UpdatedAt),
	}
}

func toPaymentResponse(p *models.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:               p.ID.String(),
		TransactionID:    p.TransactionID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Status:           string(p.Status),
		SubscriptionType: string(p.SubscriptionType),
		PaidAt:           formatTimePtr(p.PaidAt),
		CreatedAt:        formatTime(p.CreatedAt),
	}
}

func toQuota(q services.Quota, used int) dto.QuotaResponse {
	limit := q.Limit
	if q.Unlimited {
		limit = -1
	}
	return dto.QuotaResponse{Limit: limit, Used: used, Remaining: q.Remaining(used)}
}

func toNotificationItem(n *models.Notification) dto.NotificationItem {
	item := dto.NotificationItem{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Message:   n.Message,
		Link:      n.Link,
		Read:      n.IsRead,
		CreatedAt: formatTime(n.CreatedAt),
	}
	if n.TravelPlanID != nil {
		id := n.TravelPlanID.String()
		item.TravelPlanID = &id
	}
	return item
}
