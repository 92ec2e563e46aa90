package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"TRAVELBUDDY_BACK-END/internal/dto"
	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/services"
	"TRAVELBUDDY_BACK-END/internal/utils"
)

var notificationTypes = map[models.NotificationType]bool{
	models.NotificationLeaveReview:        true,
	models.NotificationTripJoinRequest:    true,
	models.NotificationTripApproved:       true,
	models.NotificationConnectionRequest:  true,
	models.NotificationConnectionAccepted: true,
}

// NotificationsHandler: HTTP endpoints (list/mark read/mark all read)
type NotificationsHandler struct {
	svc *services.NotificationService
}

func NewNotificationsHandler(svc *services.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{svc: svc}
}

// ListNotifications
// @Summary List notifications
// @Description List user notifications with filters and pagination.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread_only query bool false "true|false (default false)"
// @Param type query string false "filter by type"
// @Param limit query int false "default 20 (max 100)"
// @Param offset query int false "default 0"
// @Success 200 {object} dto.NotificationsListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/notifications [get]
func (h *NotificationsHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	params := services.ListParams{
		UnreadOnly: strings.EqualFold(q.Get("unread_only"), "true"),
		Type:       models.NotificationType(strings.ToUpper(strings.TrimSpace(q.Get("type")))),
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid limit", "limit must be a positive integer")
			return
		}
		params.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid offset", "offset must be a non-negative integer")
			return
		}
		params.Offset = n
	}
	if params.Type != "" && !notificationTypes[params.Type] {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid type", "invalid notification type")
		return
	}

	page, err := h.svc.List(ctx, userID, params)
	if err != nil {
		writeServiceError(w, r, "listing notifications", err)
		return
	}

	items := make([]dto.NotificationItem, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toNotificationItem(&page.Items[i]))
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NotificationsListResponse{
		Notifications: items,
		Pagination: dto.NotificationsPagination{
			Total:       page.Total,
			UnreadCount: page.UnreadCount,
			Limit:       page.Limit,
			Offset:      page.Offset,
		},
	})
}

// MarkRead
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/notifications/{id}/read [post]
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	nID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	updated, err := h.svc.MarkRead(ctx, userID, nID)
	if err != nil {
		writeServiceError(w, r, "marking notification as read", err)
		return
	}
	if !updated {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Notification not found or already marked as read")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Notification marked as read"})
}

// MarkAllRead
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MarkAllReadResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/notifications/read-all [post]
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	n, err := h.svc.MarkAllRead(ctx, userID)
	if err != nil {
		writeServiceError(w, r, "marking all notifications as read", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MarkAllReadResponse{Updated: n})
}
