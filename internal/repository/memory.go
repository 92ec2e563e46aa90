package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
)

// MemoryStore is an in-process Store used for local runs and tests.
// It enforces the same uniqueness rules as schema.sql.
type MemoryStore struct {
	*memState
	// undo is set only on the view handed to WithTx callbacks
	undo *undoLog
}

type memState struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *memData
}

type memData struct {
	seq           int64
	order         map[uuid.UUID]int64
	users         map[uuid.UUID]models.User
	connections   map[uuid.UUID]models.Connection
	plans         map[uuid.UUID]models.TravelPlan
	buddies       map[uuid.UUID]models.TravelBuddy
	reviews       map[uuid.UUID]models.Review
	payments      map[uuid.UUID]models.Payment
	notifications map[uuid.UUID]models.Notification
}

func newMemData() *memData {
	return &memData{
		order:         map[uuid.UUID]int64{},
		users:         map[uuid.UUID]models.User{},
		connections:   map[uuid.UUID]models.Connection{},
		plans:         map[uuid.UUID]models.TravelPlan{},
		buddies:       map[uuid.UUID]models.TravelBuddy{},
		reviews:       map[uuid.UUID]models.Review{},
		payments:      map[uuid.UUID]models.Payment{},
		notifications: map[uuid.UUID]models.Notification{},
	}
}

func (d *memData) track(id uuid.UUID) {
	d.seq++
	d.order[id] = d.seq
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{memState: &memState{data: newMemData()}}
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// WithTx serializes transactions. Rows written through tx are journaled
// and restored when fn fails; writes made outside the transaction survive.
// Nested calls join the outer transaction.
func (s *MemoryStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.undo != nil {
		return fn(s)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &MemoryStore{memState: s.memState, undo: &undoLog{seen: map[undoKey]bool{}}}
	if err := fn(tx); err != nil {
		s.mu.Lock()
		tx.undo.rollback()
		s.mu.Unlock()
		return err
	}
	return nil
}

type undoKey struct {
	table string
	id    uuid.UUID
}

// undoLog holds the pre-transaction state of every row a transaction wrote
type undoLog struct {
	seen  map[undoKey]bool
	steps []func()
}

func (u *undoLog) rollback() {
	for i := len(u.steps) - 1; i >= 0; i-- {
		u.steps[i]()
	}
}

// remember journals row id of table before it is written. Callers hold mu.
func remember[V any](s *MemoryStore, table string, rows map[uuid.UUID]V, id uuid.UUID) {
	if s.undo == nil {
		return
	}
	key := undoKey{table: table, id: id}
	if s.undo.seen[key] {
		return
	}
	s.undo.seen[key] = true
	prev, existed := rows[id]
	seq, tracked := s.data.order[id]
	order := s.data.order
	s.undo.steps = append(s.undo.steps, func() {
		if existed {
			rows[id] = prev
		} else {
			delete(rows, id)
		}
		if tracked {
			order[id] = seq
		} else {
			delete(order, id)
		}
	})
}

// newestFirst sorts by created time then insertion order, both descending
func newestFirst[T any](d *memData, items []T, id func(T) uuid.UUID, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return d.order[id(items[i])] > d.order[id(items[j])]
	})
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ---- users ----

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.data.users {
		if existing.ID == u.ID || strings.EqualFold(existing.Email, u.Email) {
			return ErrConflict
		}
	}
	remember(s, "users", s.data.users, u.ID)
	s.data.users[u.ID] = *u
	s.data.track(u.ID)
	return nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.data.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.data.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) updateUser(id uuid.UUID, fn func(u *models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data.users[id]
	if !ok {
		return ErrNotFound
	}
	fn(&u)
	remember(s, "users", s.data.users, id)
	s.data.users[id] = u
	return nil
}

func (s *MemoryStore) UpdateUserProfile(ctx context.Context, in *models.User) error {
	return s.updateUser(in.ID, func(u *models.User) {
		u.Name = in.Name
		u.AvatarURL = in.AvatarURL
		u.Bio = in.Bio
		u.UpdatedAt = in.UpdatedAt
	})
}

func (s *MemoryStore) UpdateUserStatus(ctx context.Context, id uuid.UUID, status models.UserStatus, at time.Time) error {
	return s.updateUser(id, func(u *models.User) {
		u.Status = status
		u.UpdatedAt = at
	})
}

func (s *MemoryStore) UpdateUserSubscription(ctx context.Context, id uuid.UUID, subType models.SubscriptionType, expiresAt time.Time, at time.Time) error {
	return s.updateUser(id, func(u *models.User) {
		exp := expiresAt
		u.Premium = true
		u.SubscriptionType = subType
		u.SubscriptionExpiresAt = &exp
		u.UpdatedAt = at
	})
}

func (s *MemoryStore) UpdateUserRating(ctx context.Context, id uuid.UUID, rating float64, at time.Time) error {
	return s.updateUser(id, func(u *models.User) {
		u.Rating = rating
		u.UpdatedAt = at
	})
}

// ---- connections ----

func samePair(c models.Connection, a, b uuid.UUID) bool {
	return (c.SenderID == a && c.ReceiverID == b) || (c.SenderID == b && c.ReceiverID == a)
}

func (s *MemoryStore) CreateConnection(ctx context.Context, c *models.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.users[c.SenderID]; !ok {
		return ErrNotFound
	}
	if _, ok := s.data.users[c.ReceiverID]; !ok {
		return ErrNotFound
	}
	for _, existing := range s.data.connections {
		if existing.ID == c.ID {
			return ErrConflict
		}
		if samePair(existing, c.SenderID, c.ReceiverID) &&
			existing.Status != models.ConnectionRejected && c.Status != models.ConnectionRejected {
			return ErrConflict
		}
	}
	remember(s, "connections", s.data.connections, c.ID)
	s.data.connections[c.ID] = *c
	s.data.track(c.ID)
	return nil
}

func (s *MemoryStore) GetConnection(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.data.connections[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) ListConnectionsBetween(ctx context.Context, a, b uuid.UUID) ([]models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Connection{}
	for _, c := range s.data.connections {
		if samePair(c, a, b) {
			out = append(out, c)
		}
	}
	newestFirst(s.data, out, func(c models.Connection) uuid.UUID { return c.ID }, func(c models.Connection) time.Time { return c.CreatedAt })
	return out, nil
}

func (s *MemoryStore) DeleteRejectedConnectionsBetween(ctx context.Context, a, b uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, c := range s.data.connections {
		if samePair(c, a, b) && c.Status == models.ConnectionRejected {
			remember(s, "connections", s.data.connections, id)
			delete(s.data.connections, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) UpdateConnectionStatus(ctx context.Context, id uuid.UUID, status models.ConnectionStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data.connections[id]
	if !ok {
		return ErrNotFound
	}
	if status != models.ConnectionRejected {
		for _, other := range s.data.connections {
			if other.ID != id && samePair(other, c.SenderID, c.ReceiverID) && other.Status != models.ConnectionRejected {
				return ErrConflict
			}
		}
	}
	c.Status = status
	c.UpdatedAt = at
	remember(s, "connections", s.data.connections, id)
	s.data.connections[id] = c
	return nil
}

func (s *MemoryStore) DeleteConnection(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.connections[id]; !ok {
		return ErrNotFound
	}
	remember(s, "connections", s.data.connections, id)
	delete(s.data.connections, id)
	return nil
}

func (s *MemoryStore) CountConnectionsSentSince(ctx context.Context, senderID uuid.UUID, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.data.connections {
		if c.SenderID == senderID && !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) ListConnections(ctx context.Context, f ConnectionFilter) ([]models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Connection{}
	for _, c := range s.data.connections {
		switch f.Direction {
		case DirectionIncoming:
			if c.ReceiverID != f.UserID {
				continue
			}
		case DirectionOutgoing:
			if c.SenderID != f.UserID {
				continue
			}
		default:
			if !c.Involves(f.UserID) {
				continue
			}
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		out = append(out, c)
	}
	newestFirst(s.data, out, func(c models.Connection) uuid.UUID { return c.ID }, func(c models.Connection) time.Time { return c.CreatedAt })
	return out, nil
}

// ---- travel plans & buddies ----

func (s *MemoryStore) CreateTravelPlan(ctx context.Context, p *models.TravelPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.plans[p.ID]; ok {
		return ErrConflict
	}
	if _, ok := s.data.users[p.UserID]; !ok {
		return ErrNotFound
	}
	remember(s, "plans", s.data.plans, p.ID)
	s.data.plans[p.ID] = *p
	s.data.track(p.ID)
	return nil
}

func (s *MemoryStore) GetTravelPlan(ctx context.Context, id uuid.UUID) (*models.TravelPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data.plans[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) UpdateTravelPlan(ctx context.Context, p *models.TravelPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.data.plans[p.ID]
	if !ok {
		return ErrNotFound
	}
	updated := *p
	updated.UserID = cur.UserID
	updated.CreatedAt = cur.CreatedAt
	remember(s, "plans", s.data.plans, p.ID)
	s.data.plans[p.ID] = updated
	return nil
}

func (s *MemoryStore) DeleteTravelPlan(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.plans[id]; !ok {
		return ErrNotFound
	}
	remember(s, "plans", s.data.plans, id)
	delete(s.data.plans, id)
	for bid, b := range s.data.buddies {
		if b.TravelPlanID == id {
			remember(s, "buddies", s.data.buddies, bid)
			delete(s.data.buddies, bid)
		}
	}
	for rid, r := range s.data.reviews {
		if r.TravelPlanID == id {
			remember(s, "reviews", s.data.reviews, rid)
			delete(s.data.reviews, rid)
		}
	}
	for nid, n := range s.data.notifications {
		if n.TravelPlanID != nil && *n.TravelPlanID == id {
			remember(s, "notifications", s.data.notifications, nid)
			delete(s.data.notifications, nid)
		}
	}
	return nil
}

func (s *MemoryStore) CountTravelPlansByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.data.plans {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) ListTravelPlans(ctx context.Context, f TravelPlanFilter) ([]models.TravelPlan, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dest := strings.ToLower(strings.TrimSpace(f.Destination))
	out := []models.TravelPlan{}
	for _, p := range s.data.plans {
		if f.UserID != nil && p.UserID != *f.UserID {
			continue
		}
		if dest != "" && !strings.Contains(strings.ToLower(p.Destination), dest) {
			continue
		}
		if f.PublicOnly && p.Visibility != models.VisibilityPublic {
			continue
		}
		out = append(out, p)
	}
	newestFirst(s.data, out, func(p models.TravelPlan) uuid.UUID { return p.ID }, func(p models.TravelPlan) time.Time { return p.CreatedAt })
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (s *MemoryStore) CreateTravelBuddy(ctx context.Context, b *models.TravelBuddy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.plans[b.TravelPlanID]; !ok {
		return ErrNotFound
	}
	for _, existing := range s.data.buddies {
		if existing.ID == b.ID || (existing.TravelPlanID == b.TravelPlanID && existing.UserID == b.UserID) {
			return ErrConflict
		}
	}
	remember(s, "buddies", s.data.buddies, b.ID)
	s.data.buddies[b.ID] = *b
	s.data.track(b.ID)
	return nil
}

func (s *MemoryStore) GetTravelBuddy(ctx context.Context, id uuid.UUID) (*models.TravelBuddy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.data.buddies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (s *MemoryStore) FindTravelBuddy(ctx context.Context, planID, userID uuid.UUID) (*models.TravelBuddy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.data.buddies {
		if b.TravelPlanID == planID && b.UserID == userID {
			b := b
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateTravelBuddyStatus(ctx context.Context, id uuid.UUID, status models.BuddyStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data.buddies[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = at
	remember(s, "buddies", s.data.buddies, id)
	s.data.buddies[id] = b
	return nil
}

func (s *MemoryStore) ListTravelBuddies(ctx context.Context, planID uuid.UUID) ([]models.TravelBuddy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.TravelBuddy{}
	for _, b := range s.data.buddies {
		if b.TravelPlanID == planID {
			out = append(out, b)
		}
	}
	newestFirst(s.data, out, func(b models.TravelBuddy) uuid.UUID { return b.ID }, func(b models.TravelBuddy) time.Time { return b.CreatedAt })
	return out, nil
}

// ---- reviews ----

func (s *MemoryStore) CreateReview(ctx context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.plans[r.TravelPlanID]; !ok {
		return ErrNotFound
	}
	for _, existing := range s.data.reviews {
		if existing.ID == r.ID || (existing.TravelPlanID == r.TravelPlanID && existing.ReviewerID == r.ReviewerID) {
			return ErrConflict
		}
	}
	remember(s, "reviews", s.data.reviews, r.ID)
	s.data.reviews[r.ID] = *r
	s.data.track(r.ID)
	return nil
}

func (s *MemoryStore) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.data.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemoryStore) FindReview(ctx context.Context, planID, reviewerID uuid.UUID) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.data.reviews {
		if r.TravelPlanID == planID && r.ReviewerID == reviewerID {
			r := r
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateReview(ctx context.Context, in *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.reviews[in.ID]
	if !ok {
		return ErrNotFound
	}
	r.Rating = in.Rating
	r.Content = in.Content
	r.UpdatedAt = in.UpdatedAt
	remember(s, "reviews", s.data.reviews, in.ID)
	s.data.reviews[in.ID] = r
	return nil
}

func (s *MemoryStore) DeleteReview(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.reviews[id]; !ok {
		return ErrNotFound
	}
	remember(s, "reviews", s.data.reviews, id)
	delete(s.data.reviews, id)
	return nil
}

func (s *MemoryStore) AverageRating(ctx context.Context, revieweeID uuid.UUID) (float64, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum, n := 0, 0
	for _, r := range s.data.reviews {
		if r.RevieweeID == revieweeID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

func (s *MemoryStore) ListReviewsByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Review{}
	for _, r := range s.data.reviews {
		if r.RevieweeID == revieweeID {
			out = append(out, r)
		}
	}
	newestFirst(s.data, out, func(r models.Review) uuid.UUID { return r.ID }, func(r models.Review) time.Time { return r.CreatedAt })
	return out, nil
}

func (s *MemoryStore) FindPendingReviewPlan(ctx context.Context, userID uuid.UUID, now time.Time) (*models.TravelPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *models.TravelPlan
	for _, b := range s.data.buddies {
		if b.UserID != userID || b.Status != models.BuddyApproved {
			continue
		}
		p, ok := s.data.plans[b.TravelPlanID]
		if !ok || p.EndDate.After(now) {
			continue
		}
		reviewed := false
		for _, r := range s.data.reviews {
			if r.TravelPlanID == p.ID && r.ReviewerID == userID {
				reviewed = true
				break
			}
		}
		if reviewed {
			continue
		}
		if best == nil || p.EndDate.After(best.EndDate) {
			p := p
			best = &p
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	return best, nil
}

// ---- payments ----

func (s *MemoryStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.data.payments {
		if existing.ID == p.ID || existing.TransactionID == p.TransactionID {
			return ErrConflict
		}
	}
	remember(s, "payments", s.data.payments, p.ID)
	s.data.payments[p.ID] = *p
	s.data.track(p.ID)
	return nil
}

func (s *MemoryStore) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.data.payments {
		if p.TransactionID == transactionID {
			p := p
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) MarkPaymentSucceeded(ctx context.Context, transactionID string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.data.payments {
		if p.TransactionID != transactionID {
			continue
		}
		if p.Status == models.PaymentSuccess {
			return false, nil
		}
		paidAt := at
		p.Status = models.PaymentSuccess
		p.PaidAt = &paidAt
		p.UpdatedAt = at
		remember(s, "payments", s.data.payments, id)
		s.data.payments[id] = p
		return true, nil
	}
	return false, ErrNotFound
}

func (s *MemoryStore) ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Payment{}
	for _, p := range s.data.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	newestFirst(s.data, out, func(p models.Payment) uuid.UUID { return p.ID }, func(p models.Payment) time.Time { return p.CreatedAt })
	return out, nil
}

// ---- notifications ----

func (s *MemoryStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.notifications[n.ID]; ok {
		return ErrConflict
	}
	remember(s, "notifications", s.data.notifications, n.ID)
	s.data.notifications[n.ID] = *n
	s.data.track(n.ID)
	return nil
}

func (s *MemoryStore) ListNotifications(ctx context.Context, f NotificationFilter) ([]models.Notification, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Notification{}
	for _, n := range s.data.notifications {
		if n.UserID != f.UserID {
			continue
		}
		if f.UnreadOnly && n.IsRead {
			continue
		}
		if f.Type != "" && n.Type != f.Type {
			continue
		}
		out = append(out, n)
	}
	newestFirst(s.data, out, func(n models.Notification) uuid.UUID { return n.ID }, func(n models.Notification) time.Time { return n.CreatedAt })
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (s *MemoryStore) CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := 0
	for _, n := range s.data.notifications {
		if n.UserID == userID && !n.IsRead {
			c++
		}
	}
	return c, nil
}

func (s *MemoryStore) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.data.notifications[id]
	if !ok || n.UserID != userID || n.IsRead {
		return false, nil
	}
	n.IsRead = true
	remember(s, "notifications", s.data.notifications, id)
	s.data.notifications[id] = n
	return true, nil
}

func (s *MemoryStore) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var c int64
	for id, n := range s.data.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			remember(s, "notifications", s.data.notifications, id)
			s.data.notifications[id] = n
			c++
		}
	}
	return c, nil
}
