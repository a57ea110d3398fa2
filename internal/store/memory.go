package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is a thread-safe in-memory Store. It is intended for tests and
// prototyping and deliberately keeps the implementation simple. Documents are
// keyed by their hex object ID.
type Memory struct {
	mu         sync.RWMutex
	users      map[string]User
	products   map[string]Product
	categories map[string]Category
	carts      map[string]CartItem
	orders     map[string]Order
	payments   map[string]Payment
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[string]User),
		products:   make(map[string]Product),
		categories: make(map[string]Category),
		carts:      make(map[string]CartItem),
		orders:     make(map[string]Order),
		payments:   make(map[string]Payment),
	}
}

func (m *Memory) Users() UserStore          { return (*memoryUsers)(m) }
func (m *Memory) Products() ProductStore    { return (*memoryProducts)(m) }
func (m *Memory) Categories() CategoryStore { return (*memoryCategories)(m) }
func (m *Memory) Carts() CartStore          { return (*memoryCarts)(m) }
func (m *Memory) Orders() OrderStore        { return (*memoryOrders)(m) }
func (m *Memory) Payments() PaymentStore    { return (*memoryPayments)(m) }

func (m *Memory) Ping(context.Context) error  { return nil }
func (m *Memory) Close(context.Context) error { return nil }

// SeedCategories loads catalog groupings for tests.
func (m *Memory) SeedCategories(categories ...Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range categories {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		m.categories[c.ID.Hex()] = c
	}
}

// Users ----------------------------------------------------------------------

type memoryUsers Memory

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			clone := u
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) Insert(_ context.Context, user User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	m.users[user.ID.Hex()] = user
	return user.ID.Hex(), nil
}

func (m *memoryUsers) UpdateRole(_ context.Context, id, role string) (UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return UpdateResult{}, nil
	}
	modified := int64(0)
	if u.Role != role {
		u.Role = role
		m.users[id] = u
		modified = 1
	}
	return UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
}

func (m *memoryUsers) Delete(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return 0, nil
	}
	delete(m.users, id)
	return 1, nil
}

func (m *memoryUsers) All(_ context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

// Products -------------------------------------------------------------------

type memoryProducts Memory

func (m *memoryProducts) Insert(_ context.Context, product Product) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	m.products[product.ID.Hex()] = product
	return product.ID.Hex(), nil
}

func (m *memoryProducts) All(_ context.Context) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

// Categories -----------------------------------------------------------------

type memoryCategories Memory

func (m *memoryCategories) All(_ context.Context) ([]Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

// Carts ----------------------------------------------------------------------

type memoryCarts Memory

func (m *memoryCarts) FindByUserEmail(_ context.Context, email string) ([]CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]CartItem, 0)
	for _, item := range m.carts {
		if item.UserEmail == email {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memoryCarts) Insert(_ context.Context, item CartItem) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	m.carts[item.ID.Hex()] = item
	return item.ID.Hex(), nil
}

func (m *memoryCarts) Update(_ context.Context, id string, item CartItem) (UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.carts[id]
	if !ok {
		return UpdateResult{}, nil
	}
	item.ID = existing.ID
	m.carts[id] = item
	return UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *memoryCarts) Delete(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.carts[id]; !ok {
		return 0, nil
	}
	delete(m.carts, id)
	return 1, nil
}

// Orders ---------------------------------------------------------------------

type memoryOrders Memory

func (m *memoryOrders) Insert(_ context.Context, order Order) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	m.orders[order.ID.Hex()] = order
	return order.ID.Hex(), nil
}

func (m *memoryOrders) FindByUserEmail(_ context.Context, email string) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Order, 0)
	for _, o := range m.orders {
		if o.UserEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memoryOrders) All(_ context.Context) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *memoryOrders) RevenueByStatus(_ context.Context) (RevenueSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var summary RevenueSummary
	for _, o := range m.orders {
		switch o.Status {
		case OrderStatusPending:
			summary.Pending += o.TotalPrice
		case OrderStatusProcessing:
			summary.Processing += o.TotalPrice
		case OrderStatusComplete:
			summary.Completed += o.TotalPrice
		}
	}
	return summary, nil
}

// Payments -------------------------------------------------------------------

type memoryPayments Memory

func (m *memoryPayments) Insert(_ context.Context, payment Payment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	m.payments[payment.ID.Hex()] = payment
	return payment.ID.Hex(), nil
}

func (m *memoryPayments) FindByPaymentID(_ context.Context, paymentID string) (*Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.payments {
		if p.PaymentID == paymentID {
			clone := p
			return &clone, nil
		}
	}
	return nil, nil
}
