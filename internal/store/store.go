// Package store defines the collection-scoped data access gateway over the
// document database, plus a thread-safe in-memory implementation used by
// tests and prototyping.
package store

import "context"

// Store bundles per-collection gateways.
type Store interface {
	Users() UserStore
	Products() ProductStore
	Categories() CategoryStore
	Carts() CartStore
	Orders() OrderStore
	Payments() PaymentStore

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// UserStore is the users collection.
type UserStore interface {
	// FindByEmail returns (nil, nil) when no record exists.
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, user User) (string, error)
	UpdateRole(ctx context.Context, id, role string) (UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
	All(ctx context.Context) ([]User, error)
}

// ProductStore is the products collection.
type ProductStore interface {
	Insert(ctx context.Context, product Product) (string, error)
	All(ctx context.Context) ([]Product, error)
}

// CategoryStore is the category collection.
type CategoryStore interface {
	All(ctx context.Context) ([]Category, error)
}

// CartStore is the carts collection.
type CartStore interface {
	FindByUserEmail(ctx context.Context, email string) ([]CartItem, error)
	Insert(ctx context.Context, item CartItem) (string, error)
	Update(ctx context.Context, id string, item CartItem) (UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// OrderStore is the orders collection.
type OrderStore interface {
	Insert(ctx context.Context, order Order) (string, error)
	FindByUserEmail(ctx context.Context, email string) ([]Order, error)
	All(ctx context.Context) ([]Order, error)
	// RevenueByStatus sums totalPrice grouped by order status.
	RevenueByStatus(ctx context.Context) (RevenueSummary, error)
}

// PaymentStore is the payments collection.
type PaymentStore interface {
	Insert(ctx context.Context, payment Payment) (string, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
}
