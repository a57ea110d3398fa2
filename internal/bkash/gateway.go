// Package bkash adapts the bKash tokenized checkout API behind a uniform
// gateway interface with two integration strategies: a direct client that
// authenticates per call, and a tokenized client that owns an expiry-aware
// bearer token refreshed lazily under a single-flight guard.
package bkash

import "context"

// Gateway is the payment provider surface the route handlers compose.
type Gateway interface {
	// CreatePayment starts a checkout and returns the provider transaction,
	// including the redirect URL the payer must visit.
	CreatePayment(ctx context.Context, req CheckoutRequest) (*Transaction, error)
	// ExecutePayment completes a checkout previously created, identified by
	// the provider paymentID handed back on the callback.
	ExecutePayment(ctx context.Context, paymentID string) (*Transaction, error)
	// QueryPayment fetches the current state of a payment.
	QueryPayment(ctx context.Context, paymentID string) (*Transaction, error)
	// SearchTransaction looks a transaction up by its trxID.
	SearchTransaction(ctx context.Context, trxID string) (*Transaction, error)
	// RefundTransaction refunds part or all of a completed transaction.
	RefundTransaction(ctx context.Context, req RefundRequest) (*Transaction, error)
}
