package main

import (
	"context"
	"fmt"

	"github.com/nin-supply/commerce/internal/auth"
	"github.com/nin-supply/commerce/internal/bkash"
	"github.com/nin-supply/commerce/internal/config"
	"github.com/nin-supply/commerce/internal/logging"
	"github.com/nin-supply/commerce/internal/middleware"
	"github.com/nin-supply/commerce/internal/store"
)

// stubGateway scripts provider responses per operation. Unscripted operations
// fail loudly so a test only exercises the calls it expects.
type stubGateway struct {
	createFn  func(ctx context.Context, req bkash.CheckoutRequest) (*bkash.Transaction, error)
	executeFn func(ctx context.Context, paymentID string) (*bkash.Transaction, error)
	queryFn   func(ctx context.Context, paymentID string) (*bkash.Transaction, error)
	searchFn  func(ctx context.Context, trxID string) (*bkash.Transaction, error)
	refundFn  func(ctx context.Context, req bkash.RefundRequest) (*bkash.Transaction, error)

	executeCalls int
}

func (s *stubGateway) CreatePayment(ctx context.Context, req bkash.CheckoutRequest) (*bkash.Transaction, error) {
	if s.createFn == nil {
		return nil, fmt.Errorf("unexpected CreatePayment call")
	}
	return s.createFn(ctx, req)
}

func (s *stubGateway) ExecutePayment(ctx context.Context, paymentID string) (*bkash.Transaction, error) {
	s.executeCalls++
	if s.executeFn == nil {
		return nil, fmt.Errorf("unexpected ExecutePayment call")
	}
	return s.executeFn(ctx, paymentID)
}

func (s *stubGateway) QueryPayment(ctx context.Context, paymentID string) (*bkash.Transaction, error) {
	if s.queryFn == nil {
		return nil, fmt.Errorf("unexpected QueryPayment call")
	}
	return s.queryFn(ctx, paymentID)
}

func (s *stubGateway) SearchTransaction(ctx context.Context, trxID string) (*bkash.Transaction, error) {
	if s.searchFn == nil {
		return nil, fmt.Errorf("unexpected SearchTransaction call")
	}
	return s.searchFn(ctx, trxID)
}

func (s *stubGateway) RefundTransaction(ctx context.Context, req bkash.RefundRequest) (*bkash.Transaction, error) {
	if s.refundFn == nil {
		return nil, fmt.Errorf("unexpected RefundTransaction call")
	}
	return s.refundFn(ctx, req)
}

func newTestApp() (*application, *store.Memory) {
	mem := store.NewMemory()
	cfg := &config.Config{
		Port:               5000,
		AccessTokenSecret:  "test-secret",
		AllowedOrigins:     []string{"http://localhost:5173"},
		FrontendSuccessURL: "http://localhost:5173/payment/success",
		FrontendFailURL:    "http://localhost:5173/payment/error",
		RateLimitRPS:       100,
		RateLimitBurst:     100,
	}
	cfg.Bkash.CallbackURL = "http://localhost:5000/bkash-callback"

	logger := logging.New("commerce-test", "error", "text")
	app := &application{
		cfg:            cfg,
		logger:         logger,
		store:          mem,
		tokens:         auth.NewTokenService(cfg.AccessTokenSecret),
		limiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger),
		bkashDirect:    &stubGateway{},
		bkashTokenized: &stubGateway{},
	}
	return app, mem
}
