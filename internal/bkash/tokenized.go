package bkash

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/nin-supply/commerce/internal/errors"
)

// tokenSkew is subtracted from the provider expiry so a token is never used
// right at its deadline.
const tokenSkew = 60 * time.Second

// TokenizedClient is the raw-HTTP gateway strategy. It owns a bearer token
// with its expiry and refreshes it lazily; concurrent requests needing a
// refresh share one grant call through a single-flight guard.
type TokenizedClient struct {
	api *apiClient

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	group     singleflight.Group

	now func() time.Time
}

// NewTokenizedClient creates a tokenized gateway from provider credentials.
func NewTokenizedClient(cfg Config) *TokenizedClient {
	return &TokenizedClient{
		api: newAPIClient(cfg),
		now: time.Now,
	}
}

// bearerToken returns a valid token, refreshing through singleflight when the
// cached one is absent or expired. A failed refresh surfaces as Unauthorized;
// a request must never observe an unset token as a fault.
func (c *TokenizedClient) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && c.now().Before(c.expiresAt) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("grant", func() (interface{}, error) {
		grant, err := c.api.grantToken(ctx)
		if err != nil {
			return nil, err
		}

		expiry := time.Duration(grant.ExpiresIn) * time.Second
		if expiry > tokenSkew {
			expiry -= tokenSkew
		}

		c.mu.Lock()
		c.token = grant.IDToken
		c.expiresAt = c.now().Add(expiry)
		c.mu.Unlock()

		return grant.IDToken, nil
	})
	if err != nil {
		return "", errors.Unauthorized("payment authorization failed").WithDetails("cause", err.Error())
	}
	return v.(string), nil
}

func (c *TokenizedClient) CreatePayment(ctx context.Context, req CheckoutRequest) (*Transaction, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]string{
		"mode":                  "0011",
		"payerReference":        " ",
		"callbackURL":           req.CallbackURL,
		"amount":                req.amountString(),
		"currency":              "BDT",
		"intent":                "sale",
		"merchantInvoiceNumber": "Inv" + invoiceSuffix(),
	}

	var trx Transaction
	if err := c.api.post(ctx, pathCreate, token, payload, &trx); err != nil {
		return nil, err
	}
	return &trx, nil
}

func (c *TokenizedClient) ExecutePayment(ctx context.Context, paymentID string) (*Transaction, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	var trx Transaction
	if err := c.api.post(ctx, pathExecute, token, map[string]string{"paymentID": paymentID}, &trx); err != nil {
		return nil, err
	}
	return &trx, nil
}

func (c *TokenizedClient) QueryPayment(ctx context.Context, paymentID string) (*Transaction, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	var trx Transaction
	if err := c.api.post(ctx, pathQuery, token, map[string]string{"paymentID": paymentID}, &trx); err != nil {
		return nil, err
	}
	return &trx, nil
}

func (c *TokenizedClient) SearchTransaction(ctx context.Context, trxID string) (*Transaction, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	var trx Transaction
	if err := c.api.post(ctx, pathSearch, token, map[string]string{"trxID": trxID}, &trx); err != nil {
		return nil, err
	}
	return &trx, nil
}

func (c *TokenizedClient) RefundTransaction(ctx context.Context, req RefundRequest) (*Transaction, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	var trx Transaction
	if err := c.api.post(ctx, pathRefund, token, req, &trx); err != nil {
		return nil, err
	}
	return &trx, nil
}

// invoiceSuffix returns the 8-character random suffix for merchant invoice
// numbers.
func invoiceSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
