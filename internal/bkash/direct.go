package bkash

import "context"

// Client is the direct, library-style gateway: every operation authenticates
// against the provider and delegates in a single round trip pair. It holds no
// state between calls.
type Client struct {
	api *apiClient
}

// NewClient creates a direct gateway from provider credentials.
func NewClient(cfg Config) *Client {
	return &Client{api: newAPIClient(cfg)}
}

func (c *Client) CreatePayment(ctx context.Context, req CheckoutRequest) (*Transaction, error) {
	grant, err := c.api.grantToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]string{
		"mode":                  "0011",
		"payerReference":        req.Reference,
		"callbackURL":           req.CallbackURL,
		"amount":                req.amountString(),
		"currency":              "BDT",
		"intent":                "sale",
		"merchantInvoiceNumber": req.OrderID,
	}

	var trx Transaction
	if err := c.api.post(ctx, pathCreate, grant.IDToken, payload, &trx); err != nil {
		return nil, err
	}
	return &trx, nil
}

func (c *Client) ExecutePayment(ctx context.Context, paymentID string) (*Transaction, error) {
	grant, err := c.api.grantToken(ctx)
	if err != nil {
		return nil, err
	}

	var trx Transaction
	if err := c.api.post(ctx, pathExecute, grant.IDToken, map[string]string{"paymentID": paymentID}, &trx); err != nil {
		return nil, err
	}
	return &trx, nil
}

func (c *Client) QueryPayment(ctx context.Context, paymentID string) (*Transaction, error) {
	grant, err := c.api.grantToken(ctx)
	if err != nil {
		return nil, err
	}

	var trx Transaction
	if err := c.api.post(ctx, pathQuery, grant.IDToken, map[string]string{"paymentID": paymentID}, &trx); err != nil {
		return nil, err
	}
	return &trx, nil
}

func (c *Client) SearchTransaction(ctx context.Context, trxID string) (*Transaction, error) {
	grant, err := c.api.grantToken(ctx)
	if err != nil {
		return nil, err
	}

	var trx Transaction
	if err := c.api.post(ctx, pathSearch, grant.IDToken, map[string]string{"trxID": trxID}, &trx); err != nil {
		return nil, err
	}
	return &trx, nil
}

func (c *Client) RefundTransaction(ctx context.Context, req RefundRequest) (*Transaction, error) {
	grant, err := c.api.grantToken(ctx)
	if err != nil {
		return nil, err
	}

	var trx Transaction
	if err := c.api.post(ctx, pathRefund, grant.IDToken, req, &trx); err != nil {
		return nil, err
	}
	return &trx, nil
}
