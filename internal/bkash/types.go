package bkash

import "strconv"

// Provider status values the handlers branch on.
const (
	// StatusCodeSuccess is the provider's "0000" success code.
	StatusCodeSuccess = "0000"
	// TransactionCompleted is the terminal success transaction status.
	TransactionCompleted = "Completed"
	// TransactionInitiated is the state right after checkout.
	TransactionInitiated = "Initiated"
)

// Checkout fallback values. They keep the checkout endpoint operable during
// integration testing when the caller omits fields; filling them is explicit
// and observable, never silent coercion.
const (
	DefaultAmount    = 10
	DefaultOrderID   = "Order_101"
	DefaultReference = "1"
)

// CheckoutRequest is the merchant-side checkout payload.
type CheckoutRequest struct {
	Amount      float64 `json:"amount,omitempty"`
	CallbackURL string  `json:"callbackURL,omitempty"`
	OrderID     string  `json:"orderID,omitempty"`
	Reference   string  `json:"reference,omitempty"`
}

// WithDefaults returns a copy with every omitted field filled from the fixed
// fallbacks, using defaultCallbackURL for the callback.
func (r CheckoutRequest) WithDefaults(defaultCallbackURL string) CheckoutRequest {
	if r.Amount == 0 {
		r.Amount = DefaultAmount
	}
	if r.CallbackURL == "" {
		r.CallbackURL = defaultCallbackURL
	}
	if r.OrderID == "" {
		r.OrderID = DefaultOrderID
	}
	if r.Reference == "" {
		r.Reference = DefaultReference
	}
	return r
}

func (r CheckoutRequest) amountString() string {
	return strconv.FormatFloat(r.Amount, 'f', -1, 64)
}

// RefundRequest asks the provider to refund a completed transaction.
type RefundRequest struct {
	PaymentID string `json:"paymentID"`
	TrxID     string `json:"trxID"`
	Amount    string `json:"amount"`
	SKU       string `json:"sku,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Transaction is the provider's view of a checkout attempt. The provider is
// authoritative for its state; fields are populated per operation.
type Transaction struct {
	StatusCode            string `json:"statusCode"`
	StatusMessage         string `json:"statusMessage"`
	PaymentID             string `json:"paymentID,omitempty"`
	BkashURL              string `json:"bkashURL,omitempty"`
	CallbackURL           string `json:"callbackURL,omitempty"`
	Amount                string `json:"amount,omitempty"`
	Currency              string `json:"currency,omitempty"`
	Intent                string `json:"intent,omitempty"`
	TrxID                 string `json:"trxID,omitempty"`
	TransactionStatus     string `json:"transactionStatus,omitempty"`
	MerchantInvoiceNumber string `json:"merchantInvoiceNumber,omitempty"`
	RefundTrxID           string `json:"refundTrxID,omitempty"`
	CustomerMsisdn        string `json:"customerMsisdn,omitempty"`
	PaymentExecuteTime    string `json:"paymentExecuteTime,omitempty"`
}
