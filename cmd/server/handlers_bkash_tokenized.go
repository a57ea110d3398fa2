package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nin-supply/commerce/internal/bkash"
	"github.com/nin-supply/commerce/internal/httputil"
	"github.com/nin-supply/commerce/internal/metrics"
)

// handleTokenizedPayment starts a checkout through the tokenized gateway and
// hands the provider redirect URL back to the caller, who completes the
// purchase by navigating there.
func (app *application) handleTokenizedPayment(w http.ResponseWriter, r *http.Request) {
	var req bkash.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Amount <= 0 {
		httputil.WriteMessage(w, http.StatusBadRequest, "amount is required")
		return
	}
	if req.CallbackURL == "" {
		req.CallbackURL = fmt.Sprintf("http://localhost:%d/api/bkash/payment/callback", app.cfg.Port)
	}

	trx, err := app.bkashTokenized.CreatePayment(r.Context(), req)
	if err != nil {
		metrics.RecordPaymentOperation("tokenized", "checkout", "error")
		app.logger.WithContext(r.Context()).WithError(err).Error("tokenized checkout failed")
		httputil.WriteError(w, err)
		return
	}

	metrics.RecordPaymentOperation("tokenized", "checkout", "ok")
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"bkashURL": trx.BkashURL})
}

// handleTokenizedCallback finishes the browser flow. The payer lands here
// from the provider; on success we execute the payment and bounce the
// browser to the front-end success page, otherwise to the error page with
// the provider's message. Every path terminates with a redirect.
func (app *application) handleTokenizedCallback(w http.ResponseWriter, r *http.Request) {
	paymentID := r.URL.Query().Get("paymentID")
	status := r.URL.Query().Get("status")

	if status != "success" {
		metrics.RecordPaymentOperation("tokenized", "callback", "skipped")
		app.redirectFailure(w, r, status)
		return
	}

	trx, err := app.bkashTokenized.ExecutePayment(r.Context(), paymentID)
	if err != nil {
		metrics.RecordPaymentOperation("tokenized", "execute", "error")
		app.logger.WithContext(r.Context()).WithError(err).Error("tokenized execution failed")
		httputil.WriteError(w, err)
		return
	}

	if trx.StatusCode != bkash.StatusCodeSuccess {
		metrics.RecordPaymentOperation("tokenized", "execute", trx.StatusCode)
		app.redirectFailure(w, r, trx.StatusMessage)
		return
	}

	metrics.RecordPaymentOperation("tokenized", "execute", "completed")
	app.persistPayment(r, trx)
	http.Redirect(w, r, app.cfg.FrontendSuccessURL, http.StatusFound)
}

func (app *application) redirectFailure(w http.ResponseWriter, r *http.Request, message string) {
	target := app.cfg.FrontendFailURL
	if message != "" {
		sep := "?"
		if u, err := url.Parse(target); err == nil && u.RawQuery != "" {
			sep = "&"
		}
		target += sep + "message=" + url.QueryEscape(message)
	}
	http.Redirect(w, r, target, http.StatusFound)
}
