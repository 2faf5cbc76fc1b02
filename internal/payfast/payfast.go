// Package payfast talks to the PayFast gateway: it builds the browser
// redirect payload for the hosted payment page and confirms ITN callbacks
// against the server-side validation endpoint.
package payfast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ITN payload fields this application consumes.
const (
	FieldMerchantID    = "merchant_id"
	FieldPaymentRef    = "m_payment_id"
	FieldPaymentStatus = "payment_status"
	FieldAmountGross   = "amount_gross"
	FieldProcessorRef  = "pf_payment_id"
)

// acceptToken is the literal body the validation endpoint returns for an
// authentic notification.
const acceptToken = "VALID"

var ErrNotValid = errors.New("payfast: notification rejected by validator")

// Field preserves the order PayFast expects in the hosted-page form.
type Field struct {
	Name  string
	Value string
}

// Redirect is everything the browser needs to hand off to the gateway.
type Redirect struct {
	ProcessURL string
	Fields     []Field
}

type RedirectParams struct {
	MerchantID  string
	MerchantKey string
	ReturnURL   string
	CancelURL   string
	NotifyURL   string
	PaymentRef  string // order id as a string
	Amount      string // exactly two decimals
	ItemName    string
}

func BuildRedirect(processURL string, p RedirectParams) Redirect {
	return Redirect{
		ProcessURL: processURL,
		Fields: []Field{
			{"merchant_id", p.MerchantID},
			{"merchant_key", p.MerchantKey},
			{"return_url", p.ReturnURL},
			{"cancel_url", p.CancelURL},
			{"notify_url", p.NotifyURL},
			{"name_first", "Customer"},
			{"email_address", "customer@email.com"},
			{"m_payment_id", p.PaymentRef},
			{"amount", p.Amount},
			{"item_name", p.ItemName},
		},
	}
}

// Validator confirms a received ITN payload with the processor.
type Validator interface {
	Validate(ctx context.Context, payload url.Values) error
}

// Client posts payloads back to the PayFast validation endpoint. The timeout
// bounds how long an ITN handler can hang on the gateway.
type Client struct {
	ValidateURL string
	HTTPClient  *http.Client
}

func NewClient(validateURL string) *Client {
	return &Client{
		ValidateURL: validateURL,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Validate forwards the payload form-encoded and requires the literal
// acceptance token in response. Any transport failure or other body means the
// notification must be rejected.
func (c *Client) Validate(ctx context.Context, payload url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ValidateURL,
		strings.NewReader(payload.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("payfast: validation call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return fmt.Errorf("payfast: reading validation response: %w", err)
	}
	if strings.TrimSpace(string(body)) != acceptToken {
		return ErrNotValid
	}
	return nil
}
