package payfast_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"unobhala/internal/payfast"
)

func samplePayload() url.Values {
	return url.Values{
		"merchant_id":    {"10000100"},
		"m_payment_id":   {"42"},
		"payment_status": {"COMPLETE"},
		"amount_gross":   {"290.00"},
	}
}

func TestValidateAcceptsValidToken(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %q", ct)
		}
		io.WriteString(w, "VALID\n")
	}))
	defer srv.Close()

	c := payfast.NewClient(srv.URL)
	if err := c.Validate(context.Background(), samplePayload()); err != nil {
		t.Fatalf("want accept, got %v", err)
	}
	// The payload must be echoed back to the processor as received.
	echoed, err := url.ParseQuery(gotBody)
	if err != nil {
		t.Fatal(err)
	}
	if echoed.Get("m_payment_id") != "42" || echoed.Get("amount_gross") != "290.00" {
		t.Fatalf("payload not forwarded intact: %q", gotBody)
	}
}

func TestValidateRejectsOtherBodies(t *testing.T) {
	for _, body := range []string{"INVALID", "", "valid", "VALID but suspicious"} {
		body := body
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		}))
		c := payfast.NewClient(srv.URL)
		err := c.Validate(context.Background(), samplePayload())
		srv.Close()
		if !errors.Is(err, payfast.ErrNotValid) {
			t.Fatalf("body %q: want ErrNotValid, got %v", body, err)
		}
	}
}

func TestValidateFailsOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening any more

	c := payfast.NewClient(srv.URL)
	if err := c.Validate(context.Background(), samplePayload()); err == nil {
		t.Fatal("unreachable validator must reject the notification")
	}
}

func TestValidateHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := payfast.NewClient(srv.URL)
	if err := c.Validate(ctx, samplePayload()); err == nil {
		t.Fatal("cancelled context must abort validation")
	}
}

func TestBuildRedirectFieldOrder(t *testing.T) {
	r := payfast.BuildRedirect("https://sandbox.payfast.example/process", payfast.RedirectParams{
		MerchantID:  "10000100",
		MerchantKey: "46f0cd694581a",
		ReturnURL:   "http://127.0.0.1:5000/payment/success?order_id=42",
		CancelURL:   "http://127.0.0.1:5000/payment/cancel?order_id=42",
		NotifyURL:   "http://127.0.0.1:5000/payment/itn",
		PaymentRef:  "42",
		Amount:      "290.00",
		ItemName:    "School Books Order #42",
	})

	if r.ProcessURL != "https://sandbox.payfast.example/process" {
		t.Fatalf("bad process url %q", r.ProcessURL)
	}
	wantOrder := []string{
		"merchant_id", "merchant_key", "return_url", "cancel_url", "notify_url",
		"name_first", "email_address", "m_payment_id", "amount", "item_name",
	}
	if len(r.Fields) != len(wantOrder) {
		t.Fatalf("want %d fields, got %d", len(wantOrder), len(r.Fields))
	}
	for i, name := range wantOrder {
		if r.Fields[i].Name != name {
			t.Fatalf("field %d: want %s, got %s", i, name, r.Fields[i].Name)
		}
	}
	byName := map[string]string{}
	for _, f := range r.Fields {
		byName[f.Name] = f.Value
	}
	if byName["amount"] != "290.00" || byName["m_payment_id"] != "42" {
		t.Fatalf("payment fields wrong: %+v", byName)
	}
}
