package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"unobhala/internal/domain"
	"unobhala/internal/money"
	"unobhala/internal/payfast"
	"unobhala/internal/repos"
	"unobhala/internal/secrets"
)

// Gateway carries the merchant settings the checkout engine needs.
type Gateway struct {
	MerchantID  string
	MerchantKey string
	ProcessURL  string
	ReturnURL   string
	CancelURL   string
	NotifyURL   string
}

// CheckoutService is the order reconciliation engine: it validates carts
// against live catalog prices, creates orders atomically, builds the gateway
// handoff and consumes payment notifications.
type CheckoutService struct {
	Products  *repos.ProductRepo
	Orders    *repos.OrderRepo
	Cipher    *secrets.Cipher
	Validator payfast.Validator
	Gateway   Gateway
}

func NewCheckoutService(products *repos.ProductRepo, orders *repos.OrderRepo,
	cipher *secrets.Cipher, validator payfast.Validator, gw Gateway) *CheckoutService {
	return &CheckoutService{Products: products, Orders: orders, Cipher: cipher, Validator: validator, Gateway: gw}
}

// ValidatedItem is a cart line after reconciliation against the catalog:
// quantity clamped to at least one, price re-read from the products table.
type ValidatedItem struct {
	ProductID int64
	Quantity  int
	Price     float64
}

// ValidateCart re-fetches every cart line from the catalog. Lines whose
// product no longer exists are dropped silently. Returns ErrEmptyCart when
// nothing survives or the recomputed subtotal is not positive.
func (s *CheckoutService) ValidateCart(cart Cart) ([]ValidatedItem, float64, error) {
	items := make([]ValidatedItem, 0, len(cart))
	subtotal := 0.0
	for _, line := range cart {
		p, err := s.Products.Get(line.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, ValidatedItem{ProductID: p.ID, Quantity: qty, Price: p.Price})
		subtotal += p.Price * float64(qty)
	}
	if len(items) == 0 || subtotal <= 0 {
		return nil, 0, ErrEmptyCart
	}
	return items, money.Round2(subtotal), nil
}

// CreateOrder encrypts the customer identifiers, computes the revenue split
// and persists the order with its items in one transaction.
func (s *CheckoutService) CreateOrder(name, phone string, items []ValidatedItem, subtotal float64) (int64, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return 0, ErrMissingFields
	}
	if len(items) == 0 {
		return 0, ErrEmptyCart
	}

	encName, err := s.Cipher.Encrypt(name)
	if err != nil {
		return 0, err
	}
	encPhone, err := s.Cipher.Encrypt(phone)
	if err != nil {
		return 0, err
	}

	school, supplier, courier := money.Split(subtotal)
	deliveryFee := 0.0
	total := money.Round2(subtotal + deliveryFee)

	order := domain.Order{
		CustomerName:   encName,
		CustomerPhone:  encPhone,
		Subtotal:       subtotal,
		DeliveryFee:    deliveryFee,
		SchoolAmount:   school,
		SupplierAmount: supplier,
		CourierAmount:  courier,
		TotalAmount:    total,
		Status:         string(domain.OrderPending),
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return s.Orders.CreateWithItems(order, orderItems)
}

// PaymentRequest builds the browser redirect for a pending order. Any other
// status reads as not found so a settled order cannot be paid again.
func (s *CheckoutService) PaymentRequest(orderID int64) (payfast.Redirect, error) {
	o, err := s.Orders.GetWithStatus(orderID, domain.OrderPending)
	if errors.Is(err, sql.ErrNoRows) {
		return payfast.Redirect{}, ErrOrderNotFound
	}
	if err != nil {
		return payfast.Redirect{}, err
	}
	ref := strconv.FormatInt(o.ID, 10)
	return payfast.BuildRedirect(s.Gateway.ProcessURL, payfast.RedirectParams{
		MerchantID:  s.Gateway.MerchantID,
		MerchantKey: s.Gateway.MerchantKey,
		ReturnURL:   s.Gateway.ReturnURL + "?order_id=" + ref,
		CancelURL:   s.Gateway.CancelURL + "?order_id=" + ref,
		NotifyURL:   s.Gateway.NotifyURL,
		PaymentRef:  ref,
		Amount:      money.Format(o.TotalAmount),
		ItemName:    fmt.Sprintf("School Books Order #%d", o.ID),
	}), nil
}

// NotificationResult reports what a consumed notification did.
type NotificationResult struct {
	OrderID int64
	Target  domain.OrderStatus // empty when the status was intermediate
	Applied bool               // false for replays and intermediate statuses
}

// HandleNotification consumes one ITN delivery. Checks run in order: gateway
// validation, merchant identity, order lookup, cent-exact amount match. Only
// then may the order settle, and only from pending — a replayed or stale
// notification never rewrites a settled order.
func (s *CheckoutService) HandleNotification(ctx context.Context, payload url.Values) (NotificationResult, error) {
	if err := s.Validator.Validate(ctx, payload); err != nil {
		return NotificationResult{}, fmt.Errorf("%w: %s", ErrInvalidNotification, err)
	}
	if payload.Get(payfast.FieldMerchantID) != s.Gateway.MerchantID {
		return NotificationResult{}, ErrMerchantMismatch
	}

	ref := strings.TrimSpace(payload.Get(payfast.FieldPaymentRef))
	if ref == "" {
		return NotificationResult{}, ErrMissingReference
	}
	orderID, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return NotificationResult{}, ErrOrderNotFound
	}
	order, err := s.Orders.Get(orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return NotificationResult{}, ErrOrderNotFound
	}
	if err != nil {
		return NotificationResult{}, err
	}

	gross, err := money.Parse(payload.Get(payfast.FieldAmountGross))
	if err != nil {
		return NotificationResult{OrderID: orderID}, ErrAmountMismatch
	}
	if !money.Equal(gross, order.TotalAmount) {
		return NotificationResult{OrderID: orderID}, ErrAmountMismatch
	}

	var target domain.OrderStatus
	switch payload.Get(payfast.FieldPaymentStatus) {
	case domain.PaymentComplete:
		target = domain.OrderPaid
	case domain.PaymentFailed, domain.PaymentCancelled:
		target = domain.OrderFailed
	default:
		// Intermediate status: authentic, but nothing to apply.
		return NotificationResult{OrderID: orderID}, nil
	}

	applied, err := s.Orders.SetStatusFromPending(orderID, target)
	if err != nil {
		return NotificationResult{OrderID: orderID}, err
	}
	return NotificationResult{OrderID: orderID, Target: target, Applied: applied}, nil
}

// PaidOrder gates the success page: it returns the order only when its stored
// status is paid, regardless of what the return URL claims.
func (s *CheckoutService) PaidOrder(orderID int64) (domain.Order, error) {
	o, err := s.Orders.GetWithStatus(orderID, domain.OrderPaid)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, ErrOrderNotFound
	}
	return o, err
}
