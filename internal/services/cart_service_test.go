package services_test

import (
	"errors"
	"testing"

	"unobhala/internal/repos"
	"unobhala/internal/services"
)

func TestCartAddAndIncrement(t *testing.T) {
	db := memdbShop(t)
	svc := services.NewCartService(repos.NewProductRepo(db))

	cart, err := svc.Add(services.Cart{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart) != 1 || cart[0].Quantity != 1 || cart[0].Price != 120.00 {
		t.Fatalf("unexpected cart after first add: %+v", cart)
	}
	if cart[0].Name != "School Maths Book" {
		t.Fatalf("display snapshot missing: %+v", cart[0])
	}

	cart, err = svc.Add(cart, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart) != 1 || cart[0].Quantity != 2 {
		t.Fatalf("same product must increment, not duplicate: %+v", cart)
	}

	if _, err := svc.Add(cart, 999); !errors.Is(err, services.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestRemoveOne(t *testing.T) {
	cart := services.Cart{
		{ProductID: 1, Price: 120.00, Quantity: 2},
		{ProductID: 2, Price: 85.00, Quantity: 1},
	}

	cart = services.RemoveOne(cart, 1)
	if len(cart) != 2 || cart[0].Quantity != 1 {
		t.Fatalf("want decrement to 1, got %+v", cart)
	}

	cart = services.RemoveOne(cart, 1)
	if len(cart) != 1 || cart[0].ProductID != 2 {
		t.Fatalf("line must drop at zero, got %+v", cart)
	}

	// Removing something not in the cart changes nothing.
	cart = services.RemoveOne(cart, 999)
	if len(cart) != 1 {
		t.Fatalf("unexpected cart: %+v", cart)
	}
}

func TestDecodeCartRejectsBadPayloads(t *testing.T) {
	if got := services.DecodeCart(nil); len(got) != 0 {
		t.Fatalf("nil bytes: want empty cart, got %+v", got)
	}
	if got := services.DecodeCart([]byte(`{"broken"`)); len(got) != 0 {
		t.Fatalf("malformed json: want empty cart, got %+v", got)
	}
	if got := services.DecodeCart([]byte(`"a string"`)); len(got) != 0 {
		t.Fatalf("wrong shape: want empty cart, got %+v", got)
	}

	// Entries without a positive id and quantity are dropped, the rest kept.
	raw := []byte(`[
	  {"id": 1, "name": "Book", "price": 120, "quantity": 2},
	  {"id": 0, "name": "Ghost", "price": 5, "quantity": 1},
	  {"id": 2, "name": "Guide", "price": 85, "quantity": 0}
	]`)
	got := services.DecodeCart(raw)
	if len(got) != 1 || got[0].ProductID != 1 || got[0].Quantity != 2 {
		t.Fatalf("want only the valid line, got %+v", got)
	}
}

func TestCartEncodeDecodeRoundtrip(t *testing.T) {
	cart := services.Cart{{ProductID: 1, Name: "Book", Price: 120.00, Image: "b.jpg", Quantity: 3}}
	got := services.DecodeCart(cart.Encode())
	if len(got) != 1 || got[0] != cart[0] {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestCartTotalsAndCount(t *testing.T) {
	cart := services.Cart{
		{ProductID: 1, Price: 120.00, Quantity: 1},
		{ProductID: 2, Price: 85.00, Quantity: 2},
	}
	if got := cart.Total(); got != 290.00 {
		t.Fatalf("want total 290.00, got %v", got)
	}
	if got := cart.Count(); got != 3 {
		t.Fatalf("want count 3, got %d", got)
	}
	if got := (services.Cart{}).Total(); got != 0 {
		t.Fatalf("empty cart total must be 0, got %v", got)
	}
}
