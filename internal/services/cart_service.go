package services

import (
	"encoding/json"
	"errors"

	"unobhala/internal/money"
	"unobhala/internal/repos"
)

var ErrProductNotFound = errors.New("product not found")

// CartItem is one line of the session cart. Price is a display snapshot taken
// when the item was added; checkout never trusts it for money math.
type CartItem struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Cart is the ordered session cart, unique by product id.
type Cart []CartItem

// DecodeCart validates cart bytes at the session boundary. Malformed payloads
// yield an empty cart and entries without a positive quantity are dropped, so
// every consumer downstream sees well-formed items only.
func DecodeCart(raw []byte) Cart {
	if len(raw) == 0 {
		return Cart{}
	}
	var items []CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return Cart{}
	}
	out := make(Cart, 0, len(items))
	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity < 1 {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (c Cart) Encode() []byte {
	b, _ := json.Marshal([]CartItem(c))
	return b
}

// Total is advisory only: snapshot price times quantity, rounded to 2 decimals.
func (c Cart) Total() float64 {
	sum := 0.0
	for _, it := range c {
		sum += it.Price * float64(it.Quantity)
	}
	return money.Round2(sum)
}

func (c Cart) Count() int {
	n := 0
	for _, it := range c {
		n += it.Quantity
	}
	return n
}

type CartService struct {
	Products *repos.ProductRepo
}

func NewCartService(products *repos.ProductRepo) *CartService {
	return &CartService{Products: products}
}

// Add puts one unit of the product in the cart, snapshotting the catalog
// price for display. An existing line just gains quantity.
func (s *CartService) Add(cart Cart, productID int64) (Cart, error) {
	p, err := s.Products.Get(productID)
	if err != nil {
		return cart, ErrProductNotFound
	}
	for i := range cart {
		if cart[i].ProductID == p.ID {
			cart[i].Quantity++
			return cart, nil
		}
	}
	return append(cart, CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	}), nil
}

// RemoveOne decrements a line, dropping it entirely at quantity zero.
func RemoveOne(cart Cart, productID int64) Cart {
	out := make(Cart, 0, len(cart))
	for _, it := range cart {
		if it.ProductID == productID {
			if it.Quantity > 1 {
				it.Quantity--
				out = append(out, it)
			}
			continue
		}
		out = append(out, it)
	}
	return out
}
