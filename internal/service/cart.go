package service

import (
	"context"
	"math"
	"slices"

	"github.com/vanshika/worldsporta/backend/internal/domain"
)

// The cart is session state: it is never written to the namespace and is
// emptied on logout and after checkout.

// AddToCart adds product with quantity 1, or increments the quantity of the
// existing line for the same product id.
func (s *SiteService) AddToCart(product domain.Product) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(product)
	return slices.Clone(s.cart)
}

// AddProductToCart resolves id against the catalogue and adds it.
func (s *SiteService) AddProductToCart(id string) ([]domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.productLocked(id)
	if err != nil {
		return nil, err
	}
	s.addLocked(p)
	return slices.Clone(s.cart), nil
}

func (s *SiteService) addLocked(product domain.Product) {
	for i := range s.cart {
		if s.cart[i].ID == product.ID {
			s.cart[i].Quantity++
			return
		}
	}
	s.cart = append(s.cart, domain.CartItem{Product: product, Quantity: 1})
}

// RemoveFromCart drops the line for id. Other lines keep their quantities.
func (s *SiteService) RemoveFromCart(id string) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = slices.DeleteFunc(s.cart, func(item domain.CartItem) bool {
		return item.ID == id
	})
	return slices.Clone(s.cart)
}

// ClearCart empties the cart.
func (s *SiteService) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

// Cart returns the current lines.
func (s *SiteService) Cart() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.cart)
}

// CartCount is the sum of quantities, as shown on the navigation badge.
func (s *SiteService) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.cart {
		n += item.Quantity
	}
	return n
}

// CartTotal is the sum of line subtotals.
func (s *SiteService) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartTotal(s.cart)
}

func cartTotal(items []domain.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return math.Round(total*100) / 100
}

// Checkout turns the cart into an order for the signed-in user. The order is
// placed at the head of the orders collection and the cart is emptied.
func (s *SiteService) Checkout(ctx context.Context) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return domain.Order{}, ErrNotAuthenticated
	}
	if len(s.cart) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	order := domain.Order{
		ID:     s.idFn(),
		UserID: s.currentUser.ID,
		Items:  slices.Clone(s.cart),
		Total:  cartTotal(s.cart),
		Date:   s.nowFn().UTC(),
		Status: domain.OrderProcessing,
	}

	s.orders = append([]domain.Order{order}, s.orders...)
	s.repo.Orders.Save(ctx, s.orders)
	s.cart = nil

	s.logger.Info("order placed", "orderId", order.ID, "userId", order.UserID, "total", order.Total)
	return cloneOrder(order), nil
}
