// Package order builds immutable order records from the cart at checkout
// time and looks them up for the confirmation page.
package order

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for order placement and lookup.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNotFound        = errors.New("order not found")
	ErrMissingCustomer = errors.New("customer name and email are required")
	ErrMissingAddress  = errors.New("shipping address is incomplete")
)

// Statuses an order carries at creation. No payment verification happens in
// this storefront; payment is settled out of band over UPI.
const (
	StatusConfirmed      = "confirmed"
	PaymentStatusPending = "pending"
	PaymentMethodUPI     = "UPI"
)

// ShippingAddress is the structured delivery address captured at checkout.
type ShippingAddress struct {
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Phone        string `json:"phone"`
}

// CustomerInfo is the contact information captured at checkout.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Item is a line-item snapshot: product name and unit price are copied at
// order time so later catalog changes never alter historical orders.
type Item struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Order is created once at checkout and never mutated afterwards.
type Order struct {
	ID              string          `json:"id"`
	Number          string          `json:"order_number"`
	Customer        CustomerInfo    `json:"customer"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Items           []Item          `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentMethod   string          `json:"payment_method"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
