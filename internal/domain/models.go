package domain

import (
	"fmt"
	"strings"
)

// MenuItem is one purchasable catalog entry. Price keeps the original
// formatted string from the category document; the numeric value is derived
// on demand with ParsePrice.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Ingredients []string `json:"ingredients"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Category    string   `json:"-"`
}

// Catalog maps category names to their discovery-ordered items.
type Catalog map[string][]MenuItem

// ItemKey identifies a cart entry. Item ids are only unique within a
// category, so the cart keys entries by category and id together.
type ItemKey struct {
	Category string
	ID       string
}

// Key returns the composite key for an item.
func (i MenuItem) Key() ItemKey {
	return ItemKey{Category: i.Category, ID: i.ID}
}

func (k ItemKey) String() string {
	return k.Category + "/" + k.ID
}

// CartEntry is a snapshot of one menu item plus its quantity. The embedded
// item flattens into the submitted payload next to the quantity field.
type CartEntry struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// LineTotal derives quantity times the parsed item price.
func (e CartEntry) LineTotal() (float64, error) {
	price, err := ParsePrice(e.Price)
	if err != nil {
		return 0, err
	}
	return float64(e.Quantity) * price, nil
}

// PaymentMethod selects one payment variant for a delivery order.
type PaymentMethod string

const (
	PaymentPaypal PaymentMethod = "Paypal"
	PaymentCard   PaymentMethod = "Card"
	PaymentCash   PaymentMethod = "Cash"
)

// ParsePaymentMethod validates payment method values.
func ParsePaymentMethod(v string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "paypal":
		return PaymentPaypal, nil
	case "card":
		return PaymentCard, nil
	case "cash":
		return PaymentCash, nil
	default:
		return "", fmt.Errorf("unsupported payment method %q", v)
	}
}

// PaymentDetails stores the fields of the selected payment variant. Exactly
// one variant is active per order; the others stay empty.
type PaymentDetails struct {
	Method         PaymentMethod
	PaypalEmail    string
	CardNumber     string
	ExpirationDate string
	CVV            string
}

// PickupOrder is the payload written to the pickup collection. Pickup orders
// carry no timestamp and no payment fields.
type PickupOrder struct {
	Name       string               `json:"name"`
	Phone      string               `json:"phone"`
	CartItems  map[string]CartEntry `json:"cartItems"`
	TotalPrice string               `json:"totalPrice"`
}

// DeliveryOrder is the payload written to the delivery collection. Field
// names mirror the documents the fulfilment pipeline already consumes,
// including the duplicated payment/paymentMethod pair.
type DeliveryOrder struct {
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	Address        string               `json:"address"`
	Phone          string               `json:"phone"`
	Payment        PaymentMethod        `json:"payment"`
	PaymentMethod  PaymentMethod        `json:"paymentMethod"`
	CartItems      map[string]CartEntry `json:"cartItems"`
	TotalPrice     string               `json:"totalPrice"`
	Timestamp      string               `json:"timestamp"`
	PaypalEmail    string               `json:"paypalEmail,omitempty"`
	CardNumber     string               `json:"cardNumber,omitempty"`
	ExpirationDate string               `json:"expirationDate,omitempty"`
	CVV            string               `json:"cvv,omitempty"`
}

// NewsItem is one feed entry. The Description tag keeps the capitalized key
// used by existing feed documents.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"Description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// StoreInfo mirrors the StoreInformations document, misspellings included.
type StoreInfo struct {
	Name    string `json:"Name"`
	Address string `json:"Addres"`
	Phone   string `json:"phone"`
	Email   string `json:"E-Mail"`
}

// ServiceSchedule maps weekday names to opening-hour strings.
type ServiceSchedule map[string]string

// StoreLocation stores the map coordinates of the store.
type StoreLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsZero reports whether no coordinates were provided.
func (l StoreLocation) IsZero() bool {
	return l.Latitude == 0 && l.Longitude == 0
}
