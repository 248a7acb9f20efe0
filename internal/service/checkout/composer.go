package checkout

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/op/go-logging"

	"github.com/dwelter/storefront-cli/internal/domain"
	"github.com/dwelter/storefront-cli/internal/gateway/docstore"
)

var log = logging.MustGetLogger("checkout")

const (
	pickupCollection   = "Abholungen"
	deliveryCollection = "Bestellungen"
)

// ValidationError reports the required-field group an order composition
// failed on. Nothing is submitted when composition fails.
type ValidationError struct {
	Group   string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required %s fields: %s", e.Group, strings.Join(e.Missing, ", "))
}

// PickupDetails are the fields a pickup order requires.
type PickupDetails struct {
	Name  string
	Phone string
}

// DeliveryDetails are the fields a delivery order requires.
type DeliveryDetails struct {
	Name    string
	Email   string
	Address string
	Phone   string
	Payment domain.PaymentDetails
}

// Basket is the cart view the composer consumes.
type Basket interface {
	Snapshot() map[string]domain.CartEntry
	Total() (string, error)
}

// Composer validates order details, builds the submission payload and writes
// it to the document store. It never mutates the cart; after a successful
// submission the caller clears it.
type Composer struct {
	docs docstore.API
	now  func() time.Time
}

// Option applies Composer options.
type Option func(*Composer)

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		c.now = now
	}
}

// NewComposer creates an order composer backed by the document store.
func NewComposer(docs docstore.API, opts ...Option) *Composer {
	c := &Composer{docs: docs, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ComposePickup validates pickup details and builds the order payload.
func (c *Composer) ComposePickup(details PickupDetails, basket Basket) (domain.PickupOrder, error) {
	missing := missingFields(map[string]string{
		"name":  details.Name,
		"phone": details.Phone,
	})
	if len(missing) > 0 {
		return domain.PickupOrder{}, &ValidationError{Group: "pickup", Missing: missing}
	}
	total, err := basket.Total()
	if err != nil {
		return domain.PickupOrder{}, err
	}
	return domain.PickupOrder{
		Name:       details.Name,
		Phone:      details.Phone,
		CartItems:  basket.Snapshot(),
		TotalPrice: total,
	}, nil
}

// ComposeDelivery validates delivery and payment details and builds the
// order payload. Delivery orders always carry a timestamp.
func (c *Composer) ComposeDelivery(details DeliveryDetails, basket Basket) (domain.DeliveryOrder, error) {
	missing := missingFields(map[string]string{
		"name":    details.Name,
		"email":   details.Email,
		"address": details.Address,
		"phone":   details.Phone,
		"payment": string(details.Payment.Method),
	})
	if len(missing) > 0 {
		return domain.DeliveryOrder{}, &ValidationError{Group: "delivery", Missing: missing}
	}
	if err := validatePayment(details.Payment); err != nil {
		return domain.DeliveryOrder{}, err
	}
	total, err := basket.Total()
	if err != nil {
		return domain.DeliveryOrder{}, err
	}

	order := domain.DeliveryOrder{
		Name:          details.Name,
		Email:         details.Email,
		Address:       details.Address,
		Phone:         details.Phone,
		Payment:       details.Payment.Method,
		PaymentMethod: details.Payment.Method,
		CartItems:     basket.Snapshot(),
		TotalPrice:    total,
		Timestamp:     c.now().UTC().Format(time.RFC3339),
	}
	switch details.Payment.Method {
	case domain.PaymentPaypal:
		order.PaypalEmail = details.Payment.PaypalEmail
	case domain.PaymentCard:
		order.CardNumber = details.Payment.CardNumber
		order.ExpirationDate = details.Payment.ExpirationDate
		order.CVV = details.Payment.CVV
	}
	return order, nil
}

// SubmitPickup composes and writes a pickup order, returning the stored
// document id.
func (c *Composer) SubmitPickup(ctx context.Context, details PickupDetails, basket Basket) (string, error) {
	order, err := c.ComposePickup(details, basket)
	if err != nil {
		return "", err
	}
	id, err := c.docs.Insert(ctx, pickupCollection, order)
	if err != nil {
		return "", fmt.Errorf("submit pickup order: %w", err)
	}
	log.Infof("pickup order %s submitted, total %s", id, order.TotalPrice)
	return id, nil
}

// SubmitDelivery composes and writes a delivery order, returning the stored
// document id.
func (c *Composer) SubmitDelivery(ctx context.Context, details DeliveryDetails, basket Basket) (string, error) {
	order, err := c.ComposeDelivery(details, basket)
	if err != nil {
		return "", err
	}
	id, err := c.docs.Insert(ctx, deliveryCollection, order)
	if err != nil {
		return "", fmt.Errorf("submit delivery order: %w", err)
	}
	log.Infof("delivery order %s submitted, total %s", id, order.TotalPrice)
	return id, nil
}

func validatePayment(payment domain.PaymentDetails) error {
	switch payment.Method {
	case domain.PaymentPaypal:
		if strings.TrimSpace(payment.PaypalEmail) == "" {
			return &ValidationError{Group: "payment", Missing: []string{"paypal email"}}
		}
	case domain.PaymentCard:
		missing := missingFields(map[string]string{
			"card number":     payment.CardNumber,
			"expiration date": payment.ExpirationDate,
			"cvv":             payment.CVV,
		})
		if len(missing) > 0 {
			return &ValidationError{Group: "payment", Missing: missing}
		}
	case domain.PaymentCash:
		// Cash requires no further fields.
	default:
		return &ValidationError{Group: "payment", Missing: []string{"payment method"}}
	}
	return nil
}

func missingFields(fields map[string]string) []string {
	missing := make([]string, 0)
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
