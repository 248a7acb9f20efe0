package cli

import (
	"testing"

	"github.com/dwelter/storefront-cli/internal/config"
	"github.com/dwelter/storefront-cli/internal/domain"
	"github.com/dwelter/storefront-cli/internal/service/cart"
	"github.com/dwelter/storefront-cli/internal/service/checkout"
)

func TestParseItemSpecs(t *testing.T) {
	specs, err := parseItemSpecs([]string{"Pizza/1", "Salads/1:3", " ", ""})
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].Category != "Pizza" || specs[0].ID != "1" || specs[0].Quantity != 1 {
		t.Fatalf("unexpected spec %+v", specs[0])
	}
	if specs[1].Quantity != 3 {
		t.Fatalf("expected explicit count, got %+v", specs[1])
	}
}

func TestParseItemSpecsRejectsBadInput(t *testing.T) {
	for _, raw := range []string{"Pizza", "Pizza/", "/1", "Pizza/1:0", "Pizza/1:many"} {
		if _, err := parseItemSpecs([]string{raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestFillCart(t *testing.T) {
	assembled := domain.Catalog{
		"Pizza": {{ID: "1", Name: "Margherita", Price: "8,00€", Category: "Pizza"}},
	}
	basket := cart.NewStore()

	err := fillCart(basket, assembled, []itemSpec{{Category: "Pizza", ID: "1", Quantity: 2}})
	if err != nil {
		t.Fatalf("fill returned error: %v", err)
	}
	if basket.Count() != 2 {
		t.Fatalf("expected 2 items, got %d", basket.Count())
	}

	if err := fillCart(basket, assembled, []itemSpec{{Category: "Pizza", ID: "9", Quantity: 1}}); err == nil {
		t.Fatal("expected error for unknown item")
	}
	if err := fillCart(basket, assembled, []itemSpec{{Category: "Desserts", ID: "1", Quantity: 1}}); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestProfilePrefillKeepsFlagValues(t *testing.T) {
	profile := config.Profile{
		CustomerName: "Max",
		Phone:        "0511",
		Email:        "max@example.test",
		Address:      "Hauptstr. 1",
		Payment:      "card",
		CardNumber:   "4111",
	}

	pickup := applyProfileToPickup(checkout.PickupDetails{Name: "Moritz"}, profile)
	if pickup.Name != "Moritz" {
		t.Fatalf("flag value must win, got %q", pickup.Name)
	}
	if pickup.Phone != "0511" {
		t.Fatalf("expected profile phone, got %q", pickup.Phone)
	}

	delivery := applyProfileToDelivery(checkout.DeliveryDetails{
		Payment: domain.PaymentDetails{Method: domain.PaymentCash},
	}, profile)
	if delivery.Payment.Method != domain.PaymentCash {
		t.Fatalf("explicit payment method must win, got %q", delivery.Payment.Method)
	}
	if delivery.Email != "max@example.test" || delivery.Address != "Hauptstr. 1" {
		t.Fatalf("expected profile contact fields, got %+v", delivery)
	}

	delivery = applyProfileToDelivery(checkout.DeliveryDetails{}, profile)
	if delivery.Payment.Method != domain.PaymentCard {
		t.Fatalf("expected profile payment method, got %q", delivery.Payment.Method)
	}
	if delivery.Payment.CardNumber != "4111" {
		t.Fatalf("expected profile card number, got %q", delivery.Payment.CardNumber)
	}
}

func TestRenderCartRows(t *testing.T) {
	basket := cart.NewStore()
	basket.Add(domain.MenuItem{ID: "1", Name: "Margherita", Price: "8,00€", Category: "Pizza"})
	basket.Add(domain.MenuItem{ID: "1", Name: "Margherita", Price: "8,00€", Category: "Pizza"})

	rows, err := renderCartRows(basket)
	if err != nil {
		t.Fatalf("render returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row[0] != "Pizza/1" || row[2] != "2" || row[4] != "16.00" {
		t.Fatalf("unexpected row %v", row)
	}
}
