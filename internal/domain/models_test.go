package domain

import (
	"encoding/json"
	"testing"
)

func TestCartEntryFlattensIntoPayload(t *testing.T) {
	entry := CartEntry{
		MenuItem: MenuItem{ID: "1", Name: "Margherita", Price: "7,50€", Category: "Pizza"},
		Quantity: 2,
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal cart entry: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal cart entry: %v", err)
	}
	if decoded["name"] != "Margherita" {
		t.Fatalf("expected flattened item fields, got %v", decoded)
	}
	if decoded["quantity"] != float64(2) {
		t.Fatalf("expected quantity next to item fields, got %v", decoded)
	}
	if _, ok := decoded["Category"]; ok {
		t.Fatal("category must not leak into the payload")
	}
}

func TestOrderPayloadShapes(t *testing.T) {
	pickup, err := json.Marshal(PickupOrder{Name: "Max", Phone: "0511"})
	if err != nil {
		t.Fatalf("marshal pickup order: %v", err)
	}
	var pickupFields map[string]any
	if err := json.Unmarshal(pickup, &pickupFields); err != nil {
		t.Fatalf("unmarshal pickup order: %v", err)
	}
	if _, ok := pickupFields["timestamp"]; ok {
		t.Fatal("pickup orders must not carry a timestamp")
	}

	delivery, err := json.Marshal(DeliveryOrder{
		Payment:       PaymentCash,
		PaymentMethod: PaymentCash,
		Timestamp:     "2026-08-31T12:00:00Z",
	})
	if err != nil {
		t.Fatalf("marshal delivery order: %v", err)
	}
	var deliveryFields map[string]any
	if err := json.Unmarshal(delivery, &deliveryFields); err != nil {
		t.Fatalf("unmarshal delivery order: %v", err)
	}
	if deliveryFields["payment"] != "Cash" || deliveryFields["paymentMethod"] != "Cash" {
		t.Fatalf("expected both payment keys, got %v", deliveryFields)
	}
	if deliveryFields["timestamp"] != "2026-08-31T12:00:00Z" {
		t.Fatalf("expected timestamp, got %v", deliveryFields)
	}
	if _, ok := deliveryFields["cvv"]; ok {
		t.Fatal("unused payment variant fields must stay absent")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	cases := map[string]PaymentMethod{
		"paypal": PaymentPaypal,
		"Card":   PaymentCard,
		" CASH ": PaymentCash,
	}
	for input, want := range cases {
		got, err := ParsePaymentMethod(input)
		if err != nil {
			t.Fatalf("parse %q returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("expected %q for %q, got %q", want, input, got)
		}
	}
	if _, err := ParsePaymentMethod("bitcoin"); err == nil {
		t.Fatal("expected error for unsupported payment method")
	}
}
