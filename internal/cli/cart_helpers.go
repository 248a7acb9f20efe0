package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dwelter/storefront-cli/internal/config"
	"github.com/dwelter/storefront-cli/internal/domain"
	"github.com/dwelter/storefront-cli/internal/service/cart"
	"github.com/dwelter/storefront-cli/internal/service/checkout"
)

type itemSpec struct {
	Category string
	ID       string
	Quantity int
}

// parseItemSpecs parses repeatable --item values of the form
// category/id or category/id:count.
func parseItemSpecs(raw []string) ([]itemSpec, error) {
	specs := make([]itemSpec, 0, len(raw))
	for _, item := range raw {
		token := strings.TrimSpace(item)
		if token == "" {
			continue
		}
		quantity := 1
		if strings.Contains(token, ":") {
			parts := strings.SplitN(token, ":", 2)
			countToken := strings.TrimSpace(parts[1])
			parsedCount, err := strconv.Atoi(countToken)
			if err != nil || parsedCount <= 0 {
				return nil, fmt.Errorf("invalid --item value %q, count must be a positive integer", item)
			}
			token = strings.TrimSpace(parts[0])
			quantity = parsedCount
		}
		parts := strings.SplitN(token, "/", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("invalid --item value %q, expected category/id or category/id:count", item)
		}
		specs = append(specs, itemSpec{
			Category: strings.TrimSpace(parts[0]),
			ID:       strings.TrimSpace(parts[1]),
			Quantity: quantity,
		})
	}
	return specs, nil
}

// fillCart resolves item specs against the assembled catalog and adds the
// matching snapshots to the cart.
func fillCart(basket *cart.Store, assembled domain.Catalog, specs []itemSpec) error {
	for _, spec := range specs {
		item, err := findItem(assembled, spec.Category, spec.ID)
		if err != nil {
			return err
		}
		for i := 0; i < spec.Quantity; i++ {
			basket.Add(item)
		}
	}
	return nil
}

func findItem(assembled domain.Catalog, category, id string) (domain.MenuItem, error) {
	items, ok := assembled[category]
	if !ok {
		return domain.MenuItem{}, fmt.Errorf("unknown category %q", category)
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.MenuItem{}, fmt.Errorf("unknown item %q in category %q", id, category)
}

// applyProfileToPickup pre-fills empty pickup fields from a saved profile.
func applyProfileToPickup(details checkout.PickupDetails, profile config.Profile) checkout.PickupDetails {
	if strings.TrimSpace(details.Name) == "" {
		details.Name = profile.CustomerName
	}
	if strings.TrimSpace(details.Phone) == "" {
		details.Phone = profile.Phone
	}
	return details
}

// applyProfileToDelivery pre-fills empty delivery fields from a saved
// profile. Flag values always win.
func applyProfileToDelivery(details checkout.DeliveryDetails, profile config.Profile) checkout.DeliveryDetails {
	if strings.TrimSpace(details.Name) == "" {
		details.Name = profile.CustomerName
	}
	if strings.TrimSpace(details.Phone) == "" {
		details.Phone = profile.Phone
	}
	if strings.TrimSpace(details.Email) == "" {
		details.Email = profile.Email
	}
	if strings.TrimSpace(details.Address) == "" {
		details.Address = profile.Address
	}
	if details.Payment.Method == "" && profile.Payment != "" {
		if method, err := domain.ParsePaymentMethod(profile.Payment); err == nil {
			details.Payment.Method = method
		}
	}
	if strings.TrimSpace(details.Payment.PaypalEmail) == "" {
		details.Payment.PaypalEmail = profile.PaypalEmail
	}
	if strings.TrimSpace(details.Payment.CardNumber) == "" {
		details.Payment.CardNumber = profile.CardNumber
	}
	if strings.TrimSpace(details.Payment.ExpirationDate) == "" {
		details.Payment.ExpirationDate = profile.ExpirationDate
	}
	return details
}

// renderCartRows renders the cart for table display.
func renderCartRows(basket *cart.Store) ([][]string, error) {
	entries := basket.Entries()
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		line, err := entry.LineTotal()
		if err != nil {
			return nil, err
		}
		rows = append(rows, []string{
			entry.Key().String(),
			entry.Name,
			strconv.Itoa(entry.Quantity),
			entry.Price,
			domain.FormatAmount(line),
		})
	}
	return rows, nil
}
