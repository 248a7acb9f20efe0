package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dwelter/storefront-cli/internal/config"
	"github.com/dwelter/storefront-cli/internal/domain"
	"github.com/dwelter/storefront-cli/internal/service/cart"
	"github.com/dwelter/storefront-cli/internal/service/catalog"
	"github.com/dwelter/storefront-cli/internal/service/checkout"
	"github.com/dwelter/storefront-cli/internal/service/output"
)

func newCheckoutCommand(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place a one-shot pickup or delivery order from --item flags.",
	}
	cmd.AddCommand(newCheckoutPickupCommand(deps))
	cmd.AddCommand(newCheckoutDeliveryCommand(deps))
	return cmd
}

func newCheckoutPickupCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var items []string
	var details checkout.PickupDetails

	cmd := &cobra.Command{
		Use:   "pickup",
		Short: "Place a pickup order.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if err := requireGateways(cmd, deps, format, flags.Output); err != nil {
				return err
			}

			profile, ok, err := loadProfile(cmd, deps, format, flags)
			if err != nil {
				return err
			}
			if ok {
				details = applyProfileToPickup(details, profile)
			}

			basket, err := buildFlagCart(cmd, deps, format, flags, items)
			if err != nil {
				return err
			}

			composer := checkout.NewComposer(deps.Docs)
			orderID, err := composer.SubmitPickup(cmd.Context(), details, basket)
			if err != nil {
				return emitOrderError(cmd, format, flags, err)
			}
			basket.Clear()
			return emitOrderPlaced(cmd, format, flags.Output, "pickup", orderID)
		},
	}

	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringArrayVar(&items, "item", nil, "Item to order as category/id or category/id:count (repeatable).")
	cmd.Flags().StringVar(&details.Name, "name", "", "Customer name.")
	cmd.Flags().StringVar(&details.Phone, "phone", "", "Customer phone number.")
	return cmd
}

func newCheckoutDeliveryCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var items []string
	var details checkout.DeliveryDetails
	var payment string

	cmd := &cobra.Command{
		Use:   "delivery",
		Short: "Place a delivery order.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if err := requireGateways(cmd, deps, format, flags.Output); err != nil {
				return err
			}

			if payment != "" {
				method, err := domain.ParsePaymentMethod(payment)
				if err != nil {
					return emitError(cmd, format, flags.Output, "STOREFRONT_VALIDATION_ERROR", err.Error())
				}
				details.Payment.Method = method
			}
			profile, ok, err := loadProfile(cmd, deps, format, flags)
			if err != nil {
				return err
			}
			if ok {
				details = applyProfileToDelivery(details, profile)
			}

			basket, err := buildFlagCart(cmd, deps, format, flags, items)
			if err != nil {
				return err
			}

			composer := checkout.NewComposer(deps.Docs)
			orderID, err := composer.SubmitDelivery(cmd.Context(), details, basket)
			if err != nil {
				return emitOrderError(cmd, format, flags, err)
			}
			basket.Clear()
			return emitOrderPlaced(cmd, format, flags.Output, "delivery", orderID)
		},
	}

	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringArrayVar(&items, "item", nil, "Item to order as category/id or category/id:count (repeatable).")
	cmd.Flags().StringVar(&details.Name, "name", "", "Customer name.")
	cmd.Flags().StringVar(&details.Email, "email", "", "Customer email address.")
	cmd.Flags().StringVar(&details.Address, "address", "", "Delivery address.")
	cmd.Flags().StringVar(&details.Phone, "phone", "", "Customer phone number.")
	cmd.Flags().StringVar(&payment, "payment", "", "Payment method: paypal, card, or cash.")
	cmd.Flags().StringVar(&details.Payment.PaypalEmail, "paypal-email", "", "PayPal account email (payment method paypal).")
	cmd.Flags().StringVar(&details.Payment.CardNumber, "card-number", "", "Card number (payment method card).")
	cmd.Flags().StringVar(&details.Payment.ExpirationDate, "expiration", "", "Card expiration date (payment method card).")
	cmd.Flags().StringVar(&details.Payment.CVV, "cvv", "", "Card CVV (payment method card).")
	return cmd
}

// buildFlagCart assembles the catalog and fills a fresh cart from --item
// specs. Every error is already emitted in the selected format.
func buildFlagCart(cmd *cobra.Command, deps Dependencies, format output.Format, flags globalFlags, items []string) (*cart.Store, error) {
	specs, err := parseItemSpecs(items)
	if err != nil {
		return nil, emitError(cmd, format, flags.Output, "STOREFRONT_INVALID_ARGUMENT", err.Error())
	}
	if len(specs) == 0 {
		return nil, emitError(cmd, format, flags.Output, "STOREFRONT_EMPTY_CART", "Provide at least one --item to order.")
	}

	assembled, err := catalog.NewAssembler(deps.Media).Assemble(cmd.Context())
	if err != nil {
		return nil, emitUpstreamError(cmd, format, flags.Output, flags.Verbose, err)
	}
	basket := cart.NewStore()
	if err := fillCart(basket, assembled, specs); err != nil {
		return nil, emitError(cmd, format, flags.Output, "STOREFRONT_UNKNOWN_ITEM", err.Error())
	}
	return basket, nil
}

// loadProfile resolves a saved customer profile. A missing default profile
// is not an error, but an explicitly named profile must exist.
func loadProfile(cmd *cobra.Command, deps Dependencies, format output.Format, flags globalFlags) (config.Profile, bool, error) {
	if deps.Profiles == nil {
		return config.Profile{}, false, nil
	}
	profiles, err := deps.Profiles.Load(cmd.Context())
	if err != nil {
		if flags.Profile == "" {
			return config.Profile{}, false, nil
		}
		return config.Profile{}, false, emitError(cmd, format, flags.Output, "STOREFRONT_PROFILE_ERROR", err.Error())
	}
	found, err := profiles.Find(flags.Profile)
	if err != nil {
		if flags.Profile == "" {
			return config.Profile{}, false, nil
		}
		return config.Profile{}, false, emitError(cmd, format, flags.Output, "STOREFRONT_PROFILE_ERROR", err.Error())
	}
	return found, true, nil
}

func emitOrderError(cmd *cobra.Command, format output.Format, flags globalFlags, err error) error {
	var validationErr *checkout.ValidationError
	if errors.As(err, &validationErr) {
		return emitError(cmd, format, flags.Output, "STOREFRONT_VALIDATION_ERROR", validationErr.Error())
	}
	if errors.Is(err, domain.ErrMalformedPrice) {
		return emitError(cmd, format, flags.Output, "STOREFRONT_CORRUPTED_CATALOG", err.Error())
	}
	// Submission failure: the cart stays intact so the order can be retried.
	return emitUpstreamError(cmd, format, flags.Output, flags.Verbose, err)
}

func emitOrderPlaced(cmd *cobra.Command, format output.Format, outputPath string, mode string, orderID string) error {
	if format == output.FormatTable {
		return writeTable(cmd, "Order placed successfully! ("+mode+" "+orderID+")", outputPath)
	}
	env := output.BuildEnvelope(cmd.Name(), map[string]any{"mode": mode, "order_id": orderID}, nil, nil)
	return writeMachinePayload(cmd, env, format, outputPath)
}
