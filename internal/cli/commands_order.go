package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dwelter/storefront-cli/internal/config"
	"github.com/dwelter/storefront-cli/internal/domain"
	"github.com/dwelter/storefront-cli/internal/service/cart"
	"github.com/dwelter/storefront-cli/internal/service/catalog"
	"github.com/dwelter/storefront-cli/internal/service/checkout"
	"github.com/dwelter/storefront-cli/internal/service/output"
)

const orderSessionHelp = `Commands:
  menu                     list categories
  menu <category>          list the items of one category
  add <category> <id>      add an item to the cart
  remove <category> <id>   remove one unit of an item
  show                     show the cart
  total                    show the cart total
  clear                    empty the cart
  checkout pickup          place a pickup order
  checkout delivery        place a delivery order
  help                     show this help
  quit                     leave the session`

func newOrderCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Start an interactive ordering session.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if err := requireGateways(cmd, deps, format, flags.Output); err != nil {
				return err
			}

			assembled, err := catalog.NewAssembler(deps.Media).Assemble(cmd.Context())
			if err != nil {
				return emitUpstreamError(cmd, format, flags.Output, flags.Verbose, err)
			}

			profile, _, err := loadProfile(cmd, deps, format, flags)
			if err != nil {
				return err
			}

			session := &orderSession{
				cmd:      cmd,
				catalog:  assembled,
				basket:   cart.NewStore(),
				profile:  profile,
				reader:   bufio.NewScanner(cmd.InOrStdin()),
				out:      cmd.OutOrStdout(),
				composer: checkout.NewComposer(deps.Docs),
			}
			// The prompt badge tracks the cart through its subscription.
			session.basket.Subscribe(func() { session.itemCount = session.basket.Count() })
			return session.run()
		},
	}

	addGlobalFlags(cmd, &flags)
	return cmd
}

// orderSession holds the state of one interactive ordering session. The cart
// lives only for the lifetime of the session.
type orderSession struct {
	cmd       *cobra.Command
	catalog   domain.Catalog
	basket    *cart.Store
	profile   config.Profile
	reader    *bufio.Scanner
	out       io.Writer
	composer  *checkout.Composer
	itemCount int
}

func (s *orderSession) run() error {
	s.printf("Welcome! Type 'help' for the available commands.")
	for {
		s.prompt()
		if !s.reader.Scan() {
			if err := s.reader.Err(); err != nil {
				return err
			}
			s.printf("")
			return nil
		}
		fields := strings.Fields(s.reader.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			s.printf(orderSessionHelp)
		case "menu":
			s.showMenu(fields[1:])
		case "add":
			s.addItem(fields[1:])
		case "remove":
			s.removeItem(fields[1:])
		case "show", "cart":
			s.showCart()
		case "total":
			s.showTotal()
		case "clear":
			s.basket.Clear()
			s.printf("Cart cleared.")
		case "checkout":
			s.checkout(fields[1:])
		default:
			s.printf("Unknown command '%s'. Type 'help' for the available commands.", fields[0])
		}
	}
}

func (s *orderSession) prompt() {
	_, _ = fmt.Fprintf(s.out, "[%d item(s)] > ", s.itemCount)
}

func (s *orderSession) printf(text string, args ...any) {
	_, _ = fmt.Fprintf(s.out, text+"\n", args...)
}

func (s *orderSession) showMenu(args []string) {
	if len(args) == 0 {
		names := make([]string, 0, len(s.catalog))
		for name := range s.catalog {
			names = append(names, name)
		}
		sort.Strings(names)
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			rows = append(rows, []string{name, strconv.Itoa(len(s.catalog[name]))})
		}
		s.printf(output.RenderTable("Categories", []string{"CATEGORY", "ITEMS"}, rows))
		return
	}

	category := args[0]
	items, ok := s.catalog[category]
	if !ok {
		s.printf("Unknown category '%s'. Type 'menu' to list categories.", category)
		return
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.ID, item.Name, item.FormatIngredients(), item.Price})
	}
	s.printf(output.RenderTable(category, []string{"ID", "NAME", "INGREDIENTS", "PRICE"}, rows))
}

func (s *orderSession) addItem(args []string) {
	if len(args) != 2 {
		s.printf("Usage: add <category> <id>")
		return
	}
	item, err := findItem(s.catalog, args[0], args[1])
	if err != nil {
		s.printf("%s", err.Error())
		return
	}
	s.basket.Add(item)
	s.printf("Added %s (%s).", item.Name, item.Price)
}

func (s *orderSession) removeItem(args []string) {
	if len(args) != 2 {
		s.printf("Usage: remove <category> <id>")
		return
	}
	s.basket.Remove(domain.ItemKey{Category: args[0], ID: args[1]})
	s.printf("Removed %s/%s.", args[0], args[1])
}

func (s *orderSession) showCart() {
	if s.basket.Len() == 0 {
		s.printf("The cart is empty.")
		return
	}
	rows, err := renderCartRows(s.basket)
	if err != nil {
		s.printf("%s", err.Error())
		return
	}
	s.printf(output.RenderTable("Cart", []string{"KEY", "NAME", "QTY", "PRICE", "LINE"}, rows))
}

func (s *orderSession) showTotal() {
	total, err := s.basket.Total()
	if err != nil {
		s.printf("%s", err.Error())
		return
	}
	s.printf("Total: %s", total)
}

func (s *orderSession) checkout(args []string) {
	if s.basket.Len() == 0 {
		s.printf("The cart is empty, add items first.")
		return
	}
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	switch mode {
	case "pickup":
		s.checkoutPickup()
	case "delivery":
		s.checkoutDelivery()
	default:
		s.printf("Usage: checkout pickup|delivery")
	}
}

func (s *orderSession) checkoutPickup() {
	details := checkout.PickupDetails{
		Name:  s.ask("Name", s.profile.CustomerName),
		Phone: s.ask("Phone", s.profile.Phone),
	}
	orderID, err := s.composer.SubmitPickup(s.cmd.Context(), details, s.basket)
	if err != nil {
		s.reportOrderError(err)
		return
	}
	s.basket.Clear()
	s.printf("Order placed successfully! (pickup %s)", orderID)
}

func (s *orderSession) checkoutDelivery() {
	details := checkout.DeliveryDetails{
		Name:    s.ask("Name", s.profile.CustomerName),
		Email:   s.ask("Email", s.profile.Email),
		Address: s.ask("Address", s.profile.Address),
		Phone:   s.ask("Phone", s.profile.Phone),
	}

	method, err := domain.ParsePaymentMethod(s.ask("Payment (paypal/card/cash)", s.profile.Payment))
	if err != nil {
		s.printf("%s", err.Error())
		return
	}
	details.Payment.Method = method
	switch method {
	case domain.PaymentPaypal:
		details.Payment.PaypalEmail = s.ask("PayPal email", s.profile.PaypalEmail)
	case domain.PaymentCard:
		details.Payment.CardNumber = s.ask("Card number", s.profile.CardNumber)
		details.Payment.ExpirationDate = s.ask("Expiration date", s.profile.ExpirationDate)
		details.Payment.CVV = s.ask("CVV", "")
	}

	orderID, err := s.composer.SubmitDelivery(s.cmd.Context(), details, s.basket)
	if err != nil {
		s.reportOrderError(err)
		return
	}
	s.basket.Clear()
	s.printf("Order placed successfully! (delivery %s)", orderID)
}

// ask prompts for one field. An empty answer keeps the profile default.
func (s *orderSession) ask(label string, fallback string) string {
	if fallback != "" {
		_, _ = fmt.Fprintf(s.out, "%s [%s]: ", label, fallback)
	} else {
		_, _ = fmt.Fprintf(s.out, "%s: ", label)
	}
	if !s.reader.Scan() {
		return fallback
	}
	answer := strings.TrimSpace(s.reader.Text())
	if answer == "" {
		return fallback
	}
	return answer
}

func (s *orderSession) reportOrderError(err error) {
	var validationErr *checkout.ValidationError
	if errors.As(err, &validationErr) {
		s.printf("%s", validationErr.Error())
		return
	}
	s.printf("Order submission failed: %s. The cart is unchanged.", err.Error())
}
