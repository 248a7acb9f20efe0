package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dwelter/storefront-cli/internal/config"
)

func newConfigureCommand(deps Dependencies) *cobra.Command {
	var mediaBaseURL string
	var docstoreBaseURL string
	var locale string
	var logLevel string

	var profile config.Profile
	var makeDefault bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Create and manage the local client configuration and customer profiles.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			appFlags := []string{"media-base-url", "docstore-base-url", "locale", "log-level"}
			profileFlags := []string{"name", "phone", "email", "address", "payment", "paypal-email", "card-number", "expiration", "default"}

			if !anyFlagChanged(cmd, appFlags) && !anyFlagChanged(cmd, profileFlags) {
				return fmt.Errorf("provide configuration flags (--media-base-url, ...) or profile flags (--name, ...)")
			}

			if anyFlagChanged(cmd, appFlags) {
				if err := writeAppConfig(cmd, mediaBaseURL, docstoreBaseURL, locale, logLevel, overwrite); err != nil {
					return err
				}
			}
			if anyFlagChanged(cmd, profileFlags) {
				profile.IsDefault = makeDefault
				if err := saveProfile(cmd, deps, profile, overwrite); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mediaBaseURL, "media-base-url", "", "Base URL of the media object store.")
	cmd.Flags().StringVar(&docstoreBaseURL, "docstore-base-url", "", "Base URL of the document store.")
	cmd.Flags().StringVar(&locale, "locale", "", "Locale used for display formatting.")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: DEBUG, INFO, WARNING, ERROR.")

	cmd.Flags().StringVar(&profile.Name, "profile-name", "Default", "Name of the customer profile to create or update.")
	cmd.Flags().StringVar(&profile.CustomerName, "name", "", "Customer name saved with the profile.")
	cmd.Flags().StringVar(&profile.Phone, "phone", "", "Phone number saved with the profile.")
	cmd.Flags().StringVar(&profile.Email, "email", "", "Email address saved with the profile.")
	cmd.Flags().StringVar(&profile.Address, "address", "", "Delivery address saved with the profile.")
	cmd.Flags().StringVar(&profile.Payment, "payment", "", "Preferred payment method: paypal, card, or cash.")
	cmd.Flags().StringVar(&profile.PaypalEmail, "paypal-email", "", "PayPal account email saved with the profile.")
	cmd.Flags().StringVar(&profile.CardNumber, "card-number", "", "Card number saved with the profile.")
	cmd.Flags().StringVar(&profile.ExpirationDate, "expiration", "", "Card expiration date saved with the profile.")
	cmd.Flags().BoolVar(&makeDefault, "default", false, "Mark this profile as the default profile.")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing configuration instead of merging.")
	return cmd
}

func anyFlagChanged(cmd *cobra.Command, names []string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// writeAppConfig merges changed flags into the existing configuration, or
// replaces it when --overwrite is set.
func writeAppConfig(cmd *cobra.Command, mediaBaseURL, docstoreBaseURL, locale, logLevel string, overwrite bool) error {
	var cfg config.App
	if !overwrite {
		if existing, err := config.InitApp(); err == nil {
			cfg = *existing
		}
	}

	if cmd.Flags().Changed("media-base-url") {
		cfg.MediaBaseURL = strings.TrimSpace(mediaBaseURL)
	}
	if cmd.Flags().Changed("docstore-base-url") {
		cfg.DocstoreBaseURL = strings.TrimSpace(docstoreBaseURL)
	}
	if cmd.Flags().Changed("locale") {
		cfg.Locale = strings.TrimSpace(locale)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = strings.ToUpper(strings.TrimSpace(logLevel))
	}

	if cfg.MediaBaseURL == "" || cfg.DocstoreBaseURL == "" {
		return fmt.Errorf("both --media-base-url and --docstore-base-url are required to create a configuration")
	}
	if err := config.WriteApp(cfg); err != nil {
		return err
	}

	path, err := config.AppPath()
	if err != nil {
		return err
	}
	return writeTable(cmd, "Configuration written to "+path, "")
}

// saveProfile creates or updates one customer profile. Only changed flags
// touch an existing profile unless --overwrite replaces it entirely.
func saveProfile(cmd *cobra.Command, deps Dependencies, updated config.Profile, overwrite bool) error {
	if deps.Profiles == nil {
		return fmt.Errorf("profile storage is not available")
	}

	profiles, err := deps.Profiles.Load(cmd.Context())
	if err != nil && !errors.Is(err, config.ErrProfilesNotFound) && !errors.Is(err, config.ErrInvalidProfiles) {
		return err
	}

	index := -1
	for i, existing := range profiles.Entries {
		if strings.EqualFold(existing.Name, updated.Name) {
			index = i
			break
		}
	}

	created := index < 0
	switch {
	case created:
		// The first profile becomes the default automatically.
		if len(profiles.Entries) == 0 {
			updated.IsDefault = true
		}
		profiles.Entries = append(profiles.Entries, updated)
		index = len(profiles.Entries) - 1
	case overwrite:
		profiles.Entries[index] = updated
	default:
		profiles.Entries[index] = mergeProfile(cmd, profiles.Entries[index], updated)
	}

	if profiles.Entries[index].IsDefault {
		for i := range profiles.Entries {
			profiles.Entries[i].IsDefault = i == index
		}
	}

	if err := deps.Profiles.Save(cmd.Context(), profiles); err != nil {
		return err
	}
	if created {
		return writeTable(cmd, "Profile '"+profiles.Entries[index].Name+"' created.", "")
	}
	return writeTable(cmd, "Profile '"+profiles.Entries[index].Name+"' updated.", "")
}

func mergeProfile(cmd *cobra.Command, existing config.Profile, updated config.Profile) config.Profile {
	if cmd.Flags().Changed("name") {
		existing.CustomerName = updated.CustomerName
	}
	if cmd.Flags().Changed("phone") {
		existing.Phone = updated.Phone
	}
	if cmd.Flags().Changed("email") {
		existing.Email = updated.Email
	}
	if cmd.Flags().Changed("address") {
		existing.Address = updated.Address
	}
	if cmd.Flags().Changed("payment") {
		existing.Payment = updated.Payment
	}
	if cmd.Flags().Changed("paypal-email") {
		existing.PaypalEmail = updated.PaypalEmail
	}
	if cmd.Flags().Changed("card-number") {
		existing.CardNumber = updated.CardNumber
	}
	if cmd.Flags().Changed("expiration") {
		existing.ExpirationDate = updated.ExpirationDate
	}
	if cmd.Flags().Changed("default") {
		existing.IsDefault = updated.IsDefault
	}
	return existing
}
