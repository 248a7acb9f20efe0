package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the complete command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	version := resolvedVersion(deps.Version)

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the store catalog and news, build a cart, and place pickup or delivery orders.",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
				return errVersionShown
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if !showVersion {
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
			return errVersionShown
		},
	}
	root.Flags().BoolP("version", "v", false, "Show CLI version and exit.")
	root.SetHelpCommand(&cobra.Command{Hidden: true})

	root.AddCommand(newMenuCommand(deps))
	root.AddCommand(newNewsCommand(deps))
	root.AddCommand(newInfoCommand(deps))
	root.AddCommand(newOrderCommand(deps))
	root.AddCommand(newCheckoutCommand(deps))
	root.AddCommand(newConfigureCommand(deps))

	return root
}
