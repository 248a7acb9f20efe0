package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dwelter/storefront-cli/internal/domain"
	"github.com/dwelter/storefront-cli/internal/service/catalog"
	"github.com/dwelter/storefront-cli/internal/service/output"
)

func newMenuCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var category string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Assemble the catalog and list categories or the items of one category.",
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

			selected := strings.TrimSpace(category)
			if selected != "" {
				items, ok := assembled[selected]
				if !ok {
					return emitError(cmd, format, flags.Output, "STOREFRONT_UNKNOWN_CATEGORY",
						"Unknown category '"+selected+"'. Run 'storefront menu' to list categories.")
				}
				return renderItems(cmd, format, flags.Output, selected, items)
			}
			return renderCategories(cmd, format, flags.Output, assembled)
		},
	}

	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringVar(&category, "category", "", "Category to list. Empty lists all categories.")
	return cmd
}

func renderCategories(cmd *cobra.Command, format output.Format, outputPath string, assembled domain.Catalog) error {
	names := make([]string, 0, len(assembled))
	for name := range assembled {
		names = append(names, name)
	}
	sort.Strings(names)

	if format == output.FormatTable {
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			rows = append(rows, []string{name, strconv.Itoa(len(assembled[name]))})
		}
		return writeTable(cmd, output.RenderTable("Categories", []string{"CATEGORY", "ITEMS"}, rows), outputPath)
	}
	env := output.BuildEnvelope(cmd.Name(), assembled, nil, nil)
	return writeMachinePayload(cmd, env, format, outputPath)
}

func renderItems(cmd *cobra.Command, format output.Format, outputPath string, category string, items []domain.MenuItem) error {
	if format == output.FormatTable {
		rows := make([][]string, 0, len(items))
		for _, item := range items {
			image := item.ImageURL
			if image == "" {
				image = "-"
			}
			rows = append(rows, []string{item.ID, item.Name, item.FormatIngredients(), item.Price, image})
		}
		return writeTable(cmd, output.RenderTable(category, []string{"ID", "NAME", "INGREDIENTS", "PRICE", "IMAGE"}, rows), outputPath)
	}
	env := output.BuildEnvelope(cmd.Name(), map[string]any{"category": category, "items": items}, nil, nil)
	return writeMachinePayload(cmd, env, format, outputPath)
}
