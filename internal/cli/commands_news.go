package cli

import (
	"github.com/spf13/cobra"

	"github.com/dwelter/storefront-cli/internal/service/news"
	"github.com/dwelter/storefront-cli/internal/service/output"
)

func newNewsCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Fetch the store news feed with attached images.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if err := requireGateways(cmd, deps, format, flags.Output); err != nil {
				return err
			}

			entries, err := news.NewAssembler(deps.Media).Assemble(cmd.Context())
			if err != nil {
				return emitUpstreamError(cmd, format, flags.Output, flags.Verbose, err)
			}

			if format == output.FormatTable {
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					image := entry.ImageURL
					if image == "" {
						image = "-"
					}
					rows = append(rows, []string{entry.Title, entry.Description, image})
				}
				return writeTable(cmd, output.RenderTable("Latest News", []string{"TITLE", "DESCRIPTION", "IMAGE"}, rows), flags.Output)
			}
			env := output.BuildEnvelope(cmd.Name(), entries, nil, nil)
			return writeMachinePayload(cmd, env, format, flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	return cmd
}
