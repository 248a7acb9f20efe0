package cli

import (
	"github.com/spf13/cobra"

	"github.com/dwelter/storefront-cli/internal/service/output"
	"github.com/dwelter/storefront-cli/internal/service/store"
)

func newInfoCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show store information, availability, service hours and location.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if err := requireGateways(cmd, deps, format, flags.Output); err != nil {
				return err
			}

			overview, warnings, err := store.NewService(deps.Docs, deps.Media).Fetch(cmd.Context())
			if err != nil {
				return emitUpstreamError(cmd, format, flags.Output, flags.Verbose, err)
			}

			if format == output.FormatTable {
				rows := [][]string{
					{"Name", overview.Info.Name},
					{"Address", overview.Info.Address},
					{"Phone", overview.Info.Phone},
					{"Email", overview.Info.Email},
					{"Status", overview.Status},
					{"Location", overview.Location.Format()},
				}
				if overview.LogoURL != "" {
					rows = append(rows, []string{"Logo", overview.LogoURL})
				}
				for _, day := range overview.Schedule.Days() {
					rows = append(rows, []string{day, overview.Schedule[day]})
				}
				return writeTable(cmd, output.RenderTable("Store", nil, rows), flags.Output)
			}
			env := output.BuildEnvelope(cmd.Name(), overview, warnings, nil)
			return writeMachinePayload(cmd, env, format, flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	return cmd
}
