package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwelter/storefront-cli/internal/gateway/mediastore"
	"github.com/dwelter/storefront-cli/internal/service/output"
)

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}

type globalFlags struct {
	Format  string
	Output  string
	Profile string
	Verbose bool
}

func addGlobalFlags(cmd *cobra.Command, flags *globalFlags) {
	cmd.Flags().StringVar(&flags.Format, "format", "table", "Output format: table, json, or yaml.")
	cmd.Flags().StringVar(&flags.Output, "output", "", "Also write the rendered output to this file.")
	cmd.Flags().StringVar(&flags.Profile, "profile", "", "Saved customer profile used to pre-fill order details.")
	cmd.Flags().BoolVar(&flags.Verbose, "verbose", false, "Include full upstream error details.")
}

func parseOutputFormat(format string) (output.Format, error) {
	return output.ParseFormat(format)
}

func writeTable(cmd *cobra.Command, text string, outputPath string) error {
	return output.WriteOutput(cmd.OutOrStdout(), text, outputPath)
}

func writeMachinePayload(cmd *cobra.Command, env output.Envelope, format output.Format, outputPath string) error {
	rendered, err := output.RenderPayload(env, format)
	if err != nil {
		return err
	}
	return output.WriteOutput(cmd.OutOrStdout(), rendered, outputPath)
}

func emitError(
	cmd *cobra.Command,
	format output.Format,
	outputPath string,
	code string,
	message string,
) error {
	if format == output.FormatTable {
		if err := output.WriteOutput(cmd.OutOrStdout(), message, outputPath); err != nil {
			return err
		}
		return &exitError{code: 1}
	}
	env := output.BuildEnvelope(cmd.Name(), nil, []string{}, map[string]any{
		"code":    code,
		"message": message,
	})
	if err := writeMachinePayload(cmd, env, format, outputPath); err != nil {
		return err
	}
	return &exitError{code: 1}
}

func emitUpstreamError(
	cmd *cobra.Command,
	format output.Format,
	outputPath string,
	verbose bool,
	err error,
) error {
	if verbose {
		return emitError(cmd, format, outputPath, "STOREFRONT_UPSTREAM_ERROR", err.Error())
	}

	message := err.Error()
	var upstreamErr *mediastore.UpstreamRequestError
	if errors.As(err, &upstreamErr) {
		message = fmt.Sprintf("%s (status %d, use --verbose for details)", mediastore.ErrUpstream.Error(), upstreamErr.StatusCode)
	}
	return emitError(cmd, format, outputPath, "STOREFRONT_UPSTREAM_ERROR", message)
}

func requireGateways(cmd *cobra.Command, deps Dependencies, format output.Format, outputPath string) error {
	if deps.Media != nil && deps.Docs != nil {
		return nil
	}
	return emitError(
		cmd,
		format,
		outputPath,
		"STOREFRONT_NOT_CONFIGURED",
		"The client is not configured. Run 'storefront configure' or set STOREFRONT_MEDIA_BASE_URL and STOREFRONT_DOCSTORE_BASE_URL.",
	)
}
