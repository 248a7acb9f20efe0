package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/dwelter/storefront-cli/internal/config"
	"github.com/dwelter/storefront-cli/internal/gateway/docstore"
	"github.com/dwelter/storefront-cli/internal/gateway/mediastore"
)

var unknownCommandPattern = regexp.MustCompile(`unknown command "([^"]+)"`)

// ProfileStore persists saved customer profiles.
type ProfileStore interface {
	Path() string
	Load(ctx context.Context) (config.Profiles, error)
	Save(ctx context.Context, profiles config.Profiles) error
}

// Dependencies wires runtime services. Media and Docs stay nil until the
// client is configured; commands needing them report that instead of dialing
// an empty base URL.
type Dependencies struct {
	Media    mediastore.API
	Docs     docstore.API
	Profiles ProfileStore
	Version  string
}

var errVersionShown = fmt.Errorf("version shown")

// Execute runs the CLI with injected dependencies.
func Execute(ctx context.Context, args []string, deps Dependencies, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil || err == errVersionShown {
		return 0
	}
	var controlled *exitError
	if errors.As(err, &controlled) {
		return controlled.code
	}

	if matches := unknownCommandPattern.FindStringSubmatch(err.Error()); len(matches) > 1 {
		_, _ = fmt.Fprintf(stderr, "No such command '%s'\n", matches[1])
		return 2
	}

	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(stderr, msg)
	}
	return 1
}
