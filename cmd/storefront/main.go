package main

import (
	"context"
	"os"

	"github.com/dwelter/storefront-cli/internal/cli"
	"github.com/dwelter/storefront-cli/internal/config"
	"github.com/dwelter/storefront-cli/internal/gateway/docstore"
	"github.com/dwelter/storefront-cli/internal/gateway/mediastore"
	"github.com/dwelter/storefront-cli/internal/logging"
)

var version = "dev"

func main() {
	profiles, err := config.NewStore()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	deps := cli.Dependencies{
		Profiles: profiles,
		Version:  version,
	}

	// An unconfigured client can still run 'configure' and '--version'; the
	// remaining commands report the missing configuration themselves.
	if cfg, err := config.InitApp(); err == nil {
		if err := logging.Init(cfg.LogLevel); err != nil {
			_, _ = os.Stderr.WriteString(err.Error() + "\n")
			os.Exit(1)
		}
		deps.Media = mediastore.NewClient(cfg.MediaBaseURL)
		deps.Docs = docstore.NewClient(cfg.DocstoreBaseURL)
	} else {
		_ = logging.Init("WARNING")
	}

	exitCode := cli.Execute(context.Background(), os.Args[1:], deps, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}
