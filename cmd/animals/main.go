// Command animals looks up an animal species in the API Ninjas animals API
// and renders the result into a static HTML page.
//
// Subcommands:
//
//	generate  write the page for one animal to a file (prompts for the name)
//	serve     render pages on demand over HTTP at /animals?name=NAME
//	version   print build information
//
// The API key is read from the environment variable named by api.key_env
// (API_NINJAS_KEY by default). A ./.env file is honored.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/animals-site/internal/app"
	"github.com/heartmarshall/animals-site/internal/config"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(context.Background()); err != nil {
		slog.Error("animals failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "animals",
		Short: "Generate an HTML page about an animal species",
		Long: `animals fetches species data from the API Ninjas animals endpoint and
substitutes rendered cards for the __REPLACE_ANIMALS_INFO__ placeholder
of an HTML template.

Configuration comes from ./config.yaml (or CONFIG_PATH), the environment
and a ./.env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)

	root.AddCommand(newGenerateCmd(), newServeCmd(), newVersionCmd())
	return root
}

// loadApp loads configuration, lets override adjust it, re-validates and
// wires the application.
func loadApp(override func(*config.Config)) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger := app.NewLogger(cfg.Log)
	return app.New(*cfg, logger), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), app.BuildVersion()+"\n")
			return err
		},
	}
}
