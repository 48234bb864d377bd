package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/animals-site/internal/app"
	"github.com/heartmarshall/animals-site/internal/config"
)

type generateOptions struct {
	name     string
	output   string
	template string
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the page for one animal",
		Long: `Fetch one animal species and write the generated page.

Without --name the command asks for a name on stdin; an empty answer
selects site.default_animal. A failed lookup still writes a page, with an
error card in place of the animal cards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "animal name (prompted for when omitted)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (overrides site.output_path)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template file (overrides site.template_path)")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	flags := cmd.Flags()
	a, err := loadApp(func(cfg *config.Config) {
		if flags.Changed("output") {
			cfg.Site.OutputPath = opts.output
		}
		if flags.Changed("template") {
			cfg.Site.TemplatePath = opts.template
		}
	})
	if err != nil {
		return err
	}

	name := opts.name
	if !flags.Changed("name") {
		name, err = app.PromptAnimalName(cmd.InOrStdin(), cmd.OutOrStdout(), a.Config.Site.DefaultAnimal)
		if err != nil {
			return err
		}
	}

	res, err := a.Generator.Generate(cmd.Context(), name)
	if err != nil {
		a.Logger.Error("generate page", slog.String("error", err.Error()))
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Website was successfully generated to the file %s.\n", res.OutputPath)
	return err
}
