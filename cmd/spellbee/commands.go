package main

import (
	"github.com/spf13/cobra"

	"codeberg.org/snonux/spellbee/internal/processor"
)

func (a *application) commands() []*cobra.Command {
	return []*cobra.Command{
		a.listCommand(),
		a.sanitizeCommand(),
		a.importCommand(),
		a.generateCommand(),
		a.verifyCommand(),
		a.exportCommand(),
		a.modelsCommand(),
	}
}

func (a *application) listCommand() *cobra.Command {
	var tier string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the words of one or all tiers with their audio status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.proc.ListWords(cmd.Context(), tier)
		},
	}
	cmd.Flags().StringVar(&tier, "tier", "", "Only list this tier")
	return cmd
}

func (a *application) sanitizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize <word>...",
		Short: "Print the audio file name a word maps to",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a.proc.SanitizeWords(args)
		},
	}
}

func (a *application) importCommand() *cobra.Command {
	var tier string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Convert a plain text word list (one word per line) into a tier document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := a.proc.ImportWords(args[0], tier)
			return err
		},
	}
	cmd.Flags().StringVar(&tier, "tier", "", "Target tier (empty writes words.json)")
	return cmd
}

func (a *application) generateCommand() *cobra.Command {
	var (
		tier  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "generate-audio",
		Short: "Generate missing pronunciation audio files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.proc.GenerateAudio(cmd.Context(), tier, force)
			return err
		},
	}
	cmd.Flags().StringVar(&tier, "tier", "", "Only generate this tier")
	cmd.Flags().BoolVar(&force, "force", false, "Archive and regenerate existing audio")
	return cmd
}

func (a *application) verifyCommand() *cobra.Command {
	var (
		tier    string
		missing bool
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Report audio coverage per tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.proc.Verify(cmd.Context(), tier, missing)
			return err
		},
	}
	cmd.Flags().StringVar(&tier, "tier", "", "Only verify this tier")
	cmd.Flags().BoolVar(&missing, "missing", false, "List the words without audio and stray audio files")
	return cmd
}

func (a *application) exportCommand() *cobra.Command {
	var opts processor.ExportOptions
	cmd := &cobra.Command{
		Use:   "export-anki",
		Short: "Export words and pronunciations as an Anki deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.proc.ExportAnki(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().StringVar(&opts.Tier, "tier", "", "Only export this tier")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file")
	cmd.Flags().StringVar(&opts.DeckName, "deck-name", "", "Anki deck name")
	cmd.Flags().BoolVar(&opts.CSV, "csv", false, "Write a CSV import file instead of an .apkg package")
	return cmd
}

func (a *application) modelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the OpenAI text-to-speech models available to the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.proc.ListModels(cmd.Context())
		},
	}
}
