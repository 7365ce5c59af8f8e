package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"flipdeck/internal/bootstrap"
	"flipdeck/internal/platform/config"
	apperrors "flipdeck/internal/platform/errors"
	"flipdeck/internal/platform/logging"
	uiapp "flipdeck/internal/ui/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string

	root := &cobra.Command{
		Use:           "flipdeck",
		Short:         "Flashcard study sessions in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(dataPath, uiapp.LaunchSetup)
		},
	}
	root.PersistentFlags().StringVar(&dataPath, "data", ".", "data directory for decks, history and plugins")

	root.AddCommand(newStudyCmd(&dataPath))
	root.AddCommand(newResumeCmd(&dataPath))
	root.AddCommand(newImportCmd(&dataPath))
	root.AddCommand(newDeckCmd(&dataPath))
	root.AddCommand(newHistoryCmd(&dataPath))
	root.AddCommand(newPluginCmd(&dataPath))
	return root
}

// withApp loads config, opens the log sink and wires the app for one
// command.
func withApp(dataPath string, fn func(app *bootstrap.App) error) error {
	cfg, err := config.New(dataPath)
	if err != nil {
		return err
	}
	sink, err := logging.Open(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer sink.Close()

	app, err := bootstrap.New(cfg, sink)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func runTUI(dataPath string, launch uiapp.Launch) error {
	return withApp(dataPath, func(app *bootstrap.App) error {
		return bootstrap.RunTUI(app, launch)
	})
}

func newStudyCmd(dataPath *string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "study [file]",
		Short: "Study a deck file, or the saved deck when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runTUI(*dataPath, uiapp.LaunchSaved)
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read deck file: %w", err)
			}
			return withApp(*dataPath, func(app *bootstrap.App) error {
				if _, err := app.DeckCLI.Import(context.Background(), string(raw), format, true); err != nil {
					return err
				}
				return bootstrap.RunTUI(app, uiapp.LaunchSaved)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "deck format: text or one declared by an importer plugin")
	return cmd
}

func newResumeCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume the saved deck in its saved order",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(*dataPath, uiapp.LaunchResume)
		},
	}
}

func newImportCmd(dataPath *string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Parse a deck file and save it as the current deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read deck file: %w", err)
			}
			return withApp(*dataPath, func(app *bootstrap.App) error {
				out, err := app.DeckCLI.Import(context.Background(), string(raw), format, true)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d cards format=%s dropped=%d\n", len(out.Cards), out.Format, out.Dropped)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "deck format: text or one declared by an importer plugin")
	return cmd
}

func newDeckCmd(dataPath *string) *cobra.Command {
	deck := &cobra.Command{Use: "deck", Short: "Deck operations"}
	deck.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved deck in its saved order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(app *bootstrap.App) error {
				out, err := app.DeckCLI.Saved(context.Background())
				if errors.Is(err, apperrors.ErrNoSavedDeck) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no saved deck")
					return nil
				}
				if err != nil {
					return err
				}
				for i, c := range out.Cards {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\t%s\n", i+1, c.Front, c.Back)
				}
				return nil
			})
		},
	})
	return deck
}

func newHistoryCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the most recent scores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(app *bootstrap.App) error {
				entries, err := app.HistoryCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions yet")
					return nil
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %3d%%  %d cards\n", e.Date, e.Score, e.Count)
				}
				return nil
			})
		},
	}
}

func newPluginCmd(dataPath *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Importer plugin operations"}
	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List importer plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(app *bootstrap.App) error {
				plugins, err := app.ImporterCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(plugins) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, p := range plugins {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t formats=%s binary=%s\n",
						p.Name, p.Version, p.Enabled, strings.Join(p.Formats, ","), p.Binary)
				}
				return nil
			})
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(app *bootstrap.App) error {
				results, err := app.ImporterCLI.Doctor(context.Background())
				if err != nil {
					return err
				}
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})
	return plugin
}
