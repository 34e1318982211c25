package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/flowstate/internal/ai"
	"github.com/nhle/flowstate/internal/credential"
	"github.com/nhle/flowstate/internal/markdown"
	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/prefs"
	"github.com/nhle/flowstate/internal/theme"
	"github.com/nhle/flowstate/internal/triage"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newSummarizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize FILE",
		Short: "Summarize a markdown file into key bullet points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer rt.Close()

			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			content, err := markdown.ToHTML(src)
			if err != nil {
				return err
			}

			ctx := rt.log.Logger.WithContext(commandContext(cmd))
			summary := ai.Summarize(ctx, rt.summarizer(), markdown.PlainText(content))
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Convert a markdown file into a workspace page and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer rt.Close()

			sess, err := rt.session(nil, nil)
			if err != nil {
				return err
			}
			page, err := sess.ImportFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %q as %s in %s\n\n", page.Title, page.ID, sess.Workspace.ActiveProject().Name)
			fmt.Fprintln(out, page.Content)
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export PAGE_ID",
		Short: "Export a page of the demo workspace as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer rt.Close()

			sess, err := rt.session(nil, nil)
			if err != nil {
				return err
			}
			path, err := sess.ExportPage(args[0], dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Exported", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to write the markdown file to")
	return cmd
}

// withPrefs opens the preference store for a command and closes it after fn.
func withPrefs(opts *options, cmd *cobra.Command, fn func(context.Context, *runtime, *prefs.Store) error) error {
	rt, err := setup(opts, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer rt.Close()

	store, err := rt.openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(commandContext(cmd), rt, store)
}

func newPrefsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change saved preferences",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the active theme and sound setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPrefs(opts, cmd, func(ctx context.Context, rt *runtime, store *prefs.Store) error {
				p, err := rt.loadPrefs(ctx, store)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "theme: %s (%s)\n", p.Theme.ID, p.Theme.Name)
				fmt.Fprintf(out, "sound: %s\n", onOff(p.SoundEnabled))
				fmt.Fprintf(out, "custom themes: %d\n", len(p.CustomThemes))
				return nil
			})
		},
	}

	setTheme := &cobra.Command{
		Use:   "theme ID",
		Short: "Select the active theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPrefs(opts, cmd, func(ctx context.Context, rt *runtime, store *prefs.Store) error {
				p, err := store.Load(ctx)
				if err != nil {
					return err
				}
				t, ok := theme.Find(args[0], p.CustomThemes)
				if !ok {
					return fmt.Errorf("unknown theme %q", args[0])
				}
				if err := store.SetActiveTheme(ctx, t.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", t.Name)
				return nil
			})
		},
	}

	addTheme := &cobra.Command{
		Use:   "add-theme FILE",
		Short: "Save a custom theme from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			var t model.Theme
			if err := json.Unmarshal(data, &t); err != nil {
				return fmt.Errorf("parsing %s: %w", filepath.Base(args[0]), err)
			}
			return withPrefs(opts, cmd, func(ctx context.Context, rt *runtime, store *prefs.Store) error {
				themes, err := store.SaveCustomTheme(ctx, t)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d custom themes)\n", t.Name, len(themes))
				return nil
			})
		},
	}

	sound := &cobra.Command{
		Use:       "sound on|off",
		Short:     "Turn the ambient sound on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			return withPrefs(opts, cmd, func(ctx context.Context, rt *runtime, store *prefs.Store) error {
				if err := store.SetSoundEnabled(ctx, on); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Ambient sound %s\n", onOff(on))
				return nil
			})
		},
	}

	cmd.AddCommand(show, setTheme, addTheme, sound)
	return cmd
}

func newThemesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List built-in and custom themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPrefs(opts, cmd, func(ctx context.Context, rt *runtime, store *prefs.Store) error {
				p, err := rt.loadPrefs(ctx, store)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, t := range p.Themes() {
					marker := " "
					if t.ID == p.Theme.ID {
						marker = "*"
					}
					fmt.Fprintf(out, "%s %-10s %s\n", marker, t.ID, t.Name)
				}
				return nil
			})
		},
	}
}

func newTriageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "triage TEXT...",
		Short: "Predict a card's priority from its text and suggest a follow-up task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "priority: %s\n", triage.PredictPriority(text))
			fmt.Fprintf(out, "suggestion: %s\n", triage.NewSuggester(nil).Suggest(text))
			return nil
		},
	}
}

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the summarizer API key in the system keyring",
		Long: `The summarizer reads its API key from $` + credential.SummarizerEnv + ` first,
then from the system keyring. Without a key, summaries are mocked.`,
	}

	set := &cobra.Command{
		Use:   "set VALUE",
		Short: "Store the API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credential.Set(credential.SummarizerKey, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key saved")
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credential.Delete(credential.SummarizerKey); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key removed")
			return nil
		},
	}

	cmd.AddCommand(set, del)
	return cmd
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	return false, errors.New(`expected "on" or "off"`)
}
