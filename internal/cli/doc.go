package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/mithrel/foliate/internal/editor"
	"github.com/mithrel/foliate/internal/present"
	"github.com/mithrel/foliate/internal/render"
	"github.com/mithrel/foliate/internal/session"
	"github.com/mithrel/foliate/pkg/api"
)

func newDocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Inspect and manage documents without opening the session",
	}
	cmd.AddCommand(newDocListCmd())
	cmd.AddCommand(newDocNewCmd())
	cmd.AddCommand(newDocShowCmd())
	cmd.AddCommand(newDocRenameCmd())
	cmd.AddCommand(newDocDeleteCmd())
	cmd.AddCommand(newDocEditCmd())
	return cmd
}

func newDocListCmd() *cobra.Command {
	var output string
	var indent, noHeaders bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			entries, err := app.Docs.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			mode, ok := present.ParseMode(output)
			if !ok {
				return fmt.Errorf("unknown output format %q (plain|json|ndjson)", output)
			}
			return present.RenderCatalog(cmd.OutOrStdout(), entries, present.Options{
				Mode:       mode,
				JSONIndent: indent,
				Headers:    !noHeaders,
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "plain", "output format: plain|json|ndjson")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent JSON output")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit the header row in plain output")
	return cmd
}

func newDocNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a document and print its id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			entry, err := app.Docs.Create(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", entry.ID, entry.Name)
			return nil
		},
	}
	return cmd
}

func newDocShowCmd() *cobra.Command {
	var output string
	var raw, pretty bool

	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Print a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			doc, err := resolveDoc(cmd, args[0])
			if err != nil {
				return err
			}
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), doc.Content)
				return nil
			}
			if pretty {
				s, err := app.Settings.Load(cmd.Context(), doc.ID)
				if err != nil {
					return err
				}
				rend := render.New(app.Cfg.GetInt("render.width"))
				fmt.Fprint(cmd.OutOrStdout(), rend.Render(doc.Content, s))
				return nil
			}
			mode, ok := present.ParseMode(output)
			if !ok {
				return fmt.Errorf("unknown output format %q (plain|json)", output)
			}
			return present.RenderDocument(cmd.OutOrStdout(), *doc, present.Options{Mode: mode, JSONIndent: true})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "plain", "output format: plain|json")
	cmd.Flags().BoolVar(&raw, "raw", false, "print only the markdown content")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render the markdown for the terminal")
	return cmd
}

func newDocRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <id|name> <new-name>",
		Short: "Rename a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			doc, err := resolveDoc(cmd, args[0])
			if err != nil {
				return err
			}
			return app.Docs.Rename(cmd.Context(), doc.ID, args[1])
		},
	}
	return cmd
}

func newDocDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a document and its display settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			doc, err := resolveDoc(cmd, args[0])
			if err != nil {
				return err
			}
			if !yes {
				if !term.IsTerminal(os.Stdin.Fd()) {
					return errors.New("refusing to delete without --yes on a non-interactive stdin")
				}
				var confirmed bool
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete %q?", doc.Name)).
						Description("The document and its display settings are removed for good.").
						Value(&confirmed),
				))
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					return nil
				}
			}
			if err := app.Docs.Remove(cmd.Context(), doc.ID); err != nil {
				return err
			}
			return app.Settings.Remove(cmd.Context(), doc.ID)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// newDocEditCmd routes $EDITOR output through a session controller so
// the edit gets the same dirty-tracking and flush path as interactive use.
func newDocEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Edit a document in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			doc, err := resolveDoc(cmd, args[0])
			if err != nil {
				return err
			}
			ctrl := session.New(app.Docs, app.Settings, app.KV, session.Options{Logger: app.Log})
			if err := ctrl.Start(cmd.Context()); err != nil {
				return err
			}
			if err := ctrl.Apply(cmd.Context(), session.SwitchTo{ID: doc.ID}); err != nil {
				return err
			}
			edited, err := editor.EditText(doc.Name, ctrl.ActiveContent())
			if err != nil {
				return err
			}
			if err := ctrl.Apply(cmd.Context(), session.EditContent{Text: edited}); err != nil {
				return err
			}
			return ctrl.Close(cmd.Context())
		},
	}
	return cmd
}

// resolveDoc accepts a document id or a name. Name matching is exact
// first, then unique case-insensitive prefix.
func resolveDoc(cmd *cobra.Command, ref string) (*api.Document, error) {
	app := getApp(cmd)
	ctx := cmd.Context()

	if doc, err := app.Docs.Load(ctx, ref); err != nil {
		return nil, err
	} else if doc != nil {
		return doc, nil
	}

	entries, err := app.Docs.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	var hit string
	var prefixHits []string
	for _, e := range entries {
		if e.Name == ref {
			hit = e.ID
			break
		}
		if strings.HasPrefix(strings.ToLower(e.Name), strings.ToLower(ref)) {
			prefixHits = append(prefixHits, e.ID)
		}
	}
	if hit == "" && len(prefixHits) == 1 {
		hit = prefixHits[0]
	}
	if hit == "" {
		if len(prefixHits) > 1 {
			return nil, fmt.Errorf("%q matches several documents; use the id", ref)
		}
		return nil, fmt.Errorf("no document matching %q", ref)
	}
	doc, err := app.Docs.Load(ctx, hit)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("no document matching %q", ref)
	}
	return doc, nil
}
