package show

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/filestack/filestack/internal/config"
	"github.com/filestack/filestack/internal/fzf"
	"github.com/filestack/filestack/internal/preview"
	"github.com/filestack/filestack/internal/registry"
	"github.com/filestack/filestack/internal/workspace"
	cmdutil "github.com/filestack/filestack/pkg/cmd"
)

func NewCmdShow(cfg *config.Config) *cobra.Command {
	var (
		raw     bool
		copyOut bool
		outline bool
	)

	cmd := &cobra.Command{
		Use:     "show [view]",
		Aliases: []string{"s", "render"},
		Short:   "Render a view to the terminal.",
		Long: heredoc.Doc(`
			Compose a view's prose and file contents into one markdown document
			and render it. With no argument, pick a view with the fuzzy finder.
		`),
		Example: "filestack show \"User Service\"\nfilestack show --outline user",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := cmdutil.OpenWorkspace(cfg)
			if err != nil {
				return err
			}

			view, err := pickView(ws, args)
			if err != nil {
				return err
			}

			sess := ws.OpenView(cmd.Context(), view)
			if sess.State() != workspace.StateLoaded {
				return fmt.Errorf("failed to load view %q: %w", view.Title, sess.Err())
			}

			doc := preview.Compose(sess.Title(), sess.Nodes(), sess.FileContent)

			if outline {
				return printOutline(cmd, doc)
			}
			if copyOut {
				if err := clipboard.WriteAll(doc); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Copied composed document to clipboard.")
				return nil
			}
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), doc)
				return nil
			}

			theme := ""
			if cfg != nil {
				theme = cfg.PreviewTheme
			}
			rendered, err := preview.Render(doc, theme)
			if err != nil {
				return fmt.Errorf("failed to render view: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "Print the composed markdown without styling.")
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "Copy the composed markdown to the clipboard.")
	cmd.Flags().BoolVarP(&outline, "outline", "o", false, "Print the heading outline instead of the document.")
	return cmd
}

func pickView(ws *workspace.Workspace, args []string) (registry.View, error) {
	if len(args) == 1 {
		return cmdutil.ResolveViewArg(ws, args[0])
	}

	finder := fzf.NewViewFinder(ws, "Select a view to show.")
	view, err := finder.Pick()
	if err != nil {
		if fzf.IsAbort(err) {
			return registry.View{}, fmt.Errorf("no view selected")
		}
		return registry.View{}, err
	}
	return view, nil
}

func printOutline(cmd *cobra.Command, doc string) error {
	for _, item := range preview.Outline(doc) {
		indent := ""
		for i := 1; i < item.Level; i++ {
			indent += "  "
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s%s\n", item.Line, indent, item.Text)
	}
	return nil
}
