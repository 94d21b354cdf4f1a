package edit

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/filestack/filestack/internal/config"
	"github.com/filestack/filestack/internal/fzf"
	"github.com/filestack/filestack/internal/registry"
	"github.com/filestack/filestack/internal/tui/editor"
	"github.com/filestack/filestack/internal/workspace"
	cmdutil "github.com/filestack/filestack/pkg/cmd"
)

func NewCmdEdit(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit [view]",
		Aliases: []string{"e", "open"},
		Short:   "Open a view in the editor.",
		Long: heredoc.Doc(`
			Open a view's stacked document in the terminal editor. Prose blocks
			and code blocks are edited in place; ctrl+s writes every unsaved
			file back to disk. With no argument, pick a view with the fuzzy
			finder.
		`),
		Example: "filestack edit \"User Service\"\nfilestack edit",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := cmdutil.OpenWorkspace(cfg)
			if err != nil {
				return err
			}

			var view registry.View
			if len(args) == 1 {
				view, err = cmdutil.ResolveViewArg(ws, args[0])
			} else {
				view, err = fzf.NewViewFinder(ws, "Select a view to edit.").Pick()
				if fzf.IsAbort(err) {
					return nil
				}
			}
			if err != nil {
				return err
			}

			sess := ws.OpenView(cmd.Context(), view)
			if sess.State() != workspace.StateLoaded {
				return fmt.Errorf("failed to load view %q: %w", view.Title, sess.Err())
			}

			theme := ""
			if cfg != nil {
				theme = cfg.PreviewTheme
			}
			return editor.Run(ws, sess, theme)
		},
	}

	return cmd
}
