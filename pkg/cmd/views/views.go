package views

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/filestack/filestack/internal/config"
	"github.com/filestack/filestack/internal/pathutil"
	cmdutil "github.com/filestack/filestack/pkg/cmd"
)

func NewCmdViews(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "views",
		Aliases: []string{"ls", "list"},
		Short:   "List the views of the current workspace.",
		Long: heredoc.Doc(`
			List every view declared in the workspace manifest, with the
			dialect file or the number of stacked files behind each one.
		`),
		Example: "filestack views",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := cmdutil.OpenWorkspace(cfg)
			if err != nil && ws == nil {
				return err
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: manifest has problems, no views loaded: %v\n", err)
			}

			all := ws.Views()
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No views defined. Add entries to", ws.Manifest.Path)
				return nil
			}

			for _, view := range all {
				if view.Path != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", view.Title, pathutil.WorkspaceRelative(ws.Root, view.Path))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d file(s)\n", view.Title, len(view.Files))
				}
			}
			return nil
		},
	}

	return cmd
}
