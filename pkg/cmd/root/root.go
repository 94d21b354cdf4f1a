package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/filestack/filestack/internal/config"
	"github.com/filestack/filestack/pkg/cmd/edit"
	"github.com/filestack/filestack/pkg/cmd/format"
	"github.com/filestack/filestack/pkg/cmd/initialize"
	"github.com/filestack/filestack/pkg/cmd/show"
	"github.com/filestack/filestack/pkg/cmd/validate"
	"github.com/filestack/filestack/pkg/cmd/views"
)

var workspaceOverride string

func NewCmdRoot(cfg *config.Config) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "filestack",
		Short: "Edit stacked views of code files as one document.",
		Long: heredoc.Doc(`
			FileStack groups related source files into named views and lets you
			edit the prose and code of a view as a single document. Views are
			declared in a filestack.json manifest at the workspace root.

			  filestack views          list the views of the current workspace
			  filestack edit user      open a view in the editor
			  filestack show user      render a view to the terminal
		`),
		RunE: views.NewCmdViews(cfg).RunE,
	}

	cmd.PersistentFlags().StringVarP(
		&workspaceOverride,
		"workspace",
		"w",
		"",
		"Workspace root to operate on (defaults to the nearest filestack.json).",
	)
	viper.BindPFlag("workspace", cmd.PersistentFlags().Lookup("workspace"))

	cmd.AddCommand(
		initialize.NewCmdInit(cfg),
		views.NewCmdViews(cfg),
		show.NewCmdShow(cfg),
		edit.NewCmdEdit(cfg),
		format.NewCmdFmt(cfg),
		validate.NewCmdValidate(cfg),
	)

	return cmd, nil
}
