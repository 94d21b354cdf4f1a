package format

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/filestack/filestack/internal/config"
	"github.com/filestack/filestack/internal/dialect"
	"github.com/filestack/filestack/internal/pathutil"
	"github.com/filestack/filestack/internal/registry"
	"github.com/filestack/filestack/internal/workspace"
	cmdutil "github.com/filestack/filestack/pkg/cmd"
)

func NewCmdFmt(cfg *config.Config) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt [view...]",
		Short: "Rewrite dialect files in canonical form.",
		Long: heredoc.Doc(`
			Parse each view's dialect file and write it back in canonical form:
			normalized front matter, recomputed file list, one blank line
			between blocks. Unrecognized constructs the parser folds into prose
			stay folded. With no arguments every dialect-backed view is
			formatted.
		`),
		Example: "filestack fmt\nfilestack fmt --check \"User Service\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := cmdutil.OpenWorkspace(cfg)
			if err != nil {
				return err
			}

			targets, err := selectTargets(ws, args)
			if err != nil {
				return err
			}

			var unformatted int
			for _, view := range targets {
				changed, err := formatOne(view.Path, check)
				if err != nil {
					return fmt.Errorf("fmt %s: %w", view.Title, err)
				}
				if changed {
					unformatted++
					rel := pathutil.WorkspaceRelative(ws.Root, view.Path)
					if check {
						fmt.Fprintln(cmd.OutOrStdout(), rel)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "formatted %s\n", rel)
					}
				}
			}

			if check && unformatted > 0 {
				return fmt.Errorf("%d file(s) not in canonical form", unformatted)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "List files that would change, exit nonzero if any.")
	return cmd
}

func selectTargets(ws *workspace.Workspace, args []string) ([]registry.View, error) {
	if len(args) == 0 {
		var targets []registry.View
		for _, view := range ws.Views() {
			if view.Path != "" {
				targets = append(targets, view)
			}
		}
		return targets, nil
	}

	var targets []registry.View
	for _, arg := range args {
		view, err := cmdutil.ResolveViewArg(ws, arg)
		if err != nil {
			return nil, err
		}
		if view.Path == "" {
			return nil, fmt.Errorf("view %q has no dialect file to format", view.Title)
		}
		targets = append(targets, view)
	}
	return targets, nil
}

// formatOne reports whether the file differs from its canonical form, and
// rewrites it unless checkOnly is set.
func formatOne(path string, checkOnly bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	doc, err := dialect.Parse(string(data))
	if err != nil {
		return false, err
	}

	canonical := dialect.Serialize(doc.Title, doc.Content)
	if canonical == string(data) {
		return false, nil
	}
	if checkOnly {
		return true, nil
	}
	return true, os.WriteFile(path, []byte(canonical), 0o644)
}
