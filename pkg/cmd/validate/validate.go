package validate

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/filestack/filestack/internal/config"
	"github.com/filestack/filestack/internal/pathutil"
	"github.com/filestack/filestack/internal/registry"
	"github.com/filestack/filestack/internal/scan"
	cmdutil "github.com/filestack/filestack/pkg/cmd"
)

func NewCmdValidate(cfg *config.Config) *cobra.Command {
	var unstacked bool

	cmd := &cobra.Command{
		Use:     "validate",
		Aliases: []string{"check"},
		Short:   "Check the workspace manifest for problems.",
		Long: heredoc.Doc(`
			Load the manifest and report every problem found: missing titles,
			entries with both a path and a file list, unsupported extensions,
			duplicate files, oversized views. All problems are reported in one
			pass. Referenced files missing from disk are reported as warnings.
		`),
		Example: "filestack validate\nfilestack validate --unstacked",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := cmdutil.OpenWorkspace(cfg)
			if err != nil && ws == nil {
				return err
			}

			if err != nil {
				var problems registry.ValidationErrors
				if errors.As(err, &problems) {
					for _, p := range problems {
						fmt.Fprintln(cmd.OutOrStdout(), p.Error())
					}
					return fmt.Errorf("%d problem(s) found", len(problems))
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d view(s)\n",
				registry.ManifestName, len(ws.Views()))

			for _, m := range scan.MissingFiles(ws.Root, ws.Views()) {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: view %q references missing file %s\n",
					m.View, pathutil.WorkspaceRelative(ws.Root, m.File))
			}

			if unstacked {
				return printUnstacked(cmd, ws.Root, cfg, ws.Views())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unstacked, "unstacked", false, "Also list stackable files no view references.")
	return cmd
}

// printUnstacked walks the workspace and lists files with a stackable
// extension that no view references.
func printUnstacked(cmd *cobra.Command, root string, cfg *config.Config, views []registry.View) error {
	allowed := registry.DefaultAllowedExtensions
	if cfg != nil && len(cfg.AllowedExtensions) > 0 {
		allowed = cfg.AllowedExtensions
	}

	files, err := scan.NewScanner(root, allowed).WalkFiles()
	if err != nil {
		return err
	}

	referenced := make(map[string]bool)
	for _, view := range views {
		for _, file := range scan.ReferencedFiles(root, view) {
			referenced[pathutil.WorkspaceRelative(root, file)] = true
		}
	}

	for _, file := range files {
		if !referenced[file] {
			fmt.Fprintln(cmd.OutOrStdout(), file)
		}
	}
	return nil
}
