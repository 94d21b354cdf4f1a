package initialize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/filestack/filestack/internal/config"
	"github.com/filestack/filestack/internal/content"
	"github.com/filestack/filestack/internal/dialect"
	"github.com/filestack/filestack/internal/registry"
)

const starterViewTitle = "Getting Started"

func NewCmdInit(cfg *config.Config) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init [directory]",
		Aliases: []string{"i", "initialize"},
		Short:   "Create a filestack.json manifest and a starter view.",
		Long: heredoc.Doc(`
			Scaffold a workspace: write a filestack.json manifest and a starter
			dialect file under views/. An existing manifest is only replaced
			after confirmation, or with --force.
		`),
		Example: "filestack init\nfilestack init ./my-project",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			root, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(root, 0o755); err != nil {
				return err
			}

			manifestPath := filepath.Join(root, registry.ManifestName)
			if _, err := os.Stat(manifestPath); err == nil && !force {
				prompt := confirmation.New(
					fmt.Sprintf("%s already exists. Overwrite it?", registry.ManifestName),
					confirmation.No,
				)
				ok, err := prompt.RunPrompt()
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Left the existing manifest alone.")
					return nil
				}
			}

			if err := scaffold(root, manifestPath); err != nil {
				return err
			}

			if cfg != nil {
				cfg.RememberWorkspace(root)
				_ = cfg.Save()
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized workspace in %s\n", root)
			fmt.Fprintln(cmd.OutOrStdout(), "Run `filestack edit \"Getting Started\"` to open the starter view.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing manifest without asking.")
	return cmd
}

func scaffold(root, manifestPath string) error {
	viewFile := "views/" + Slug(starterViewTitle) + ".md"
	manifest := map[string]any{
		"views": []map[string]any{
			{"title": starterViewTitle, "path": viewFile},
		},
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(root, "views"), 0o755); err != nil {
		return err
	}

	items := []content.Item{
		content.Heading{Level: 1, Text: starterViewTitle},
		content.Paragraph{Text: "This view stacks related files into one editable document. " +
			"Replace the code reference below with files from your project."},
		content.List{Items: []string{
			"`filestack views` lists the views of this workspace",
			"`filestack edit <view>` opens a view for editing",
			"`filestack show <view>` renders a view to the terminal",
		}},
		content.CodeRef{File: "./hello.ts", Language: "typescript", Title: "./hello.ts Editor"},
	}

	viewPath := filepath.Join(root, filepath.FromSlash(viewFile))
	if err := writeIfAbsent(viewPath, dialect.Serialize(starterViewTitle, items)); err != nil {
		return err
	}
	return writeIfAbsent(
		filepath.Join(root, "views", "hello.ts"),
		"export const hello = () => \"Hello from FileStack\";\n",
	)
}

func writeIfAbsent(path, body string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(body), 0o644)
}

// Slug derives a file name from a view title.
func Slug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	return strings.Trim(slug, "-")
}
