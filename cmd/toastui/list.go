package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/layout"
	"github.com/jmylchreest/toastui/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List the bundled themes and the CSS files in the themes directory.

The theme in use is marked with "*". A user file named like a bundled theme
replaces it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := theme.ListAvailableThemes(config.ThemesDir())
		if err != nil {
			return fmt.Errorf("failed to list themes: %w", err)
		}
		return writeThemes(cmd.OutOrStdout(), infos, getConfig().Theme.Name)
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available layout templates",
	Long: `List the bundled layout templates and the XML files in the templates
directory.

The template in use is marked with "*".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := layout.NewLoader(config.TemplatesDir()).List()
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}
		return writeTemplates(cmd.OutOrStdout(), infos, getConfig().Layout.Template)
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(templatesCmd)
}

func writeThemes(w io.Writer, infos []theme.ThemeInfo, current string) error {
	if current == "" {
		current = theme.DefaultThemeName
	}
	rows := make([]listRow, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, listRow{
			name:       info.Name,
			path:       info.Path,
			bundled:    info.IsBundled,
			overridden: info.Overridden,
			current:    info.Name == current,
		})
	}
	return writeRows(w, rows)
}

func writeTemplates(w io.Writer, infos []layout.TemplateInfo, current string) error {
	if current == "" {
		current = layout.DefaultTemplateName
	}
	rows := make([]listRow, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, listRow{
			name:       info.Name,
			path:       info.Path,
			bundled:    info.Embedded,
			overridden: info.Overridden,
			current:    info.Name == current,
		})
	}
	return writeRows(w, rows)
}

type listRow struct {
	name       string
	path       string
	bundled    bool
	overridden bool
	current    bool
}

func (r listRow) source() string {
	switch {
	case r.overridden:
		return "user (overrides bundled)"
	case r.bundled:
		return "bundled"
	default:
		return "user"
	}
}

func writeRows(w io.Writer, rows []listRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tSOURCE\tPATH")
	for _, r := range rows {
		mark := "  "
		if r.current {
			mark = "* "
		}
		path := r.path
		if path == "" {
			path = "-"
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s\n", mark, r.name, r.source(), path)
	}
	return tw.Flush()
}
