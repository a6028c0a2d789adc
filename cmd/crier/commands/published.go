package commands

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/crier/internal/app"
	"go.trai.ch/crier/internal/ui/output"
	"go.trai.ch/crier/internal/ui/style"
	"go.trai.ch/zerr"
)

// shortCommitLen is how many characters of an origin commit are printed.
const shortCommitLen = 12

func (c *CLI) newPublishedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "published",
		Short: "Show the last published state of every workspace package",
		Long: "Resolve every package of the workspace to the state it was last published in.\n" +
			"Publishable packages are looked up in their registry; git-only and unpublishable\n" +
			"packages are looked up at their latest release tag.",
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.bindFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			jsonOutput := c.settings.GetBool("json")
			if jsonOutput && c.logFormat != nil {
				c.logFormat.SetJSON(true)
			}

			opts := app.PublishedOptions{
				ConfigPath: c.settings.GetString("config"),
				Registry:   c.settings.GetString("registry"),
				TraceFile:  c.settings.GetString("trace-file"),
			}
			if manifest := c.settings.GetString("registry-manifest"); manifest != "" {
				abs, err := filepath.Abs(manifest)
				if err != nil {
					return zerr.With(zerr.Wrap(err, "failed to resolve registry manifest path"), "path", manifest)
				}
				opts.RegistryManifest = abs
			}

			statuses, err := c.app.Published(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), statuses)
			}
			return writeTable(cmd.OutOrStdout(), statuses)
		},
	}
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	cmd.Flags().String("registry", "", "Resolve every publishable package from this registry")
	cmd.Flags().String("registry-manifest", "", "Read published packages from this workspace manifest instead of downloading")
	return cmd
}

func writeJSON(w io.Writer, statuses []app.PackageStatus) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(statuses); err != nil {
		return zerr.Wrap(err, "failed to write JSON output")
	}
	return nil
}

// writeTable prints one aligned line per package.
func writeTable(w io.Writer, statuses []app.PackageStatus) error {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())
	name := style.Name.Renderer(r)
	muted := style.Muted.Renderer(r)
	published := style.Published.Renderer(r)
	unpublished := style.Unpublished.Renderer(r)
	source := style.Source.Renderer(r)

	rows := make([][]string, 0, len(statuses))
	for i := range statuses {
		s := &statuses[i]

		state := unpublished.Render(style.Circle + " unpublished")
		if s.Published {
			state = published.Render(style.Check + " " + s.PublishedVersion)
		}

		commit := ""
		if s.OriginCommit != "" {
			commit = muted.Render(shortCommit(s.OriginCommit))
		}

		rows = append(rows, []string{
			name.Render(s.Name),
			muted.Render(s.LocalVersion),
			state,
			source.Render(string(s.Source)),
			commit,
		})
	}

	var sb strings.Builder
	for _, line := range alignRows(rows) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return zerr.Wrap(err, "failed to write output")
	}
	return nil
}

// alignRows pads every cell to its column width. Trailing empty cells are dropped
// and the last cell of a line is not padded.
func alignRows(rows [][]string) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		last := len(row) - 1
		for last >= 0 && row[last] == "" {
			last--
		}

		var sb strings.Builder
		for i := 0; i <= last; i++ {
			sb.WriteString(row[i])
			if i < last {
				sb.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(row[i])+2))
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func shortCommit(commit string) string {
	if len(commit) > shortCommitLen {
		return commit[:shortCommitLen]
	}
	return commit
}
