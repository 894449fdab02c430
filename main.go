package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"portfolio/internal/config"
	"portfolio/internal/projects"
	"portfolio/internal/schedule"
)

var (
	configPath string
	dataPath   string
	verbose    bool
	seed       uint64

	snapshotOut    string
	snapshotFormat string
	snapshotFrames int
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "An interactive terminal portfolio",
	Long: `portfolio is a personal portfolio page for the terminal.

Move the mouse over the top of the page to draw glowing trails, drag the
floating project cards around, and click one to read about it.`,
	SilenceUsage: true,
	RunE:         runPage,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive page (default)",
	RunE:  runPage,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the page headlessly and write a PNG or text snapshot",
	Long: `Simulates the page at the export size with the pointer tracing a
Lissajous path over the top section, then writes the last frame.`,
	RunE: runSnapshotCmd,
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the portfolio projects",
	RunE:  listProjects,
}

var projectsShowCmd = &cobra.Command{
	Use:   "show [slug]",
	Short: "Show one project's detail page",
	Args:  cobra.ExactArgs(1),
	RunE:  showProject,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE:  initConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Project data file (default: built-in projects)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Trail jitter seed (0 picks one)")

	snapshotCmd.Flags().StringVarP(&snapshotOut, "output", "o", "", "Output file (default: timestamped name in the export directory)")
	snapshotCmd.Flags().StringVarP(&snapshotFormat, "format", "f", "png", "Snapshot format: png or txt")
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 0, "Frames to simulate (default: export.frames)")

	projectsCmd.AddCommand(projectsShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(runCmd, snapshotCmd, projectsCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPage(cmd *cobra.Command, args []string) error {
	cfg, log, catalog, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var updates <-chan *projects.Catalog
	if cfg.Data.Watch && cfg.Data.Projects != "" {
		watcher, err := projects.NewWatcher(cfg.Data.Projects, cfg.Data.Debounce, log)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()
		updates = watcher.Updates()
	}

	m := newModel(cfg, catalog, schedule.SystemClock{}, log, updates)
	defer m.shutdown()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func runSnapshotCmd(cmd *cobra.Command, args []string) error {
	cfg, log, catalog, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	frames := snapshotFrames
	if frames <= 0 {
		frames = cfg.Export.Frames
	}
	format := strings.ToLower(snapshotFormat)
	out := snapshotOut
	if out == "" {
		out = cfg.SnapshotPath("portfolio-snapshot." + format)
	}
	if err := runSnapshot(cfg, catalog, log, out, format, frames); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d frames)\n", out, frames)
	return nil
}

func listProjects(cmd *cobra.Command, args []string) error {
	cfg, _, catalog, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("SLUG", "TITLE", "YEAR", "FEATURED", "TECH").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, p := range catalog.All() {
		tags, more := p.Tags(cfg.Cards.TagLimit)
		tech := strings.Join(tags, ", ")
		if more > 0 {
			tech += fmt.Sprintf(" +%d", more)
		}
		featured := ""
		if p.Featured {
			featured = "yes"
		}
		t.Row(p.Slug, p.Title, fmt.Sprint(p.Year), featured, tech)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	fmt.Fprintf(cmd.OutOrStdout(), "%d projects from %s\n", catalog.Len(), catalog.Source())
	return nil
}

func showProject(cmd *cobra.Command, args []string) error {
	cfg, _, catalog, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(cfg.Render.Theme),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	var doc string
	p, lookupErr := catalog.BySlug(args[0])
	if lookupErr != nil {
		doc = projects.NotFoundMarkdown(args[0])
	} else {
		doc = projects.Markdown(p)
	}
	out, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return lookupErr
}

func initConfig(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if err := config.DefaultConfig().Save(configPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
	return nil
}
