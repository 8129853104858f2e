// Package ui provides the cobra command-line surface for whenworks.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmerino/whenworks/internal/config"
	"github.com/dmerino/whenworks/internal/schedule"
	"github.com/dmerino/whenworks/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   schedule.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo schedule.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "whenworks",
		Short: "Find when your group is free",
		Long: `Whenworks is a terminal app for finding shared free time.

Everyone in a group paints their weekly availability on a quarter-hour
grid; whenworks overlays the schedules, highlights overlap, and suggests
the best meeting windows.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to whenworks-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.groupCmd())
	a.root.AddCommand(a.suggestCmd())
	a.root.AddCommand(a.showCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("whenworks %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// defaultGroup resolves the configured group, failing with guidance when
// none is set.
func (a *App) defaultGroup(cmd *cobra.Command) (schedule.Group, error) {
	code := a.config.Group.DefaultInvite
	if code == "" {
		return schedule.Group{}, fmt.Errorf("no group configured: run 'whenworks group create' or 'whenworks group join <code>'")
	}
	return a.repo.GetGroupByCode(cmd.Context(), code)
}
