package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"placeviz/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:         "dashboard",
	Short:       "Start the interactive dashboard",
	Annotations: map[string]string{interactive: "true"},
	Args:        cobra.NoArgs,
	RunE:        runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, closeFn, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	opts, err := svc.Options(ctx)
	if err != nil {
		return err
	}
	req, err := defaultRequest()
	if err != nil {
		return err
	}
	logger.Info("dashboard started")
	m := tui.New(svc, opts, req, cfg.Cloud.MaxWords)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
