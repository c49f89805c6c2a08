package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/afmlab/internal/activity"
	"github.com/abhisek/afmlab/internal/app"
	"github.com/abhisek/afmlab/internal/coach"
	"github.com/abhisek/afmlab/internal/llm"
	"github.com/abhisek/afmlab/internal/store"
)

var explorerCmd = &cobra.Command{
	Use:   "explorer",
	Short: "Open the Learning Explorer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, app.StartExplorer)
	},
}

var simulatorCmd = &cobra.Command{
	Use:   "simulator",
	Short: "Open the Adaptive Simulator",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, app.StartSimulator)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, start app.Start) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	rec := activity.NewRecorder(eventRepo, st.SnapshotRepo(), store.SourceTUI)

	return app.Run(app.Options{
		EventRepo: eventRepo,
		Recorder:  rec,
		Coach:     newCoach(cmd.Context(), eventRepo),
		Start:     start,
	})
}

// newCoach builds the coach. Without a configured provider the coach still
// works offline.
func newCoach(ctx context.Context, eventRepo store.EventRepo) *coach.Service {
	cfg, ok := llm.ResolveConfig()
	if !ok {
		fmt.Fprintln(os.Stderr, "LLM provider not configured; the coach will use offline explanations.")
		return coach.NewService(nil, coach.DefaultConfig())
	}
	provider, err := llm.NewProvider(ctx, cfg, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The coach will use offline explanations.")
		return coach.NewService(nil, coach.DefaultConfig())
	}
	return coach.NewService(provider, coach.DefaultConfig())
}
