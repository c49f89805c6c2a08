package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/afmlab/internal/activity"
	"github.com/abhisek/afmlab/internal/api"
	"github.com/abhisek/afmlab/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the explorer and simulator over HTTP",
	Long: `Serve the Learning Explorer and Adaptive Simulator as a JSON API.

Configuration comes from AFMLAB_HTTP_* environment variables (or .env);
--addr overrides AFMLAB_HTTP_ADDR.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides AFMLAB_HTTP_ADDR)")
	serveCmd.Flags().Bool("no-store", false, "Do not record activity")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := api.FromEnv()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	rec := activity.Disabled()
	if noStore, _ := cmd.Flags().GetBool("no-store"); !noStore {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		rec = activity.NewRecorder(st.EventRepo(), st.SnapshotRepo(), store.SourceHTTP)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "afmlab listening on %s\n", cfg.Addr)
	return api.New(cfg, rec).Run(ctx)
}
