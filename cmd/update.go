package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/afmlab/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace afmlab with the latest release",
	Long: `Download the release archive for this platform, verify it against the
release checksums and replace the running binary.

With --check only the release check from "afmlab version --check" runs.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
	updateCmd.Flags().String("to", "", "Install this release tag instead of the latest")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if version == selfupdate.DevVersion {
		fmt.Fprintln(w, "Cannot update a development build. Install a release build first.")
		return nil
	}

	if check, _ := cmd.Flags().GetBool("check"); check {
		_, err := checkRelease(cmd, w)
		return err
	}

	target, _ := cmd.Flags().GetString("to")
	opts := append([]selfupdate.Option{selfupdate.WithTimeout(2 * time.Minute)}, releaseOptions...)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	err := selfupdate.NewChecker(opts...).Update(ctx, &selfupdate.UpdateInput{
		CurrentVersion: version,
		TargetVersion:  target,
	}, func(p selfupdate.UpdateProgress) {
		fmt.Fprintf(w, "[%s] %s\n", p.Stage, p.Message)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Fprintf(w, "afmlab %s is the latest release.\n", version)
		return nil
	case os.IsPermission(err):
		return fmt.Errorf("%w\n\nTry running: sudo afmlab update", err)
	}
	return err
}
