package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/afmlab/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = selfupdate.DevVersion

// releaseOptions configures the release checker; tests point it at a fake
// GitHub API.
var releaseOptions []selfupdate.Option

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "afmlab", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}
		_, err := checkRelease(cmd, w)
		return err
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}

// checkRelease asks GitHub for the latest release and reports whether it is
// newer than the running build.
func checkRelease(cmd *cobra.Command, w io.Writer) (*selfupdate.CheckResult, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	res, err := selfupdate.NewChecker(releaseOptions...).Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		return nil, fmt.Errorf("check for updates: %w", err)
	}
	switch {
	case res.UpdateAvailable:
		fmt.Fprintf(w, "A newer version is available: %s\n%s\n", res.LatestVersion, res.ReleaseURL)
	case version == selfupdate.DevVersion:
		fmt.Fprintf(w, "Development build; latest release is %s.\n", res.LatestVersion)
	default:
		fmt.Fprintf(w, "Up to date (latest: %s).\n", res.LatestVersion)
	}
	return res, nil
}
