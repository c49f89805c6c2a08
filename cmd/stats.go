package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/afmlab/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded activity statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.EventRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		w := cmd.OutOrStdout()
		sep := strings.Repeat("─", 48)

		fmt.Fprintln(w, "Sessions")
		fmt.Fprintln(w, sep)
		fmt.Fprintf(w, "%-24s  %6d\n", "Learning Explorer", stats.Sessions[store.PageExplorer])
		fmt.Fprintf(w, "%-24s  %6d\n", "Adaptive Simulator", stats.Sessions[store.PageSimulator])

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Explorer answers")
		fmt.Fprintln(w, sep)
		if len(stats.Concepts) == 0 {
			fmt.Fprintln(w, "No answers recorded yet.")
		}
		for _, c := range stats.Concepts {
			fmt.Fprintf(w, "%-24s  %6d  %s\n", c.Concept, c.Answers, percent(c.Correct, c.Answers))
		}
		if len(stats.Concepts) > 0 {
			fmt.Fprintln(w, sep)
			fmt.Fprintf(w, "%-24s  %6d  %s\n", "TOTAL",
				stats.ExplorerAnswers, percent(stats.ExplorerCorrect, stats.ExplorerAnswers))
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Simulator")
		fmt.Fprintln(w, sep)
		fmt.Fprintf(w, "%-24s  %6d  %s\n", "Responses",
			stats.SimulatorResponses, percent(stats.SimulatorCorrect, stats.SimulatorResponses))
		fmt.Fprintf(w, "%-24s  %6d\n", "Parameter changes", stats.ParamChanges)

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Coach")
		fmt.Fprintln(w, sep)
		fmt.Fprintf(w, "%-24s  %6d\n", "LLM requests", stats.LLMRequests)
		fmt.Fprintf(w, "%-24s  %d / %d\n", "Tokens (in / out)", stats.LLMInputTokens, stats.LLMOutputTokens)
		return nil
	},
}

// percent formats n/total as "(xx% correct)", or "" when total is zero.
func percent(n, total int) string {
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("(%.0f%% correct)", float64(n)/float64(total)*100)
}
