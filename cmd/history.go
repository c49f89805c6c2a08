package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/afmlab/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent activity, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		session, _ := cmd.Flags().GetString("session")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		items, err := st.EventRepo().History(cmd.Context(), store.QueryOpts{
			Limit:     limit,
			SessionID: session,
		})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintln(w, "No activity recorded yet.")
			return nil
		}
		for _, a := range items {
			fmt.Fprintf(w, "%-5d  %-19s  %-8s  %-8s  %s\n",
				a.Sequence,
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				a.Kind,
				truncate(a.SessionID, 8),
				a.Summary,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 30, "Number of entries to show")
	historyCmd.Flags().String("session", "", "Only show one page session")
}
