package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	var showHistory bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print joinable quizzes (or local play history) and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := &runtime{}
			if err := rt.setup(opts, os.Stderr); err != nil {
				return err
			}
			defer rt.close()

			if showHistory {
				return printHistory(cmd, rt)
			}
			return printActive(cmd, rt)
		},
	}
	cmd.Flags().BoolVar(&showHistory, "history", false, "show local play history instead of active quizzes")
	return cmd
}

func printActive(cmd *cobra.Command, rt *runtime) error {
	quizzes, err := rt.client.ListActiveQuizzes(cmd.Context())
	if err != nil {
		return err
	}
	if len(quizzes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No active quizzes at the moment. Why not create one?")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tTITLE\tSTATUS\tPLAYERS")
	for _, q := range quizzes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", q.Code, q.Title, q.Status, len(q.Players))
	}
	return w.Flush()
}

func printHistory(cmd *cobra.Command, rt *runtime) error {
	entries, err := rt.history.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No games played yet.")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tQUIZ\tCODE\tNICKNAME\tSCORE\tPLACE")
	for _, e := range entries {
		place := "-"
		if e.Placement > 0 {
			place = fmt.Sprintf("#%d", e.Placement)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			e.FinishedAt.Format("2006-01-02 15:04"), e.QuizTitle, e.QuizCode, e.Nickname, e.Score, place)
	}
	return w.Flush()
}
