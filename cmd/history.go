package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/nckh/internal/course"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		chapter, _ := cmd.Flags().GetString("chapter")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.AttemptRepo()

		best, err := repo.BestByChapter(ctx)
		if err != nil {
			return err
		}
		if len(best) == 0 {
			fmt.Println("No quiz attempts recorded yet.")
			return nil
		}

		fmt.Println("Best Scores")
		fmt.Println(strings.Repeat("─", 72))
		for _, b := range best {
			fmt.Printf("%-52s  %3d/%-3d  %4d tries\n", truncate(course.Title(b.ChapterID), 52), b.BestScore, b.Total, b.Attempts)
		}

		attempts, err := repo.RecentAttempts(ctx, chapter, limit)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println("Recent Attempts")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-5s  %-19s  %-7s  %-7s  %-7s  %s\n", "ID", "Timestamp", "Chapter", "Score", "Skipped", "Via")
		for _, a := range attempts {
			fmt.Printf("%-5d  %-19s  %-7s  %3d/%-3d  %-7d  %s\n",
				a.ID,
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				a.ChapterID,
				a.Score, a.Total,
				a.Skipped,
				a.Source,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().StringP("chapter", "c", "", "Only show attempts of this chapter")
}
