package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/nckh/internal/course"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the self-assessment quiz of one chapter",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("chapter")
		if _, err := course.Lookup(id); err != nil {
			return fmt.Errorf("%w (see `nckh chapters`)", err)
		}
		return runApp(cmd, id)
	},
}

func init() {
	quizCmd.Flags().StringP("chapter", "c", course.DefaultChapterID, "Chapter id")
}
