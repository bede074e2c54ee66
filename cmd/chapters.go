package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/nckh/internal/course"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List the course modules and chapters",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(course.Modules())
		}

		for _, m := range course.Modules() {
			fmt.Println(m.Title)
			fmt.Printf("  handout: %s\n", m.DownloadURL)
			for _, ch := range m.Chapters {
				fmt.Printf("  %-4s %s\n", ch.ID, ch.Title)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	chaptersCmd.Flags().Bool("json", false, "Print the catalog as JSON")
}
