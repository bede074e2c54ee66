package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/nckh/internal/app"
	"github.com/abhisek/nckh/internal/screen"
	"github.com/abhisek/nckh/internal/screens/home"
	"github.com/abhisek/nckh/internal/screens/selftest"
)

// runApp builds dependencies and launches the TUI. A non-empty chapterID
// opens that chapter's quiz straight away.
func runApp(cmd *cobra.Command, chapterID string) error {
	d := buildDeps(cmd)
	defer d.Close()

	opts := app.Options{
		Home: home.Deps{
			Source:   d.quizSource(cmd),
			Attempts: d.attempts(),
			LLMReady: d.provider != nil || remote(cmd),
		},
	}
	if d.store != nil {
		opts.Home.History = d.store.AttemptRepo()
	}
	if d.provider != nil {
		opts.Home.Asker = d.tools()
	}
	if chapterID != "" {
		opts.Initial = func(deps home.Deps) screen.Screen {
			return selftest.New(chapterID, deps.Source, deps.Attempts)
		}
	}

	return app.Run(opts)
}
