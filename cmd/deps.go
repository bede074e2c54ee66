package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/nckh/internal/assist"
	"github.com/abhisek/nckh/internal/llm"
	"github.com/abhisek/nckh/internal/quiz"
	"github.com/abhisek/nckh/internal/quizapi"
	"github.com/abhisek/nckh/internal/store"
)

// deps are the services shared by the terminal and server commands.
// store and provider are nil when unavailable.
type deps struct {
	store    *store.Store
	provider llm.Provider
	config   assist.Config
}

// buildDeps opens the store and the LLM provider. Neither is required:
// failures are reported on stderr and the features degrade.
func buildDeps(cmd *cobra.Command) *deps {
	d := &deps{config: assist.DefaultConfig()}

	st, err := openStore(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Attempt history unavailable:", err)
	} else {
		d.store = st
	}

	var events store.EventRepo
	if d.store != nil {
		events = d.store.EventRepo()
	}
	provider, _, err := llm.NewProviderFromEnv(cmd.Context(), events)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		fmt.Fprintln(os.Stderr, "LLM provider not configured: set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY.")
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	default:
		d.provider = provider
	}
	return d
}

func (d *deps) Close() {
	if d.store != nil {
		d.store.Close()
	}
}

func (d *deps) generator() *assist.QuizGenerator {
	return assist.NewQuizGenerator(d.provider, d.config)
}

func (d *deps) tools() *assist.Tools {
	return assist.NewTools(d.provider, d.config)
}

// attempts returns the attempt log, or a nil interface without a store.
func (d *deps) attempts() store.AttemptRepo {
	if d.store == nil {
		return nil
	}
	return d.store.AttemptRepo()
}

// quizSource picks where terminal quizzes come from: a remote server when
// --server is given (unless --local), otherwise the in-process generator.
func (d *deps) quizSource(cmd *cobra.Command) quiz.Source {
	server, _ := cmd.Flags().GetString("server")
	local, _ := cmd.Flags().GetBool("local")
	if server != "" && !local {
		return quizapi.New(server, nil)
	}
	return d.generator()
}

// remote reports whether quizzes are fetched from a server, which needs no
// local provider.
func remote(cmd *cobra.Command) bool {
	server, _ := cmd.Flags().GetString("server")
	local, _ := cmd.Flags().GetBool("local")
	return server != "" && !local
}
