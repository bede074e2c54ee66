package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/nckh/internal/assist"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Use the AI study tools from the terminal",
}

// askRun wraps a tool call with provider setup and answer printing.
func askRun(call func(ctx context.Context, t *assist.Tools, args []string) (*assist.Answer, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		d := buildDeps(cmd)
		defer d.Close()

		a, err := call(cmd.Context(), d.tools(), args)
		if err != nil {
			return fmt.Errorf("%s", assist.Explain(err))
		}
		printAnswer(a)
		return nil
	}
}

func printAnswer(a *assist.Answer) {
	fmt.Println(a.Text)
	if len(a.Sources) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Sources:")
	for _, s := range a.Sources {
		if s.Title != "" {
			fmt.Printf("  - %s (%s)\n", s.Title, s.URI)
		} else {
			fmt.Printf("  - %s\n", s.URI)
		}
	}
}

var askAssistantCmd = &cobra.Command{
	Use:   "assistant <question>",
	Short: "Ask the research methods assistant (web grounded)",
	Args:  cobra.MinimumNArgs(1),
	RunE: askRun(func(ctx context.Context, t *assist.Tools, args []string) (*assist.Answer, error) {
		return t.Ask(ctx, strings.Join(args, " "))
	}),
}

var askEthicsCmd = &cobra.Command{
	Use:   "ethics <question>",
	Short: "Ask the research ethics advisor (web grounded)",
	Args:  cobra.MinimumNArgs(1),
	RunE: askRun(func(ctx context.Context, t *assist.Tools, args []string) (*assist.Answer, error) {
		return t.Ethics(ctx, strings.Join(args, " "))
	}),
}

var askScenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Generate a study-design practice scenario",
	Args:  cobra.NoArgs,
	RunE: askRun(func(ctx context.Context, t *assist.Tools, _ []string) (*assist.Answer, error) {
		return t.Scenario(ctx)
	}),
}

var advisorInput assist.AdvisorInput

var askAdvisorCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Recommend a statistical test",
	Args:  cobra.NoArgs,
	RunE: askRun(func(ctx context.Context, t *assist.Tools, _ []string) (*assist.Answer, error) {
		return t.Recommend(ctx, advisorInput)
	}),
}

var graderSection string

var askGraderCmd = &cobra.Command{
	Use:   "grader <text>",
	Short: "Review a draft section of a research proposal",
	Args:  cobra.MinimumNArgs(1),
	RunE: askRun(func(ctx context.Context, t *assist.Tools, args []string) (*assist.Answer, error) {
		return t.Review(ctx, graderSection, strings.Join(args, " "))
	}),
}

var (
	proposalStep    string
	proposalContext assist.ProposalContext
)

var askProposalCmd = &cobra.Command{
	Use:   "proposal",
	Short: "Get suggestions for one step of a research proposal",
	Args:  cobra.NoArgs,
	RunE: askRun(func(ctx context.Context, t *assist.Tools, _ []string) (*assist.Answer, error) {
		return t.Suggest(ctx, proposalStep, proposalContext)
	}),
}

func init() {
	f := askAdvisorCmd.Flags()
	f.StringVar(&advisorInput.Goal, "goal", "compare means", "Analysis goal, e.g. \"compare means\" or \"test an association\"")
	f.StringVar(&advisorInput.Groups, "groups", "two independent groups", "Groups being compared")
	f.StringVar(&advisorInput.VarType, "var-type", "continuous", "Outcome variable type: continuous or categorical")
	f.StringVar(&advisorInput.Dist, "dist", "normal", "Distribution: normal or skewed")

	askGraderCmd.Flags().StringVar(&graderSection, "section", "problem", "Section being reviewed")

	f = askProposalCmd.Flags()
	f.StringVar(&proposalStep, "step", assist.StepTitle, "Step: "+strings.Join(assist.Steps, ", "))
	f.StringVar(&proposalContext.Problem, "problem", "", "Research problem")
	f.StringVar(&proposalContext.Title, "title", "", "Working title")
	f.StringVar(&proposalContext.General, "general", "", "General objective")
	f.StringVar(&proposalContext.Specific, "specific", "", "Specific objectives")
	f.StringVar(&proposalContext.Methods, "methods", "", "Study design and methods")

	askCmd.AddCommand(askAssistantCmd)
	askCmd.AddCommand(askEthicsCmd)
	askCmd.AddCommand(askScenarioCmd)
	askCmd.AddCommand(askAdvisorCmd)
	askCmd.AddCommand(askGraderCmd)
	askCmd.AddCommand(askProposalCmd)
}
