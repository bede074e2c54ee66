package assist

import (
	"context"
	"strings"

	"github.com/abhisek/nckh/internal/llm"
)

// Proposal builder steps.
const (
	StepTitle      = "proposal-title"
	StepProblem    = "proposal-problem"
	StepLitReview  = "proposal-lit-review"
	StepGeneral    = "proposal-general"
	StepSpecific   = "proposal-specific"
	StepMethods    = "proposal-methods"
	StepSample     = "proposal-sample"
	StepAnalysis   = "proposal-analysis"
	StepEthics     = "proposal-ethics"
	StepReferences = "proposal-references"
)

// Steps lists the proposal builder steps in the order a proposal is written.
var Steps = []string{
	StepTitle, StepProblem, StepLitReview, StepGeneral, StepSpecific,
	StepMethods, StepSample, StepAnalysis, StepEthics, StepReferences,
}

// ProposalContext holds what the student has written so far.
type ProposalContext struct {
	Problem  string `json:"problem"`
	Title    string `json:"title"`
	General  string `json:"general"`
	Specific string `json:"specific"`
	Methods  string `json:"methods"`
}

func orNone(s string) string {
	if s == "" {
		return "none yet"
	}
	return s
}

// proposalQuery returns the request for a step and whether it needs web search.
func proposalQuery(step string, pc ProposalContext) (string, bool, error) {
	switch step {
	case StepTitle:
		return "I have an idea for a research topic (possibly from the problem statement). Suggest 3 scientifically sound titles (based on Chapter 2).\nContext: " + pc.Problem, false, nil
	case StepProblem:
		return `Based on this problem statement: "` + pc.Problem + `", help me refine it into the 3-paragraph structure (Background, Gap, Urgency) from Chapter 2.`, false, nil
	case StepLitReview:
		return `For the topic "` + orNone(pc.Title) + `", use web search to find and briefly summarize 3-5 related studies (literature review), focusing on key findings and knowledge gaps.`, true, nil
	case StepGeneral:
		return `From this problem statement: "` + pc.Problem + `", suggest one general objective (based on Chapter 2).`, false, nil
	case StepSpecific:
		return `From this general objective: "` + pc.General + `", suggest 2-3 specific objectives that follow the SMART criteria (based on Chapter 2).`, false, nil
	case StepMethods:
		return `For the objective "` + pc.General + `", suggest the subjects and research methods in detail (based on Chapters 3 and 4), covering:
1. Study design.
2. Study population.
3. Inclusion and exclusion criteria.`, false, nil
	case StepSample:
		return `For this study design: "` + pc.Methods + `", suggest a suitable sample size formula and sampling method (based on Chapter 3).`, false, nil
	case StepAnalysis:
		return `Based on these specific objectives: "` + pc.Specific + `", suggest the matching statistical analyses (based on Chapters 5 and 11).`, false, nil
	case StepEthics:
		return "Suggest the basic content a research ethics section needs for a biomedical study (based on Chapter 6).", false, nil
	case StepReferences:
		return `For the topic "` + orNone(pc.Title) + `", use web search to find 3 important references and format them in the Vancouver style.`, true, nil
	}
	return "", false, ErrInvalidStep
}

// Suggest drafts one section of a research proposal.
func (t *Tools) Suggest(ctx context.Context, step string, pc ProposalContext) (*Answer, error) {
	query, grounded, err := proposalQuery(step, pc)
	if err != nil {
		return nil, err
	}
	return t.ask(ctx, llm.PurposeProposal, proposalSystemPrompt, query, grounded)
}

// Recommend names the statistical test that fits an analysis.
func (t *Tools) Recommend(ctx context.Context, in AdvisorInput) (*Answer, error) {
	return t.ask(ctx, llm.PurposeAdvisor, advisorSystemPrompt, advisorQuery(in), false)
}

// Review comments on one section of a student's paper.
func (t *Tools) Review(ctx context.Context, section, text string) (*Answer, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyQuery
	}
	return t.ask(ctx, llm.PurposeGrader, graderSystemPrompt, graderQuery(section, text), false)
}

// Scenario produces a short practice scenario.
func (t *Tools) Scenario(ctx context.Context) (*Answer, error) {
	return t.ask(ctx, llm.PurposeScenario, scenarioSystemPrompt, scenarioQuery, false)
}

// Ask answers a course question, backed by web search.
func (t *Tools) Ask(ctx context.Context, query string) (*Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return t.ask(ctx, llm.PurposeAssistant, assistantSystemPrompt, query, true)
}

// Ethics answers a research ethics question, backed by web search.
// Questions outside research ethics are declined by the model.
func (t *Tools) Ethics(ctx context.Context, query string) (*Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return t.ask(ctx, llm.PurposeEthics, ethicsSystemPrompt, query, true)
}
