package view

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/abhisek/nckh/internal/quiz"
)

// Element ids of the quiz modal.
const (
	ModalID   = "quiz-modal"
	BodyID    = "quiz-body"
	LoadingID = "quiz-loading"
	FormID    = "quiz-form"
	ResultsID = "quiz-results"
	ScoreID   = "quiz-score"
	SummaryID = "quiz-summary"
	ReviewID  = "quiz-review"

	StartButtonID  = "start-quiz-btn"
	CloseButtonID  = "close-quiz-btn"
	SubmitButtonID = "submit-quiz-btn"
	RetakeButtonID = "retake-quiz-btn"
)

// LoadingMessage is shown while questions are being generated.
const LoadingMessage = quiz.LoadingMessage

// Actions holds the endpoints the modal controls post to. A control whose
// endpoint is empty is left out of the markup.
type Actions struct {
	Submit string
	Retake string
	Close  string
}

// FieldName is the form field carrying the answer to question i.
func FieldName(i int) string {
	return "q" + strconv.Itoa(i)
}

// Modal builds the full quiz modal for a controller snapshot.
func Modal(snap quiz.Snapshot, act Actions) *html.Node {
	s := snap.Surface

	body := El(atom.Div, []Attr{A("id", BodyID)},
		loading(s),
		form(snap, act),
		results(snap),
	)

	return El(atom.Div, []Attr{
		A("id", ModalID),
		A("class", Hidden("quiz-modal", !s.Modal)),
		A("data-state", snap.Session.State.String()),
	},
		body,
		controls(s, act),
	)
}

// StartButton builds the control that opens the quiz for a chapter.
func StartButton(chapterID, action string) *html.Node {
	return startForm(chapterID, action, StartButtonID)
}

func startForm(chapterID, action, id string) *html.Node {
	return El(atom.Form, []Attr{A("method", "post"), A("action", action)},
		El(atom.Input, []Attr{A("type", "hidden"), A("name", "chapterId"), A("value", chapterID)}),
		El(atom.Button, []Attr{
			A("id", id),
			A("type", "submit"),
			A("data-chapter-id", chapterID),
		}, Text("Bắt đầu Tự lượng giá")),
	)
}

func loading(s quiz.Surface) *html.Node {
	var msg *html.Node
	if s.Error != "" {
		msg = El(atom.P, Class("text-red-600"), Text(s.LoadingText()))
	} else {
		msg = El(atom.P, Class("quiz-spinner"), Text(LoadingMessage))
	}
	return El(atom.Div, []Attr{A("id", LoadingID), A("class", Hidden("", !s.Loading))}, msg)
}

func form(snap quiz.Snapshot, act Actions) *html.Node {
	attrs := []Attr{
		A("id", FormID),
		A("class", Hidden("space-y-6", !snap.Surface.Form)),
		A("method", "post"),
	}
	if act.Submit != "" {
		attrs = append(attrs, A("action", act.Submit))
	}
	f := El(atom.Form, attrs)

	// Questions are only meaningful while answering.
	if snap.Session.State != quiz.StateActive {
		return f
	}
	for i, q := range snap.Session.Questions {
		chosen, answered := snap.Session.Answers[i]
		f.AppendChild(fieldset(i, q, chosen, answered))
	}
	return f
}

func fieldset(index int, q quiz.Question, chosen int, answered bool) *html.Node {
	group := El(atom.Div, Class("space-y-2"))
	name := FieldName(index)

	for i, opt := range q.Options {
		id := fmt.Sprintf("q%d_option%d", index, i)
		input := []Attr{
			A("id", id),
			A("type", "radio"),
			A("name", name),
			A("value", strconv.Itoa(i)),
		}
		if answered && chosen == i {
			input = append(input, A("checked", ""))
		}
		group.AppendChild(El(atom.Div, Class("quiz-option"),
			El(atom.Input, input),
			El(atom.Label, []Attr{A("for", id)}, Text(opt)),
		))
	}

	return El(atom.Fieldset, Class("border-t pt-4"),
		El(atom.Legend, Class("quiz-question"), Text(fmt.Sprintf("(Câu %d) %s", index+1, q.Text))),
		group,
	)
}

func results(snap quiz.Snapshot) *html.Node {
	s := snap.Surface
	div := El(atom.Div, []Attr{A("id", ResultsID), A("class", Hidden("", !s.Results))})
	if snap.Result == nil {
		return div
	}
	res := snap.Result

	div.AppendChild(El(atom.P, []Attr{A("id", ScoreID)}, Text(res.ScoreLine())))
	div.AppendChild(El(atom.P, []Attr{A("id", SummaryID)}, Text(res.Summary())))

	review := El(atom.Div, []Attr{A("id", ReviewID)})
	if len(res.Review) == 0 {
		review.AppendChild(El(atom.P, Class("text-center text-green-600"), Text(quiz.EmptyReviewNotice)))
	}
	for _, item := range res.Review {
		review.AppendChild(reviewItem(item))
	}
	div.AppendChild(review)
	return div
}

func reviewItem(item quiz.ReviewItem) *html.Node {
	class := "quiz-review-item"
	if item.Skipped {
		class += " skipped"
	}
	return El(atom.Div, Class(class, A("data-question", strconv.Itoa(item.Index))),
		El(atom.P, Class("font-semibold"), Text(item.Heading())),
		El(atom.P, Class("choice"), Text(item.ChoiceLine())),
		El(atom.P, Class("correct"), Text(item.CorrectLine())),
		El(atom.P, Class("explanation"), El(atom.Em, nil, Text(item.ExplanationLine()))),
	)
}

func controls(s quiz.Surface, act Actions) *html.Node {
	div := El(atom.Div, Class("quiz-controls"))

	if act.Close != "" {
		div.AppendChild(postButton(act.Close, CloseButtonID, "Đóng", false))
	}
	if act.Submit != "" {
		div.AppendChild(El(atom.Button, []Attr{
			A("id", SubmitButtonID),
			A("type", "submit"),
			A("form", FormID),
			A("class", Hidden("", !s.Submit)),
		}, Text("Nộp bài")))
	}
	if act.Retake != "" {
		div.AppendChild(postButton(act.Retake, RetakeButtonID, "Làm lại", !s.Retake))
	}
	return div
}

func postButton(action, id, label string, hide bool) *html.Node {
	return El(atom.Form, []Attr{A("method", "post"), A("action", action), A("class", Hidden("inline", hide))},
		El(atom.Button, []Attr{A("id", id), A("type", "submit")}, Text(label)),
	)
}
