package quiz

import "fmt"

// Fixed texts shown on the results panel.
const (
	PerfectSummary    = "Tuyệt vời! Bạn đã trả lời đúng tất cả!"
	ReviewSummary     = "Hãy xem lại các câu trả lời sai bên dưới."
	EmptyReviewNotice = "Xin chúc mừng, bạn không sai câu nào!"
	SkippedNotice     = "Bạn đã bỏ qua câu này."

	// LoadingMessage is shown while questions are being generated.
	LoadingMessage = "Đang tạo câu hỏi, vui lòng chờ..."
)

// Answers maps a question index to the selected option index.
// Skipped questions have no entry.
type Answers map[int]int

// ReviewItem describes one question the learner did not get right.
type ReviewItem struct {
	// Index is the 0-based position of the question in the quiz.
	Index       int
	Question    string
	Skipped     bool
	Chosen      string
	Correct     string
	Explanation string
}

// ChoiceLine is the human-readable statement of what the learner picked.
func (r ReviewItem) ChoiceLine() string {
	if r.Skipped {
		return SkippedNotice
	}
	return `Lựa chọn của bạn: "` + r.Chosen + `"`
}

// Heading numbers the question for the review list.
func (r ReviewItem) Heading() string {
	return fmt.Sprintf("Câu %d: %s", r.Index+1, r.Question)
}

// ExplanationLine prefixes the explanation.
func (r ReviewItem) ExplanationLine() string {
	return "Giải thích: " + r.Explanation
}

// CorrectLine names the correct option.
func (r ReviewItem) CorrectLine() string {
	return `Đáp án đúng: "` + r.Correct + `"`
}

// Result is the outcome of grading a quiz.
type Result struct {
	Score  int
	Total  int
	Review []ReviewItem
}

// Perfect reports whether every question was answered correctly.
func (r Result) Perfect() bool {
	return r.Score == r.Total
}

// ScoreLine renders "Kết quả của bạn: score / total".
func (r Result) ScoreLine() string {
	return fmt.Sprintf("Kết quả của bạn: %d / %d", r.Score, r.Total)
}

// Summary returns the qualitative message for the score.
func (r Result) Summary() string {
	if r.Perfect() {
		return PerfectSummary
	}
	return ReviewSummary
}

// Skipped counts review entries with no selection.
func (r Result) Skipped() int {
	n := 0
	for _, item := range r.Review {
		if item.Skipped {
			n++
		}
	}
	return n
}

// Grade scores answers against questions. Exact match only: a question
// counts when a selection exists, is a valid option, and equals the correct
// index. Missing and out-of-range selections are reported as incorrect.
func Grade(questions []Question, answers Answers) Result {
	res := Result{Total: len(questions)}

	for i, q := range questions {
		chosen, answered := answers[i]
		chosenText, valid := q.Option(chosen)

		if answered && valid && chosen == q.CorrectOptionIndex {
			res.Score++
			continue
		}

		item := ReviewItem{
			Index:       i,
			Question:    q.Text,
			Skipped:     !answered,
			Correct:     q.CorrectText(),
			Explanation: q.Explanation,
		}
		if answered {
			item.Chosen = chosenText
			if !valid {
				item.Chosen = fmt.Sprintf("lựa chọn %d", chosen+1)
			}
		}
		res.Review = append(res.Review, item)
	}

	return res
}
