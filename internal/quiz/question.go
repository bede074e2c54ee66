package quiz

import "fmt"

// MinOptions is the smallest number of answer choices a question may carry.
const MinOptions = 2

// Question is a single multiple-choice item as produced by the question
// generator. JSON tags follow the /api/quiz wire format.
type Question struct {
	Text               string   `json:"question"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_answer_index"`
	Explanation        string   `json:"explanation"`
}

// Validate reports whether the question can be rendered and graded.
func (q Question) Validate() error {
	if len(q.Options) < MinOptions {
		return fmt.Errorf("question %q has %d options, need at least %d", q.Text, len(q.Options), MinOptions)
	}
	if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
		return fmt.Errorf("question %q has correct answer index %d out of range", q.Text, q.CorrectOptionIndex)
	}
	return nil
}

// Option returns the text of option i, or false when i is out of range.
func (q Question) Option(i int) (string, bool) {
	if i < 0 || i >= len(q.Options) {
		return "", false
	}
	return q.Options[i], true
}

// CorrectText returns the text of the correct option ("" if the index is invalid).
func (q Question) CorrectText() string {
	s, _ := q.Option(q.CorrectOptionIndex)
	return s
}

// ValidateAll returns the first validation error in qs, wrapped with its index.
func ValidateAll(qs []Question) error {
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}
