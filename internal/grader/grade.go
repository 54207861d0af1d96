// Package grader scores quiz submissions and records them as attempts.
package grader

import "github.com/abhisek/snapquiz/internal/quiz"

// Result is the outcome of grading a set of answers.
type Result struct {
	Score      int
	Total      int
	Percentage int
	Answers    []quiz.AnswerRecord
}

// Grade scores answers against questions. Questions are walked in the
// order given; any question without an answer counts as quiz.Unanswered.
// An answer naming a question outside the quiz fails the whole grade. When
// a question is answered more than once the last answer wins.
func Grade(quizID string, questions []quiz.Question, answers []quiz.Answer) (*Result, error) {
	byID := make(map[string]*quiz.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	selected := make(map[string]int, len(answers))
	for _, a := range answers {
		if _, ok := byID[a.QuestionID]; !ok {
			return nil, &quiz.ErrInvalidAnswerReference{QuizID: quizID, QuestionID: a.QuestionID}
		}
		if !quiz.ValidSelection(a.Selected) {
			return nil, &quiz.ErrInvalidSelection{QuestionID: a.QuestionID, Selected: a.Selected}
		}
		selected[a.QuestionID] = a.Selected
	}

	res := &Result{
		Total:   len(questions),
		Answers: make([]quiz.AnswerRecord, 0, len(questions)),
	}
	for _, q := range questions {
		sel, ok := selected[q.ID]
		if !ok {
			sel = quiz.Unanswered
		}
		correct := sel != quiz.Unanswered && sel == q.CorrectOption
		if correct {
			res.Score++
		}
		res.Answers = append(res.Answers, quiz.AnswerRecord{
			QuestionID:  q.ID,
			Position:    q.Position,
			Selected:    sel,
			Correct:     q.CorrectOption,
			IsCorrect:   correct,
			Question:    q.Text,
			Options:     q.Options,
			Explanation: q.Explanation,
		})
	}
	res.Percentage = quiz.Percentage(res.Score, res.Total)
	return res, nil
}
