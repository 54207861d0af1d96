package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/quiz"
)

var attemptColumns = []string{"id", "sequence", "quiz_id", "user_id", "score", "total_questions", "percentage", "time_taken_seconds", "created_at"}

var answerColumns = []string{"attempt_id", "question_id", "position", "selected_option", "correct_option", "is_correct", "question_text", "options", "explanation"}

// attemptRepo implements AttemptRepo on the ent SQL builders.
type attemptRepo struct {
	s *Store
}

func (r *attemptRepo) CreateAttempt(ctx context.Context, a *quiz.Attempt) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		seq, err := r.s.seq.Next(ctx, tx)
		if err != nil {
			return err
		}

		ins := entsql.Dialect(sqliteDialect).
			Insert("attempts").
			Columns(attemptColumns...).
			Values(a.ID, seq, a.QuizID, a.UserID, a.Score, a.TotalQuestions, a.Percentage, a.TimeTakenSeconds, a.CreatedAt.UTC())
		if err := execBuilder(ctx, tx, ins); err != nil {
			return fmt.Errorf("insert attempt: %w", err)
		}

		for _, rec := range a.Answers {
			opts, err := json.Marshal(rec.Options)
			if err != nil {
				return fmt.Errorf("encode options: %w", err)
			}
			ins := entsql.Dialect(sqliteDialect).
				Insert("answer_records").
				Columns(answerColumns...).
				Values(a.ID, rec.QuestionID, rec.Position, rec.Selected, rec.Correct, rec.IsCorrect, rec.Question, string(opts), rec.Explanation)
			if err := execBuilder(ctx, tx, ins); err != nil {
				return fmt.Errorf("insert answer for question %s: %w", rec.QuestionID, err)
			}
		}
		return nil
	})
}

func (r *attemptRepo) GetAttempt(ctx context.Context, id string) (*quiz.Attempt, error) {
	sel := entsql.Dialect(sqliteDialect).
		Select(attemptColumns...).
		From(entsql.Table("attempts")).
		Where(entsql.EQ("id", id)).
		Limit(1)
	rows, err := queryBuilder(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query attempt: %w", err)
	}
	var (
		a     quiz.Attempt
		found bool
	)
	for rows.Next() {
		var seq int64
		if err := rows.Scan(&a.ID, &seq, &a.QuizID, &a.UserID, &a.Score, &a.TotalQuestions, &a.Percentage, &a.TimeTakenSeconds, &a.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		found = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query attempt: %w", err)
	}
	if !found {
		return nil, nil
	}

	answers, err := r.listAnswers(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Answers = answers
	return &a, nil
}

func (r *attemptRepo) listAnswers(ctx context.Context, attemptID string) ([]quiz.AnswerRecord, error) {
	sel := entsql.Dialect(sqliteDialect).
		Select("question_id", "position", "selected_option", "correct_option", "is_correct", "question_text", "options", "explanation").
		From(entsql.Table("answer_records")).
		Where(entsql.EQ("attempt_id", attemptID)).
		OrderBy("position")
	rows, err := queryBuilder(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []quiz.AnswerRecord
	for rows.Next() {
		var (
			rec  quiz.AnswerRecord
			opts string
		)
		if err := rows.Scan(&rec.QuestionID, &rec.Position, &rec.Selected, &rec.Correct, &rec.IsCorrect, &rec.Question, &opts, &rec.Explanation); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		if err := json.Unmarshal([]byte(opts), &rec.Options); err != nil {
			return nil, fmt.Errorf("decode answer options: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *attemptRepo) ListAttempts(ctx context.Context, userID string, opts QueryOpts) ([]quiz.AttemptSummary, error) {
	// Aliases are set up front; Join would otherwise rename quizzes after
	// its columns were already rendered.
	a := entsql.Table("attempts").As("a")
	q := entsql.Table("quizzes").As("q")
	sel := entsql.Dialect(sqliteDialect).
		Select(
			a.C("id"), a.C("sequence"), a.C("quiz_id"), a.C("user_id"), a.C("score"),
			a.C("total_questions"), a.C("percentage"), a.C("time_taken_seconds"), a.C("created_at"),
			q.C("title"), q.C("content_type"),
		).
		From(a).
		Join(q).On(a.C("quiz_id"), q.C("id")).
		Where(entsql.EQ(a.C("user_id"), userID)).
		OrderBy(entsql.Desc(a.C("sequence")))
	if opts.Before > 0 {
		sel.Where(entsql.LT(a.C("sequence"), opts.Before))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	rows, err := queryBuilder(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []quiz.AttemptSummary
	for rows.Next() {
		var (
			s   quiz.AttemptSummary
			seq int64
			ct  string
		)
		if err := rows.Scan(&s.ID, &seq, &s.QuizID, &s.UserID, &s.Score, &s.TotalQuestions, &s.Percentage,
			&s.TimeTakenSeconds, &s.CreatedAt, &s.QuizTitle, &ct); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		s.ContentType = analysis.ParseContentType(ct)
		out = append(out, s)
	}
	return out, rows.Err()
}
