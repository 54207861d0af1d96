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

var quizColumns = []string{"id", "user_id", "history_id", "title", "content_type", "total_questions", "created_at"}

var questionColumns = []string{"id", "quiz_id", "position", "text", "options", "correct_option", "explanation", "difficulty"}

// quizRepo implements QuizRepo on the ent SQL builders.
type quizRepo struct {
	s *Store
}

func (r *quizRepo) CreateQuiz(ctx context.Context, q *quiz.Quiz, questions []quiz.Question) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	q.TotalQuestions = len(questions)

	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		var historyID any
		if q.HistoryID != nil {
			historyID = *q.HistoryID
		}
		ins := entsql.Dialect(sqliteDialect).
			Insert("quizzes").
			Columns(quizColumns...).
			Values(q.ID, q.UserID, historyID, q.Title, string(q.ContentType), q.TotalQuestions, q.CreatedAt.UTC())
		if err := execBuilder(ctx, tx, ins); err != nil {
			return fmt.Errorf("insert quiz: %w", err)
		}

		for i := range questions {
			qn := &questions[i]
			qn.QuizID = q.ID
			opts, err := json.Marshal(qn.Options)
			if err != nil {
				return fmt.Errorf("encode options: %w", err)
			}
			ins := entsql.Dialect(sqliteDialect).
				Insert("questions").
				Columns(questionColumns...).
				Values(qn.ID, qn.QuizID, qn.Position, qn.Text, string(opts), qn.CorrectOption, qn.Explanation, string(qn.Difficulty))
			if err := execBuilder(ctx, tx, ins); err != nil {
				return fmt.Errorf("insert question %d: %w", qn.Position, err)
			}
		}
		return nil
	})
}

func (r *quizRepo) GetQuiz(ctx context.Context, id string) (*quiz.Quiz, error) {
	sel := entsql.Dialect(sqliteDialect).
		Select(quizColumns...).
		From(entsql.Table("quizzes")).
		Where(entsql.EQ("id", id)).
		Limit(1)
	quizzes, err := r.scanQuizzes(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return nil, nil
	}
	return &quizzes[0], nil
}

func (r *quizRepo) ListQuizzes(ctx context.Context, userID string, opts QueryOpts) ([]quiz.Quiz, error) {
	sel := entsql.Dialect(sqliteDialect).
		Select(quizColumns...).
		From(entsql.Table("quizzes")).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return r.scanQuizzes(ctx, sel)
}

func (r *quizRepo) scanQuizzes(ctx context.Context, sel *entsql.Selector) ([]quiz.Quiz, error) {
	rows, err := queryBuilder(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query quizzes: %w", err)
	}
	defer rows.Close()

	var out []quiz.Quiz
	for rows.Next() {
		var (
			q         quiz.Quiz
			historyID sql.NullString
			ct        string
		)
		if err := rows.Scan(&q.ID, &q.UserID, &historyID, &q.Title, &ct, &q.TotalQuestions, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		if historyID.Valid {
			h := historyID.String
			q.HistoryID = &h
		}
		q.ContentType = analysis.ParseContentType(ct)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *quizRepo) ListQuestions(ctx context.Context, quizID string) ([]quiz.Question, error) {
	sel := entsql.Dialect(sqliteDialect).
		Select(questionColumns...).
		From(entsql.Table("questions")).
		Where(entsql.EQ("quiz_id", quizID)).
		OrderBy("position")
	rows, err := queryBuilder(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []quiz.Question
	for rows.Next() {
		var (
			q    quiz.Question
			opts string
			diff string
		)
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Position, &q.Text, &opts, &q.CorrectOption, &q.Explanation, &diff); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
			return nil, fmt.Errorf("decode options of question %s: %w", q.ID, err)
		}
		q.Difficulty = quiz.Difficulty(diff)
		out = append(out, q)
	}
	return out, rows.Err()
}
