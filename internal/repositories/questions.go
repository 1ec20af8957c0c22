package repositories

import (
	"context"
	"log/slog"

	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/game"
	"github.com/jvirtane/barfeud/internal/seed"
	"github.com/jvirtane/barfeud/internal/sqlite"
)

// ErrSetNotFound is returned when a question set name does not exist.
var ErrSetNotFound = errors.NewSentinel("question set not found")

// QuestionSet is a named batch of board questions, as imported by the host.
type QuestionSet struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
	Questions []game.Question
}

type QuestionRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewQuestionRepository(db *sqlite.Database, logger *slog.Logger) *QuestionRepository {
	return &QuestionRepository{
		db:     db,
		logger: logger.With("source", "QuestionRepository"),
	}
}

type questionRow struct {
	ID       string `db:"id"`
	Text     string `db:"text"`
	Category string `db:"category"`
}

type answerRow struct {
	QuestionID string `db:"question_id"`
	ID         int    `db:"id"`
	Text       string `db:"text"`
	Points     int    `db:"points"`
}

// EnsureSeeded loads the starter packs into an empty library so a fresh
// install can run a game immediately. Existing data is never touched.
func (r *QuestionRepository) EnsureSeeded(ctx context.Context) error {
	var setCount int
	if err := r.db.ReadOnly.GetContext(ctx, &setCount, `SELECT COUNT(*) FROM question_sets`); err != nil {
		return errors.Wrap(err, "count question sets")
	}
	if setCount == 0 {
		if err := r.ImportSet(ctx, seed.SetName, seed.Questions()); err != nil {
			return errors.Wrap(err, "seed starter questions")
		}
	}

	var fastMoneyCount int
	if err := r.db.ReadOnly.GetContext(ctx, &fastMoneyCount, `SELECT COUNT(*) FROM fast_money_questions`); err != nil {
		return errors.Wrap(err, "count fast money questions")
	}
	if fastMoneyCount == 0 {
		if err := r.ReplaceFastMoney(ctx, seed.FastMoney()); err != nil {
			return errors.Wrap(err, "seed fast money pack")
		}
	}

	return nil
}

// ListQuestions returns every board question in the library in import
// order, answers hidden.
func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]game.Question, error) {
	var rows []questionRow
	stmt := `SELECT id, text, category FROM questions ORDER BY set_id, position`
	if err := r.db.ReadOnly.SelectContext(ctx, &rows, stmt); err != nil {
		return nil, errors.Wrap(err, "select questions")
	}
	return r.attachAnswers(ctx, rows)
}

// GetQuestion returns a single board question by id.
func (r *QuestionRepository) GetQuestion(ctx context.Context, id string) (game.Question, error) {
	var row questionRow
	stmt := `SELECT id, text, category FROM questions WHERE id = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &row, stmt, id); err != nil {
		return game.Question{}, errors.Wrap(err, "get question", slog.String("questionID", id))
	}
	questions, err := r.attachAnswers(ctx, []questionRow{row})
	if err != nil {
		return game.Question{}, err
	}
	return questions[0], nil
}

func (r *QuestionRepository) attachAnswers(ctx context.Context, rows []questionRow) ([]game.Question, error) {
	var answerRows []answerRow
	stmt := `SELECT question_id, id, text, points FROM answers ORDER BY question_id, id`
	if err := r.db.ReadOnly.SelectContext(ctx, &answerRows, stmt); err != nil {
		return nil, errors.Wrap(err, "select answers")
	}
	answersByQuestion := make(map[string][]game.Answer)
	for _, a := range answerRows {
		answersByQuestion[a.QuestionID] = append(answersByQuestion[a.QuestionID], game.Answer{
			ID:       a.ID,
			Text:     a.Text,
			Points:   a.Points,
			Revealed: false,
		})
	}

	questions := make([]game.Question, 0, len(rows))
	for _, row := range rows {
		q := game.Question{
			ID:       row.ID,
			Text:     row.Text,
			Category: row.Category,
			Answers:  answersByQuestion[row.ID],
		}
		if err := game.ValidateQuestion(q); err != nil {
			return nil, errors.Wrap(err, "stored question is malformed", slog.String("questionID", row.ID))
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// ListSets returns the question set names without their questions.
func (r *QuestionRepository) ListSets(ctx context.Context) ([]QuestionSet, error) {
	var sets []QuestionSet
	stmt := `SELECT id, name, created_at FROM question_sets ORDER BY created_at`
	if err := r.db.ReadOnly.SelectContext(ctx, &sets, stmt); err != nil {
		return nil, errors.Wrap(err, "select question sets")
	}
	return sets, nil
}

// GetSet returns a question set with its questions in import order.
func (r *QuestionRepository) GetSet(ctx context.Context, name string) (QuestionSet, error) {
	var set QuestionSet
	stmt := `SELECT id, name, created_at FROM question_sets WHERE name = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &set, stmt, name); err != nil {
		return QuestionSet{}, ErrSetNotFound
	}

	var rows []questionRow
	stmt = `SELECT id, text, category FROM questions WHERE set_id = ? ORDER BY position`
	if err := r.db.ReadOnly.SelectContext(ctx, &rows, stmt, set.ID); err != nil {
		return QuestionSet{}, errors.Wrap(err, "select set questions", slog.String("set", name))
	}
	questions, err := r.attachAnswers(ctx, rows)
	if err != nil {
		return QuestionSet{}, err
	}
	set.Questions = questions
	return set, nil
}

// ImportSet stores a named batch of questions. Every question is validated
// before anything is written; a failed import leaves the library untouched.
func (r *QuestionRepository) ImportSet(ctx context.Context, name string, questions []game.Question) error {
	for i, q := range questions {
		if err := game.ValidateQuestion(q); err != nil {
			return errors.Wrap(err, "validate imported question", slog.Int("index", i))
		}
	}

	tx, err := r.db.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin import transaction")
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	result, err := tx.ExecContext(ctx, `INSERT INTO question_sets (name) VALUES (?)`, name)
	if err != nil {
		return errors.Wrap(err, "insert question set", slog.String("set", name))
	}
	setID, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "question set id")
	}

	for position, q := range questions {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO questions (id, set_id, text, category, position) VALUES (?, ?, ?, ?, ?)`,
			q.ID, setID, q.Text, q.Category, position,
		); err != nil {
			return errors.Wrap(err, "insert question", slog.String("questionID", q.ID))
		}
		for _, a := range q.Answers {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO answers (question_id, id, text, points) VALUES (?, ?, ?, ?)`,
				q.ID, a.ID, a.Text, a.Points,
			); err != nil {
				return errors.Wrap(err, "insert answer",
					slog.String("questionID", q.ID), slog.Int("answerID", a.ID))
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit import")
	}
	return nil
}

// FastMoney returns the fast money prompts in board order with their ranked
// banks.
func (r *QuestionRepository) FastMoney(ctx context.Context) ([]game.FastMoneyQuestion, error) {
	var rows []struct {
		ID   string `db:"id"`
		Text string `db:"text"`
	}
	stmt := `SELECT id, text FROM fast_money_questions ORDER BY position`
	if err := r.db.ReadOnly.SelectContext(ctx, &rows, stmt); err != nil {
		return nil, errors.Wrap(err, "select fast money questions")
	}

	var banks []answerRow
	stmt = `SELECT question_id, rank AS id, text, points FROM fast_money_answers ORDER BY question_id, rank`
	if err := r.db.ReadOnly.SelectContext(ctx, &banks, stmt); err != nil {
		return nil, errors.Wrap(err, "select fast money answers")
	}
	bankByQuestion := make(map[string][]game.BankEntry)
	for _, a := range banks {
		bankByQuestion[a.QuestionID] = append(bankByQuestion[a.QuestionID], game.BankEntry{
			Text:   a.Text,
			Points: a.Points,
		})
	}

	questions := make([]game.FastMoneyQuestion, 0, len(rows))
	for _, row := range rows {
		q := game.FastMoneyQuestion{
			ID:      row.ID,
			Text:    row.Text,
			Answers: bankByQuestion[row.ID],
		}
		if err := game.ValidateFastMoneyQuestion(q); err != nil {
			return nil, errors.Wrap(err, "stored fast money prompt is malformed", slog.String("questionID", row.ID))
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// ReplaceFastMoney swaps the whole fast money pack. Nothing is written
// unless the replacement is a complete valid pack.
func (r *QuestionRepository) ReplaceFastMoney(ctx context.Context, questions []game.FastMoneyQuestion) error {
	if len(questions) != game.BankSize {
		return errors.New("fast money pack needs exactly five prompts", slog.Int("got", len(questions)))
	}
	for i := range questions {
		if err := game.ValidateFastMoneyQuestion(questions[i]); err != nil {
			return errors.Wrap(err, "validate fast money prompt", slog.Int("index", i))
		}
	}

	tx, err := r.db.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin fast money transaction")
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err = tx.ExecContext(ctx, `DELETE FROM fast_money_questions`); err != nil {
		return errors.Wrap(err, "clear fast money questions")
	}
	for position, q := range questions {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO fast_money_questions (id, position, text) VALUES (?, ?, ?)`,
			q.ID, position, q.Text,
		); err != nil {
			return errors.Wrap(err, "insert fast money question", slog.String("questionID", q.ID))
		}
		for rank, entry := range q.Answers {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO fast_money_answers (question_id, rank, text, points) VALUES (?, ?, ?, ?)`,
				q.ID, rank, entry.Text, entry.Points,
			); err != nil {
				return errors.Wrap(err, "insert fast money answer",
					slog.String("questionID", q.ID), slog.Int("rank", rank))
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit fast money")
	}
	return nil
}
