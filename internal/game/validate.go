package game

import (
	"log/slog"

	"github.com/jvirtane/barfeud/internal/errors"
)

var (
	ErrQuestionWithoutAnswers = errors.NewSentinel("question has no answers")
	ErrBankEntryMissingText   = errors.NewSentinel("answer is missing text")
	ErrNegativePoints         = errors.NewSentinel("answer has negative points")
	ErrWrongBankSize          = errors.NewSentinel("fast money bank does not have exactly five answers")
)

// ValidateQuestion rejects questions that would corrupt scoring: no answers
// at all, an answer with empty text, or negative points.
func ValidateQuestion(q Question) error {
	if len(q.Answers) == 0 {
		return errors.Wrap(ErrQuestionWithoutAnswers, "validate question", slog.String("questionID", q.ID))
	}
	for i, a := range q.Answers {
		if a.Text == "" {
			return errors.Wrap(ErrBankEntryMissingText, "validate question",
				slog.String("questionID", q.ID), slog.Int("answerIndex", i))
		}
		if a.Points < 0 {
			return errors.Wrap(ErrNegativePoints, "validate question",
				slog.String("questionID", q.ID), slog.Int("answerIndex", i))
		}
	}
	return nil
}

// ValidateFastMoneyQuestion rejects a prompt whose bank is not exactly five
// well-formed ranked answers.
func ValidateFastMoneyQuestion(q FastMoneyQuestion) error {
	if len(q.Answers) != BankSize {
		return errors.Wrap(ErrWrongBankSize, "validate fast money prompt",
			slog.String("questionID", q.ID), slog.Int("answers", len(q.Answers)))
	}
	for i, a := range q.Answers {
		if a.Text == "" {
			return errors.Wrap(ErrBankEntryMissingText, "validate fast money prompt",
				slog.String("questionID", q.ID), slog.Int("answerIndex", i))
		}
		if a.Points < 0 {
			return errors.Wrap(ErrNegativePoints, "validate fast money prompt",
				slog.String("questionID", q.ID), slog.Int("answerIndex", i))
		}
	}
	return nil
}
