package repositories_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jvirtane/barfeud/internal/game"
	"github.com/jvirtane/barfeud/internal/repositories"
	"github.com/jvirtane/barfeud/internal/seed"
	"github.com/jvirtane/barfeud/internal/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionRepository_GetSet(t *testing.T) {
	db := newTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repositories.NewQuestionRepository(db, logger)
	ctx := context.Background()

	set, err := repo.GetSet(ctx, "house-pack")
	require.NoError(t, err)

	assert.Equal(t, "house-pack", set.Name)
	require.Len(t, set.Questions, 2)
	assert.Equal(t, "q1", set.Questions[0].ID)
	assert.Equal(t, "Name something people forget at the bar", set.Questions[0].Text)
	require.Len(t, set.Questions[0].Answers, 4)
	assert.Equal(t, game.Answer{ID: 1, Text: "Phone", Points: 40, Revealed: false}, set.Questions[0].Answers[0])
	assert.Equal(t, "q2", set.Questions[1].ID)
	require.Len(t, set.Questions[1].Answers, 3)

	_, err = repo.GetSet(ctx, "nonexistent")
	assert.ErrorIs(t, err, repositories.ErrSetNotFound)
}

func TestQuestionRepository_ImportSet(t *testing.T) {
	db := newTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repositories.NewQuestionRepository(db, logger)
	ctx := context.Background()

	questions := []game.Question{
		{
			ID:       "trivia-1",
			Text:     "Name something you find in a kitchen drawer",
			Category: "Home",
			Answers: []game.Answer{
				{ID: 1, Text: "Spoons", Points: 45},
				{ID: 2, Text: "Scissors", Points: 30},
				{ID: 3, Text: "Batteries", Points: 15},
			},
		},
	}
	require.NoError(t, repo.ImportSet(ctx, "trivia-night", questions))

	set, err := repo.GetSet(ctx, "trivia-night")
	require.NoError(t, err)
	require.Len(t, set.Questions, 1)
	assert.Equal(t, questions[0].Answers, set.Questions[0].Answers)

	sets, err := repo.ListSets(ctx)
	require.NoError(t, err)
	assert.Len(t, sets, 2)
}

func TestQuestionRepository_ImportSet_rejectsMalformedQuestions(t *testing.T) {
	db := newTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repositories.NewQuestionRepository(db, logger)
	ctx := context.Background()

	tests := []struct {
		name      string
		questions []game.Question
		wantErr   error
	}{
		{
			name:      "no answers",
			questions: []game.Question{{ID: "bad", Text: "Empty"}},
			wantErr:   game.ErrQuestionWithoutAnswers,
		},
		{
			name: "negative points",
			questions: []game.Question{{
				ID:      "bad",
				Text:    "Negative",
				Answers: []game.Answer{{ID: 1, Text: "Nope", Points: -5}},
			}},
			wantErr: game.ErrNegativePoints,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.ImportSet(ctx, "rejected", tt.questions)
			require.ErrorIs(t, err, tt.wantErr)

			// Nothing from the failed import may be visible.
			_, err = repo.GetSet(ctx, "rejected")
			assert.ErrorIs(t, err, repositories.ErrSetNotFound)
		})
	}
}

func TestQuestionRepository_EnsureSeeded(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	repo := repositories.NewQuestionRepository(db, logger)

	require.NoError(t, repo.EnsureSeeded(ctx))

	sets, err := repo.ListSets(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, seed.SetName, sets[0].Name)

	fastMoney, err := repo.FastMoney(ctx)
	require.NoError(t, err)
	require.Len(t, fastMoney, game.BankSize)
	assert.Equal(t, "Name a popular beer brand", fastMoney[0].Text)

	// Seeding again does nothing.
	require.NoError(t, repo.EnsureSeeded(ctx))
	sets, err = repo.ListSets(ctx)
	require.NoError(t, err)
	assert.Len(t, sets, 1)
}

func TestQuestionRepository_FastMoney(t *testing.T) {
	db := newTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repositories.NewQuestionRepository(db, logger)
	ctx := context.Background()

	questions, err := repo.FastMoney(ctx)
	require.NoError(t, err)
	require.Len(t, questions, game.BankSize)

	assert.Equal(t, "fm1", questions[0].ID)
	assert.Equal(t, "Name a popular pizza topping", questions[0].Text)
	require.Len(t, questions[0].Answers, game.BankSize)
	assert.Equal(t, game.BankEntry{Text: "Pepperoni", Points: 40}, questions[0].Answers[0])
	assert.Equal(t, game.BankEntry{Text: "Onions", Points: 8}, questions[0].Answers[4])

	// The loaded pack must be usable as-is for a fast money round.
	_, err = game.NewFastMoney(questions, game.DefaultConfig())
	require.NoError(t, err)
}

func TestQuestionRepository_ReplaceFastMoney(t *testing.T) {
	db := newTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repositories.NewQuestionRepository(db, logger)
	ctx := context.Background()

	pack := make([]game.FastMoneyQuestion, game.BankSize)
	for i := range pack {
		pack[i] = game.FastMoneyQuestion{
			ID:   string(rune('a' + i)),
			Text: "Replacement prompt",
			Answers: []game.BankEntry{
				{Text: "First", Points: 40},
				{Text: "Second", Points: 30},
				{Text: "Third", Points: 15},
				{Text: "Fourth", Points: 10},
				{Text: "Fifth", Points: 5},
			},
		}
	}
	require.NoError(t, repo.ReplaceFastMoney(ctx, pack))

	questions, err := repo.FastMoney(ctx)
	require.NoError(t, err)
	require.Len(t, questions, game.BankSize)
	assert.Equal(t, "a", questions[0].ID)
	assert.Equal(t, "Replacement prompt", questions[0].Text)

	// A short pack is rejected before any row is touched.
	err = repo.ReplaceFastMoney(ctx, pack[:2])
	require.Error(t, err)
	questions, err = repo.FastMoney(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", questions[0].ID)
}
