package game_test

import (
	"testing"

	"github.com/jvirtane/barfeud/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardQuestion() game.Question {
	return game.Question{
		ID:   "q1",
		Text: "Name something you order at a bar",
		Answers: []game.Answer{
			{ID: 1, Text: "Beer", Points: 40},
			{ID: 2, Text: "Cocktail", Points: 25},
			{ID: 3, Text: "Shot", Points: 15},
			{ID: 4, Text: "Wine", Points: 10},
		},
	}
}

func TestMainRound_SelectQuestion(t *testing.T) {
	t.Parallel()
	cfg := game.DefaultConfig()
	q := boardQuestion()
	q.Answers[0].Revealed = true

	state := game.NewMainRound(cfg).AddStrike().SelectQuestion(q)

	require.NotNil(t, state.CurrentQuestion)
	assert.Equal(t, 0, state.Strikes, "selecting a question resets strikes")
	for _, a := range state.CurrentQuestion.Answers {
		assert.False(t, a.Revealed, "answers start hidden")
	}
	// The board owns its own copy of the question.
	state.CurrentQuestion.Answers[0].Revealed = true
	assert.True(t, q.Answers[0].Revealed, "caller's question is untouched")
}

func TestMainRound_RevealAnswer(t *testing.T) {
	t.Parallel()
	cfg := game.DefaultConfig()
	state := game.NewMainRound(cfg).SelectQuestion(boardQuestion())

	state = state.RevealAnswer(2)
	assert.True(t, state.CurrentQuestion.Answers[1].Revealed)

	// Re-revealing and unknown ids are harmless clicks.
	again := state.RevealAnswer(2).RevealAnswer(99)
	assert.Equal(t, state, again)

	// Reveals are monotonic until the next SelectQuestion.
	for _, id := range []int{1, 3, 1, 2} {
		state = state.RevealAnswer(id)
	}
	assert.True(t, state.CurrentQuestion.Answers[0].Revealed)
	assert.True(t, state.CurrentQuestion.Answers[1].Revealed)
	assert.True(t, state.CurrentQuestion.Answers[2].Revealed)
	assert.False(t, state.CurrentQuestion.Answers[3].Revealed)
}

func TestMainRound_RevealAnswer_noQuestion(t *testing.T) {
	t.Parallel()
	state := game.NewMainRound(game.DefaultConfig())
	assert.Equal(t, state, state.RevealAnswer(1))
}

func TestMainRound_Strikes(t *testing.T) {
	t.Parallel()
	state := game.NewMainRound(game.DefaultConfig())

	for i := 0; i < 5; i++ {
		state = state.AddStrike()
		assert.LessOrEqual(t, state.Strikes, game.MaxStrikes)
		assert.GreaterOrEqual(t, state.Strikes, 0)
	}
	assert.Equal(t, game.MaxStrikes, state.Strikes, "fourth and fifth strikes are no-ops")

	state = state.ResetStrikes()
	assert.Equal(t, 0, state.Strikes)
}

func TestMainRound_AwardPoints(t *testing.T) {
	t.Parallel()
	cfg := game.DefaultConfig()
	q := game.Question{
		ID:   "q",
		Text: "test",
		Answers: []game.Answer{
			{ID: 1, Text: "a", Points: 10},
			{ID: 2, Text: "b", Points: 20},
			{ID: 3, Text: "c", Points: 5},
		},
	}
	state := game.NewMainRound(cfg).SelectQuestion(q).RevealAnswer(1).RevealAnswer(3)

	state = state.AwardPoints(1)
	assert.Equal(t, 15, state.Team1.Score, "only revealed answers count")
	assert.Equal(t, 0, state.Team2.Score)

	// Awarding twice double-awards; that is a host decision, not a bug.
	state = state.AwardPoints(1)
	assert.Equal(t, 30, state.Team1.Score)

	state = state.AwardPoints(2)
	assert.Equal(t, 15, state.Team2.Score)

	// Invalid team numbers change nothing.
	assert.Equal(t, state, state.AwardPoints(3))
}

func TestMainRound_AwardPoints_noQuestion(t *testing.T) {
	t.Parallel()
	state := game.NewMainRound(game.DefaultConfig())
	assert.Equal(t, state, state.AwardPoints(1), "no question on the board")
}

func TestMainRound_SetActiveTeam(t *testing.T) {
	t.Parallel()
	state := game.NewMainRound(game.DefaultConfig())

	state = state.SetActiveTeam(2)
	assert.Equal(t, 2, state.ActiveTeam)
	state = state.SetActiveTeam(0)
	assert.Equal(t, 0, state.ActiveTeam)
	state = state.SetActiveTeam(7)
	assert.Equal(t, 0, state.ActiveTeam)
}

func TestMainRound_Reset(t *testing.T) {
	t.Parallel()
	cfg := game.DefaultConfig()
	state := game.NewMainRound(cfg).
		SelectQuestion(boardQuestion()).
		RevealAnswer(1).
		AwardPoints(1).
		AddStrike().
		UpdateTeamNames("The Regulars", "")

	state = state.Reset(cfg)

	assert.Nil(t, state.CurrentQuestion)
	assert.Equal(t, 0, state.Team1.Score)
	assert.Equal(t, 0, state.Team2.Score)
	assert.Equal(t, 0, state.Strikes)
	assert.Equal(t, 0, state.ActiveTeam)
	assert.Equal(t, cfg.Team1Name, state.Team1.Name, "names return to defaults")
}

func TestMainRound_reselectIsIdempotent(t *testing.T) {
	t.Parallel()
	cfg := game.DefaultConfig()
	q := boardQuestion()

	once := game.NewMainRound(cfg).SelectQuestion(q)
	roundTrip := game.NewMainRound(cfg).SelectQuestion(q).ResetStrikes().SelectQuestion(q)

	assert.Equal(t, once, roundTrip)
}

func TestMainRound_UpdateTeamNames(t *testing.T) {
	t.Parallel()
	state := game.NewMainRound(game.DefaultConfig()).SelectQuestion(boardQuestion()).RevealAnswer(1).AwardPoints(1)
	score := state.Team1.Score

	state = state.UpdateTeamNames("Locals", "Visitors")
	assert.Equal(t, "Locals", state.Team1.Name)
	assert.Equal(t, "Visitors", state.Team2.Name)
	assert.Equal(t, score, state.Team1.Score, "renaming keeps the score")

	state = state.UpdateTeamNames("", "Away")
	assert.Equal(t, "Locals", state.Team1.Name)
	assert.Equal(t, "Away", state.Team2.Name)
}

func TestValidateQuestion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		question game.Question
		wantErr  error
	}{
		{
			name:     "valid",
			question: boardQuestion(),
			wantErr:  nil,
		},
		{
			name:     "no answers",
			question: game.Question{ID: "q", Text: "empty"},
			wantErr:  game.ErrQuestionWithoutAnswers,
		},
		{
			name: "missing text",
			question: game.Question{ID: "q", Text: "t", Answers: []game.Answer{
				{ID: 1, Text: "", Points: 10},
			}},
			wantErr: game.ErrBankEntryMissingText,
		},
		{
			name: "negative points",
			question: game.Question{ID: "q", Text: "t", Answers: []game.Answer{
				{ID: 1, Text: "a", Points: -1},
			}},
			wantErr: game.ErrNegativePoints,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := game.ValidateQuestion(tt.question)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
