package game

import (
	"log/slog"

	"github.com/jvirtane/barfeud/internal/errors"
)

// BankSize is the number of prompts in a fast money round and the number of
// ranked answers in each prompt's bank.
const BankSize = 5

// Phase is the fast money round's position in its state machine.
type Phase string

const (
	PhaseSetup     Phase = "setup"
	PhasePlaying   Phase = "playing"
	PhaseRevealing Phase = "revealing"
	PhaseComplete  Phase = "complete"
)

// ErrPromptIndexOutOfRange is returned when a host control references a
// prompt outside the five slots. Bad indexes come from broken clients, not
// redundant clicks, so they surface instead of clamping.
var ErrPromptIndexOutOfRange = errors.NewSentinel("prompt index out of range")

// FastMoneyQuestion is one prompt with its ranked answer bank.
type FastMoneyQuestion struct {
	ID      string      `json:"id"`
	Text    string      `json:"text"`
	Answers []BankEntry `json:"answers"`
}

// FastMoneyResponse is one captured answer. TextRevealed is set the moment
// the host records the answer so the board shows it live; PointsRevealed
// waits for a separate host action. The gap is suspense pacing, not a bug.
// A response with TextRevealed still false is an empty slot.
type FastMoneyResponse struct {
	QuestionID         string `json:"questionId"`
	AnswerText         string `json:"answerText"`
	Points             int    `json:"points"`
	TextRevealed       bool   `json:"textRevealed"`
	PointsRevealed     bool   `json:"pointsRevealed"`
	BestAnswerRevealed bool   `json:"bestAnswerRevealed"`
}

// FastMoneyPlayer holds one contestant's slot. Responses are indexed 1:1
// with the five prompts. TotalPoints is always recomputed from the
// responses, never incremented.
type FastMoneyPlayer struct {
	Name        string                      `json:"name"`
	Responses   [BankSize]FastMoneyResponse `json:"responses"`
	TotalPoints int                         `json:"totalPoints"`
}

func (p *FastMoneyPlayer) clone() *FastMoneyPlayer {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

// FastMoneyState is the full state of the bonus round. Exactly one player's
// data is mutated at a time, selected by CurrentPlayer.
type FastMoneyState struct {
	Questions     []FastMoneyQuestion `json:"questions"`
	Player1       *FastMoneyPlayer    `json:"player1"`
	Player2       *FastMoneyPlayer    `json:"player2"`
	CurrentPlayer int                 `json:"currentPlayer"`
	TimeRemaining int                 `json:"timeRemaining"`
	Phase         Phase               `json:"phase"`
}

// NewFastMoney validates the prompt list and returns the initial setup
// state for player 1. The questions slice is shared, never mutated.
func NewFastMoney(questions []FastMoneyQuestion, cfg Config) (FastMoneyState, error) {
	if len(questions) != BankSize {
		return FastMoneyState{}, errors.New("fast money needs exactly five prompts",
			slog.Int("got", len(questions)))
	}
	for i := range questions {
		if err := ValidateFastMoneyQuestion(questions[i]); err != nil {
			return FastMoneyState{}, errors.Wrap(err, "validate prompt", slog.Int("promptIndex", i))
		}
	}
	return FastMoneyState{
		Questions:     questions,
		Player1:       nil,
		Player2:       nil,
		CurrentPlayer: 1,
		TimeRemaining: cfg.Player1Seconds,
		Phase:         PhaseSetup,
	}, nil
}

// clone copies the mutable parts of the state. The prompt list is read-only
// during play and is shared between snapshots.
func (s FastMoneyState) clone() FastMoneyState {
	s.Player1 = s.Player1.clone()
	s.Player2 = s.Player2.clone()
	return s
}

func (s *FastMoneyState) currentSlot() *FastMoneyPlayer {
	if s.CurrentPlayer == 2 {
		return s.Player2
	}
	return s.Player1
}

func (s *FastMoneyState) setCurrentSlot(p *FastMoneyPlayer) {
	if s.CurrentPlayer == 2 {
		s.Player2 = p
	} else {
		s.Player1 = p
	}
}

// StartPlayer opens the current player's turn: a fresh slot under the given
// name, a full clock, and the playing phase. Player 2 gets the longer clock
// from cfg.
func (s FastMoneyState) StartPlayer(name string, cfg Config) FastMoneyState {
	next := s.clone()
	next.setCurrentSlot(&FastMoneyPlayer{Name: name})
	if next.CurrentPlayer == 2 {
		next.TimeRemaining = cfg.Player2Seconds
	} else {
		next.TimeRemaining = cfg.Player1Seconds
	}
	next.Phase = PhasePlaying
	return next
}

// Tick advances the countdown by one second. Outside the playing phase it
// does nothing, so a tick that raced a phase change cannot corrupt state.
// When the clock hits exactly zero the round moves to revealing.
func (s FastMoneyState) Tick() FastMoneyState {
	if s.Phase != PhasePlaying || s.TimeRemaining <= 0 {
		return s
	}
	next := s.clone()
	next.TimeRemaining--
	if next.TimeRemaining == 0 {
		next.Phase = PhaseRevealing
	}
	return next
}

// SubmitAnswer records (or corrects) the current player's answer at
// promptIndex. The answer text shows immediately; points stay hidden until
// RevealPoints. Points come from manualPoints when the host supplies a
// non-negative override, otherwise from an exact bank match, otherwise zero.
// Submitting before StartPlayer is a no-op.
func (s FastMoneyState) SubmitAnswer(promptIndex int, raw string, manualPoints *int) (FastMoneyState, error) {
	if err := s.checkPromptIndex(promptIndex); err != nil {
		return s, err
	}
	if s.currentSlot() == nil {
		return s, nil
	}

	question := s.Questions[promptIndex]
	points := Match(raw, question.Answers).Points
	if manualPoints != nil && *manualPoints >= 0 {
		points = *manualPoints
	}

	next := s.clone()
	slot := next.currentSlot()
	slot.Responses[promptIndex] = FastMoneyResponse{
		QuestionID:         question.ID,
		AnswerText:         raw,
		Points:             points,
		TextRevealed:       true,
		PointsRevealed:     false,
		BestAnswerRevealed: false,
	}
	return next, nil
}

// EndPlayerTurn forces the revealing phase regardless of the clock. It is
// the host's manual escape hatch and also covers a timer that never fired.
func (s FastMoneyState) EndPlayerTurn() FastMoneyState {
	next := s.clone()
	next.Phase = PhaseRevealing
	return next
}

// RevealPoints shows the points for one response and recomputes the current
// player's total over all point-revealed responses. Re-revealing is a no-op.
func (s FastMoneyState) RevealPoints(promptIndex int) (FastMoneyState, error) {
	if err := s.checkPromptIndex(promptIndex); err != nil {
		return s, err
	}
	if s.currentSlot() == nil {
		return s, nil
	}
	next := s.clone()
	slot := next.currentSlot()
	slot.Responses[promptIndex].PointsRevealed = true
	slot.TotalPoints = totalPoints(slot.Responses, func(r FastMoneyResponse) bool {
		return r.PointsRevealed
	})
	return next, nil
}

// RevealBestAnswer marks the response so the board shows the bank's top
// answer for that prompt. Score is unaffected.
func (s FastMoneyState) RevealBestAnswer(promptIndex int) (FastMoneyState, error) {
	if err := s.checkPromptIndex(promptIndex); err != nil {
		return s, err
	}
	if s.currentSlot() == nil {
		return s, nil
	}
	next := s.clone()
	next.currentSlot().Responses[promptIndex].BestAnswerRevealed = true
	return next, nil
}

// AdjustPoints overwrites a response's points after the host has judged a
// near-miss. The total is recomputed over text-revealed responses, not
// point-revealed ones: an adjustment implies the host already decided the
// answer counts.
func (s FastMoneyState) AdjustPoints(promptIndex, points int) (FastMoneyState, error) {
	if err := s.checkPromptIndex(promptIndex); err != nil {
		return s, err
	}
	if s.currentSlot() == nil {
		return s, nil
	}
	next := s.clone()
	slot := next.currentSlot()
	slot.Responses[promptIndex].Points = points
	slot.TotalPoints = totalPoints(slot.Responses, func(r FastMoneyResponse) bool {
		return r.TextRevealed
	})
	return next, nil
}

// NextPlayer hands the podium to player 2 and returns to setup. Player 1's
// responses stay put so the host can call out duplicate answers. Calling it
// while player 2 is already up is a no-op.
func (s FastMoneyState) NextPlayer() FastMoneyState {
	if s.CurrentPlayer != 1 {
		return s
	}
	next := s.clone()
	next.CurrentPlayer = 2
	next.Phase = PhaseSetup
	return next
}

// EndRound moves to the terminal complete phase.
func (s FastMoneyState) EndRound() FastMoneyState {
	next := s.clone()
	next.Phase = PhaseComplete
	return next
}

// Reset returns to the initial setup state for player 1 with all prompts
// unanswered.
func (s FastMoneyState) Reset(cfg Config) FastMoneyState {
	return FastMoneyState{
		Questions:     s.Questions,
		Player1:       nil,
		Player2:       nil,
		CurrentPlayer: 1,
		TimeRemaining: cfg.Player1Seconds,
		Phase:         PhaseSetup,
	}
}

func (s FastMoneyState) checkPromptIndex(promptIndex int) error {
	if promptIndex < 0 || promptIndex >= len(s.Questions) {
		return errors.Wrap(ErrPromptIndexOutOfRange, "fast money prompt",
			slog.Int("promptIndex", promptIndex), slog.Int("prompts", len(s.Questions)))
	}
	return nil
}

func totalPoints(responses [BankSize]FastMoneyResponse, counts func(FastMoneyResponse) bool) int {
	sum := 0
	for _, r := range responses {
		if counts(r) {
			sum += r.Points
		}
	}
	return sum
}
