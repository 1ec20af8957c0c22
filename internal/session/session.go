// Package session wraps the game engines into live, host-driven sessions.
// A Session serializes host actions behind a mutex, owns the single
// authoritative fast money countdown, evaluates the win threshold, and
// pushes a combined snapshot to the replication sink and store after every
// mutation.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/game"
)

type Session struct {
	code   string
	cfg    game.Config
	logger *slog.Logger
	sink   Sink
	store  Store

	mu            sync.Mutex
	mainRound     game.MainRoundState
	fastMoney     game.FastMoneyState
	showFastMoney bool
	winner        string
	version       int64
	// cancelTimer stops the countdown goroutine. Nil when no countdown is
	// running. It is replaced wholesale on every StartPlayer so a stale
	// timer can never tick against a later turn.
	cancelTimer context.CancelFunc
}

func newSession(
	code string,
	fastMoneyQuestions []game.FastMoneyQuestion,
	cfg game.Config,
	logger *slog.Logger,
	sink Sink,
	store Store,
) (*Session, error) {
	fastMoney, err := game.NewFastMoney(fastMoneyQuestions, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "initialise fast money", slog.String("code", code))
	}
	return &Session{
		code:      code,
		cfg:       cfg,
		logger:    logger.With("source", "Session", "code", code),
		sink:      sink,
		store:     store,
		mainRound: game.NewMainRound(cfg),
		fastMoney: fastMoney,
	}, nil
}

// Code returns the session's join code.
func (s *Session) Code() string {
	return s.code
}

// CurrentSnapshot returns the latest combined state without a cue.
func (s *Session) CurrentSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(game.CueNone)
}

// snapshotLocked builds a snapshot from current state. Callers hold s.mu.
func (s *Session) snapshotLocked(cue game.Cue) Snapshot {
	return Snapshot{
		Code:          s.code,
		Version:       s.version,
		MainRound:     s.mainRound,
		FastMoney:     s.fastMoney,
		ShowFastMoney: s.showFastMoney,
		Winner:        s.winner,
		Cue:           cue,
		UpdatedAt:     time.Now(),
	}
}

// apply runs a mutation under the lock and replicates the result.
func (s *Session) apply(ctx context.Context, cue game.Cue, mutate func() error) (Snapshot, error) {
	s.mu.Lock()
	if err := mutate(); err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}
	s.version++
	snapshot := s.snapshotLocked(cue)
	s.mu.Unlock()

	s.replicate(ctx, snapshot)
	return snapshot, nil
}

func (s *Session) replicate(ctx context.Context, snapshot Snapshot) {
	s.sink.Publish(s.code, snapshot)
	if err := s.store.Save(ctx, snapshot); err != nil {
		// Live fan-out already happened; a failed write only affects
		// reconnects after a restart.
		s.logger.LogAttrs(ctx, slog.LevelWarn, "persist snapshot", errors.SlogError(err))
	}
}

// --- main round ---

// SelectQuestion puts a validated question on the board.
func (s *Session) SelectQuestion(ctx context.Context, q game.Question) (Snapshot, error) {
	if err := game.ValidateQuestion(q); err != nil {
		return Snapshot{}, err
	}
	return s.apply(ctx, game.CueForAction(game.ActionSelectQuestion), func() error {
		s.mainRound = s.mainRound.SelectQuestion(q)
		return nil
	})
}

func (s *Session) RevealAnswer(ctx context.Context, answerID int) Snapshot {
	snapshot, _ := s.apply(ctx, game.CueForAction(game.ActionRevealAnswer), func() error {
		s.mainRound = s.mainRound.RevealAnswer(answerID)
		return nil
	})
	return snapshot
}

func (s *Session) AddStrike(ctx context.Context) Snapshot {
	snapshot, _ := s.apply(ctx, game.CueForAction(game.ActionAddStrike), func() error {
		s.mainRound = s.mainRound.AddStrike()
		return nil
	})
	return snapshot
}

func (s *Session) ResetStrikes(ctx context.Context) Snapshot {
	snapshot, _ := s.apply(ctx, game.CueNone, func() error {
		s.mainRound = s.mainRound.ResetStrikes()
		return nil
	})
	return snapshot
}

// AwardPoints banks the revealed points for a team and evaluates the win
// threshold, which is session policy rather than engine behavior.
func (s *Session) AwardPoints(ctx context.Context, team int) Snapshot {
	cue := game.CueForAction(game.ActionAwardPoints)
	snapshot, _ := s.apply(ctx, cue, func() error {
		s.mainRound = s.mainRound.AwardPoints(team)
		s.checkWinnerLocked()
		return nil
	})
	if snapshot.Winner != "" {
		snapshot.Cue = game.CueForAction(game.ActionDeclareWinner)
	}
	return snapshot
}

// checkWinnerLocked declares the first team whose score reaches the
// threshold. Callers hold s.mu.
func (s *Session) checkWinnerLocked() {
	if s.winner != "" || s.cfg.WinThreshold <= 0 {
		return
	}
	switch {
	case s.mainRound.Team1.Score >= s.cfg.WinThreshold:
		s.winner = s.mainRound.Team1.Name
	case s.mainRound.Team2.Score >= s.cfg.WinThreshold:
		s.winner = s.mainRound.Team2.Name
	}
}

func (s *Session) SetActiveTeam(ctx context.Context, team int) Snapshot {
	cue := game.CueNone
	if team == 1 || team == 2 {
		cue = game.CueForAction(game.ActionBuzzIn)
	}
	snapshot, _ := s.apply(ctx, cue, func() error {
		s.mainRound = s.mainRound.SetActiveTeam(team)
		return nil
	})
	return snapshot
}

// ResetGame returns the board to its initial state and clears the winner.
// Custom team names reset too; the host re-applies them if wanted.
func (s *Session) ResetGame(ctx context.Context) Snapshot {
	snapshot, _ := s.apply(ctx, game.CueNone, func() error {
		s.mainRound = s.mainRound.Reset(s.cfg)
		s.winner = ""
		return nil
	})
	return snapshot
}

func (s *Session) UpdateTeamNames(ctx context.Context, name1, name2 string) Snapshot {
	snapshot, _ := s.apply(ctx, game.CueNone, func() error {
		s.mainRound = s.mainRound.UpdateTeamNames(name1, name2)
		return nil
	})
	return snapshot
}

// ShowFastMoney switches the displays between the board round and the fast
// money round.
func (s *Session) ShowFastMoney(ctx context.Context, show bool) Snapshot {
	snapshot, _ := s.apply(ctx, game.CueNone, func() error {
		s.showFastMoney = show
		return nil
	})
	return snapshot
}

// --- fast money ---

// StartPlayer opens a fast money turn and arms the countdown.
func (s *Session) StartPlayer(ctx context.Context, name string) Snapshot {
	snapshot, _ := s.apply(ctx, game.CueForAction(game.ActionStartPlayer), func() error {
		s.fastMoney = s.fastMoney.StartPlayer(name, s.cfg)
		s.armTimerLocked()
		return nil
	})
	return snapshot
}

func (s *Session) SubmitAnswer(ctx context.Context, promptIndex int, text string, manualPoints *int) (Snapshot, error) {
	return s.apply(ctx, game.CueForAction(game.ActionSubmitAnswer), func() error {
		next, err := s.fastMoney.SubmitAnswer(promptIndex, text, manualPoints)
		if err != nil {
			return err
		}
		s.fastMoney = next
		return nil
	})
}

// EndPlayerTurn stops the countdown and forces the revealing phase.
func (s *Session) EndPlayerTurn(ctx context.Context) Snapshot {
	snapshot, _ := s.apply(ctx, game.CueForAction(game.ActionEndRound), func() error {
		s.fastMoney = s.fastMoney.EndPlayerTurn()
		s.disarmTimerLocked()
		return nil
	})
	return snapshot
}

func (s *Session) RevealPoints(ctx context.Context, promptIndex int) (Snapshot, error) {
	return s.apply(ctx, game.CueForAction(game.ActionRevealPoints), func() error {
		next, err := s.fastMoney.RevealPoints(promptIndex)
		if err != nil {
			return err
		}
		s.fastMoney = next
		return nil
	})
}

func (s *Session) RevealBestAnswer(ctx context.Context, promptIndex int) (Snapshot, error) {
	return s.apply(ctx, game.CueForAction(game.ActionRevealBestAnswer), func() error {
		next, err := s.fastMoney.RevealBestAnswer(promptIndex)
		if err != nil {
			return err
		}
		s.fastMoney = next
		return nil
	})
}

func (s *Session) AdjustPoints(ctx context.Context, promptIndex, points int) (Snapshot, error) {
	return s.apply(ctx, game.CueNone, func() error {
		next, err := s.fastMoney.AdjustPoints(promptIndex, points)
		if err != nil {
			return err
		}
		s.fastMoney = next
		return nil
	})
}

func (s *Session) NextPlayer(ctx context.Context) Snapshot {
	snapshot, _ := s.apply(ctx, game.CueNone, func() error {
		s.fastMoney = s.fastMoney.NextPlayer()
		s.disarmTimerLocked()
		return nil
	})
	return snapshot
}

func (s *Session) EndFastMoney(ctx context.Context) Snapshot {
	snapshot, _ := s.apply(ctx, game.CueForAction(game.ActionEndRound), func() error {
		s.fastMoney = s.fastMoney.EndRound()
		s.disarmTimerLocked()
		return nil
	})
	return snapshot
}

func (s *Session) ResetFastMoney(ctx context.Context) Snapshot {
	snapshot, _ := s.apply(ctx, game.CueNone, func() error {
		s.fastMoney = s.fastMoney.Reset(s.cfg)
		s.disarmTimerLocked()
		return nil
	})
	return snapshot
}

// --- countdown ---

// armTimerLocked replaces any running countdown with a fresh one. Callers
// hold s.mu.
func (s *Session) armTimerLocked() {
	s.disarmTimerLocked()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelTimer = cancel
	go func() {
		defer cancel()
		s.runTimer(ctx)
	}()
}

// disarmTimerLocked stops the countdown goroutine. Callers hold s.mu.
func (s *Session) disarmTimerLocked() {
	if s.cancelTimer != nil {
		s.cancelTimer()
		s.cancelTimer = nil
	}
}

// runTimer drives the fast money clock. Each tick re-reads the state under
// the lock, so the goroutine never applies a decision based on a stale
// capture; cancellation or a phase change simply ends the loop.
func (s *Session) runTimer(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.tick(ctx) {
				return
			}
		}
	}
}

// tick applies one countdown step and reports whether the countdown should
// keep running.
func (s *Session) tick(ctx context.Context) bool {
	s.mu.Lock()
	if ctx.Err() != nil || s.fastMoney.Phase != game.PhasePlaying {
		// A cancellation or phase change won the race against this tick; a
		// replacement countdown may already be running for a later turn.
		s.mu.Unlock()
		return false
	}
	s.fastMoney = s.fastMoney.Tick()
	cue := game.CueNone
	stillPlaying := s.fastMoney.Phase == game.PhasePlaying
	switch {
	case !stillPlaying:
		cue = game.CueBuzzer
		s.cancelTimer = nil
	case s.fastMoney.TimeRemaining <= game.LowTimeSeconds:
		cue = game.CueTick
	}
	s.version++
	snapshot := s.snapshotLocked(cue)
	s.mu.Unlock()

	s.replicate(ctx, snapshot)
	return stillPlaying
}

// Close stops the countdown. The session is unusable afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarmTimerLocked()
}
