package session

import (
	"context"
	"time"

	"github.com/jvirtane/barfeud/internal/game"
)

// Snapshot is the combined state handed to the replication and display
// layers after every mutation. It is self-contained: a viewer that receives
// only the latest snapshot can render the whole board.
type Snapshot struct {
	Code          string              `json:"code"`
	Version       int64               `json:"version"`
	MainRound     game.MainRoundState `json:"mainRound"`
	FastMoney     game.FastMoneyState `json:"fastMoney"`
	ShowFastMoney bool                `json:"showFastMoney"`
	// Winner is the winning team's name once a score crosses the win
	// threshold, empty until then. The threshold is session policy; the
	// engines know nothing about it.
	Winner    string    `json:"winner,omitempty"`
	Cue       game.Cue  `json:"cue,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists snapshots keyed by session code so reconnecting viewers
// and a restarted server can pick up the latest state.
type Store interface {
	Save(ctx context.Context, snapshot Snapshot) error
}

// Sink receives snapshots for live fan-out to connected displays.
type Sink interface {
	Publish(code string, snapshot Snapshot)
	Drop(code string)
}
