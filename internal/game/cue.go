package game

// Cue names a sound effect the display layer may play for a transition.
// The engines only name cues; playback belongs to the clients.
type Cue string

const (
	CueNone     Cue = ""
	CueBuzzer   Cue = "buzzer"
	CueCorrect  Cue = "correct"
	CueWrong    Cue = "wrong"
	CueStrike   Cue = "strike"
	CueReveal   Cue = "reveal"
	CueVictory  Cue = "victory"
	CueApplause Cue = "applause"
	CueTheme    Cue = "theme"
	CueTick     Cue = "tick"
)

// LowTimeSeconds is the countdown mark at which displays start playing the
// tick warning.
const LowTimeSeconds = 5

// Action identifies a host operation for cue lookup.
type Action string

const (
	ActionSelectQuestion   Action = "select-question"
	ActionRevealAnswer     Action = "reveal-answer"
	ActionAddStrike        Action = "add-strike"
	ActionAwardPoints      Action = "award-points"
	ActionBuzzIn           Action = "buzz-in"
	ActionDeclareWinner    Action = "declare-winner"
	ActionStartPlayer      Action = "start-player"
	ActionSubmitAnswer     Action = "submit-answer"
	ActionRevealPoints     Action = "reveal-points"
	ActionRevealBestAnswer Action = "reveal-best-answer"
	ActionEndRound         Action = "end-round"
)

var actionCues = map[Action]Cue{
	ActionSelectQuestion:   CueTheme,
	ActionRevealAnswer:     CueCorrect,
	ActionAddStrike:        CueStrike,
	ActionAwardPoints:      CueApplause,
	ActionBuzzIn:           CueBuzzer,
	ActionDeclareWinner:    CueVictory,
	ActionStartPlayer:      CueTheme,
	ActionSubmitAnswer:     CueReveal,
	ActionRevealPoints:     CueReveal,
	ActionRevealBestAnswer: CueCorrect,
	ActionEndRound:         CueApplause,
}

// CueForAction maps a host action to the sound cue the display should play.
// Actions without a cue return CueNone.
func CueForAction(action Action) Cue {
	return actionCues[action]
}
