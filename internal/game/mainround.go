// Package game holds the two state machines at the heart of barfeud: the
// main board round and the fast money bonus round. Every operation takes
// the current state by value and returns a fresh one, so a returned value
// is safe to publish as a snapshot. The engines know nothing about
// transport, rendering, or the win threshold; those live with the session
// layer.
package game

// MaxStrikes is the strike cap for the main round.
const MaxStrikes = 3

// Answer is one cell on the board. Revealed flips to true exactly once;
// only SelectQuestion resets it.
type Answer struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Points   int    `json:"points"`
	Revealed bool   `json:"revealed"`
}

// Question is immutable once selected except for each answer's Revealed flag.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category string   `json:"category,omitempty"`
	Answers  []Answer `json:"answers"`
}

func (q Question) clone() Question {
	answers := make([]Answer, len(q.Answers))
	copy(answers, q.Answers)
	q.Answers = answers
	return q
}

type Team struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Color string `json:"color"`
}

// MainRoundState is the full state of the board round. ActiveTeam is 1 or 2
// when a team holds the board, 0 otherwise.
type MainRoundState struct {
	CurrentQuestion *Question `json:"currentQuestion"`
	Team1           Team      `json:"team1"`
	Team2           Team      `json:"team2"`
	Strikes         int       `json:"strikes"`
	ActiveTeam      int       `json:"activeTeam"`
}

// NewMainRound returns the initial board state with default team names and
// colors from cfg.
func NewMainRound(cfg Config) MainRoundState {
	return MainRoundState{
		CurrentQuestion: nil,
		Team1:           Team{Name: cfg.Team1Name, Score: 0, Color: cfg.Team1Color},
		Team2:           Team{Name: cfg.Team2Name, Score: 0, Color: cfg.Team2Color},
		Strikes:         0,
		ActiveTeam:      0,
	}
}

func (s MainRoundState) clone() MainRoundState {
	if s.CurrentQuestion != nil {
		q := s.CurrentQuestion.clone()
		s.CurrentQuestion = &q
	}
	return s
}

// SelectQuestion puts a fresh copy of q on the board with every answer
// hidden and the strike counter reset. Selecting the same question twice is
// indistinguishable from selecting it once.
func (s MainRoundState) SelectQuestion(q Question) MainRoundState {
	next := s.clone()
	fresh := q.clone()
	for i := range fresh.Answers {
		fresh.Answers[i].Revealed = false
	}
	next.CurrentQuestion = &fresh
	next.Strikes = 0
	return next
}

// RevealAnswer flips the answer with the given id. Revealing an already
// revealed answer, or revealing with no question on the board, is a
// harmless host click and leaves the state unchanged.
func (s MainRoundState) RevealAnswer(answerID int) MainRoundState {
	if s.CurrentQuestion == nil {
		return s
	}
	next := s.clone()
	for i := range next.CurrentQuestion.Answers {
		if next.CurrentQuestion.Answers[i].ID == answerID {
			next.CurrentQuestion.Answers[i].Revealed = true
		}
	}
	return next
}

// AddStrike increments the strike counter, capped at MaxStrikes.
func (s MainRoundState) AddStrike() MainRoundState {
	next := s.clone()
	if next.Strikes < MaxStrikes {
		next.Strikes++
	}
	return next
}

// ResetStrikes clears the strike counter.
func (s MainRoundState) ResetStrikes() MainRoundState {
	next := s.clone()
	next.Strikes = 0
	return next
}

// RevealedPoints sums the points of all revealed answers on the board.
func (s MainRoundState) RevealedPoints() int {
	if s.CurrentQuestion == nil {
		return 0
	}
	sum := 0
	for _, a := range s.CurrentQuestion.Answers {
		if a.Revealed {
			sum += a.Points
		}
	}
	return sum
}

// AwardPoints adds the revealed points to the given team's score. It does
// nothing when no question is on the board or team is not 1 or 2. There is
// no double-award guard: awarding is a deliberate host action.
func (s MainRoundState) AwardPoints(team int) MainRoundState {
	if s.CurrentQuestion == nil {
		return s
	}
	points := s.RevealedPoints()
	next := s.clone()
	switch team {
	case 1:
		next.Team1.Score += points
	case 2:
		next.Team2.Score += points
	}
	return next
}

// SetActiveTeam records which team holds the board; 0 clears it.
func (s MainRoundState) SetActiveTeam(team int) MainRoundState {
	next := s.clone()
	if team == 1 || team == 2 {
		next.ActiveTeam = team
	} else {
		next.ActiveTeam = 0
	}
	return next
}

// Reset returns the initial state. Custom team names are lost; callers that
// want to keep them re-apply with UpdateTeamNames.
func (s MainRoundState) Reset(cfg Config) MainRoundState {
	return NewMainRound(cfg)
}

// UpdateTeamNames overwrites either team's display name, leaving scores
// untouched. An empty name leaves that team as is.
func (s MainRoundState) UpdateTeamNames(name1, name2 string) MainRoundState {
	next := s.clone()
	if name1 != "" {
		next.Team1.Name = name1
	}
	if name2 != "" {
		next.Team2.Name = name2
	}
	return next
}
