package game

import "time"

// Config carries the tunables that the game engines and the session
// scheduler read. It replaces ambient globals so that tests and the host
// can run with their own thresholds and timers.
type Config struct {
	// WinThreshold is the score a team has to reach before the session
	// declares a winner. The engines themselves never read it.
	WinThreshold int
	// Player1Seconds is the fast money clock for the first player.
	Player1Seconds int
	// Player2Seconds is the fast money clock for the second player. It is
	// longer because duplicate answers have to be called out live.
	Player2Seconds int
	// TickInterval is how often the fast money clock decrements. One second
	// in production, shortened in tests.
	TickInterval time.Duration

	Team1Name  string
	Team2Name  string
	Team1Color string
	Team2Color string
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		WinThreshold:   200,
		Player1Seconds: 45,
		Player2Seconds: 60,
		TickInterval:   time.Second,
		Team1Name:      "Team 1",
		Team2Name:      "Team 2",
		Team1Color:     "from-red-600 to-red-800",
		Team2Color:     "from-blue-600 to-blue-800",
	}
}
