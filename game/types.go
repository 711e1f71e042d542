package game

import "liars-roulette/card"

// State 游戏阶段
type State byte

const (
	StateLobby    State = 0
	StatePlaying  State = 1
	StateRoulette State = 2
	StateGameOver State = 3
)

var StateDictionary = map[State]string{
	StateLobby:    "lobby",
	StatePlaying:  "playing",
	StateRoulette: "roulette",
	StateGameOver: "gameover",
}

func (s State) String() string { return StateDictionary[s] }

// ChamberSize 弹巢容量
const ChamberSize = 6

// LastPlay is the most recent declared play of the current round. The
// actual cards stay hidden from everyone until Revealed flips on a
// challenge or judgment.
type LastPlay struct {
	OwnerID  string
	Declared int
	Actual   card.CardList
	Revealed bool
}

// Verdict is the outcome of a challenge or king's judgment.
type Verdict struct {
	IsLie         bool
	AccuserID     string
	OwnerID       string
	VictimID      string
	RequiredShots int
	Actual        []card.Card
}

// ShotResult is the outcome of a single trigger pull.
type ShotResult struct {
	VictimID string
	Shot     int // position within the current sequence (1-based)
	Dead     bool
	// Done means the revolver sequence is resolved: either the victim
	// died, or they survived all required pulls.
	Done bool
	// PreserveRequirement tells the caller whether the next round keeps
	// the current table requirement (survived sequence) or redraws it.
	PreserveRequirement bool
	GameOver            bool
	WinnerName          string
}

// LeaveOutcome describes everything a departure changed, so the caller
// can fan out the right notifications.
type LeaveOutcome struct {
	Removed    bool
	WasHost    bool
	NewHostID  string
	EmptyReset bool
	GameOver   bool
	WinnerName string
	// RoundRestarted is set when the departure invalidated the round in
	// progress (the roulette victim or last-play owner left).
	RoundRestarted bool
}

// IsLie reports whether a declared play was a bluff: true iff at least
// one card is neither the table requirement nor the joker.
func IsLie(actual []card.Card, req card.Card) bool {
	for _, c := range actual {
		if !c.Satisfies(req) {
			return true
		}
	}
	return false
}
