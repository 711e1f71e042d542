package ai

import (
	"time"

	"liars-roulette/card"
)

// GameView is the read-only projection of the table visible to an AI
// seat. It carries only what a human in the same seat could see.
type GameView struct {
	Hand          []card.Card
	TableRequired card.Card
	// LastPlay is nil when the AI opens the round.
	LastPlay   *PlayInfo
	AliveCount int
}

// PlayInfo is the public shape of the previous play.
type PlayInfo struct {
	OwnerID  string
	Declared int
}

// ActionType 行动类型
type ActionType byte

const (
	ActionPlay      ActionType = 0
	ActionChallenge ActionType = 1
	ActionJudgment  ActionType = 2
)

// Decision is what a BrainDecider returns.
type Decision struct {
	Action ActionType
	// Indices selects hand positions for ActionPlay.
	Indices []int
}

// BrainDecider is the core interface all AI tiers implement.
type BrainDecider interface {
	// Decide is called on the AI's turn: challenge the previous play or
	// play cards of its own.
	Decide(view GameView) Decision
	// ShouldJudge is polled off-turn after someone else's play. A true
	// return invokes the king's judgment against that play.
	ShouldJudge(view GameView) bool
	// ThinkDelay returns a fresh simulated thinking time.
	ThinkDelay() time.Duration
	// Name returns a human-readable identifier for debugging.
	Name() string
}
