package ai

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Policy 难度级别
type Policy byte

const (
	PolicyEasy   Policy = 0
	PolicyMedium Policy = 1
	PolicyHard   Policy = 2
)

var PolicyDictionary = map[Policy]string{
	PolicyEasy:   "easy",
	PolicyMedium: "medium",
	PolicyHard:   "hard",
}

func (p Policy) String() string { return PolicyDictionary[p] }

// ParsePolicy maps a client-supplied difficulty string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return PolicyEasy, nil
	case "medium", "":
		return PolicyMedium, nil
	case "hard":
		return PolicyHard, nil
	}
	return PolicyMedium, fmt.Errorf("unknown difficulty %q", s)
}

// totalMatching is how many cards in the full deck satisfy any single
// requirement: six of the suit plus two jokers.
const totalMatching = 8

// RuleBrain makes decisions with tier-dependent heuristics. Easy plays
// and challenges near-randomly, medium counts cards it can see, hard
// reasons about what the rest of the deck can still hold.
type RuleBrain struct {
	policy Policy
	name   string
	rng    *rand.Rand
}

// NewRuleBrain creates a RuleBrain with its own rng stream.
func NewRuleBrain(policy Policy, name string, seed int64) *RuleBrain {
	return &RuleBrain{
		policy: policy,
		name:   name,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (b *RuleBrain) Name() string   { return b.name }
func (b *RuleBrain) Policy() Policy { return b.policy }

// Decide implements BrainDecider.
func (b *RuleBrain) Decide(view GameView) Decision {
	if view.LastPlay != nil && b.shouldChallenge(view) {
		return Decision{Action: ActionChallenge}
	}
	if len(view.Hand) == 0 {
		// Nothing left to play; contest the table instead. An empty hand
		// on-turn implies somebody played after us, so a last play exists.
		return Decision{Action: ActionChallenge}
	}
	return Decision{Action: ActionPlay, Indices: b.pickCards(view)}
}

func (b *RuleBrain) pickCards(view GameView) []int {
	var matching, rest []int
	for i, c := range view.Hand {
		if c.Satisfies(view.TableRequired) {
			matching = append(matching, i)
		} else {
			rest = append(rest, i)
		}
	}

	switch b.policy {
	case PolicyEasy:
		// 1-3 random cards, truthful or not.
		count := 1 + b.rng.Intn(3)
		return b.randomIndices(len(view.Hand), count)

	case PolicyMedium:
		// Prefer truthful cards, pad with bluffs when short.
		count := 1 + b.rng.Intn(2)
		if len(matching) >= count {
			return matching[:count]
		}
		picked := append([]int(nil), matching...)
		need := count - len(matching)
		if need > len(rest) {
			need = len(rest)
		}
		return append(picked, rest[:need]...)

	default: // PolicyHard
		switch {
		case len(matching) >= 3:
			count := 2 + b.rng.Intn(2)
			return matching[:count]
		case len(matching) > 0:
			return append([]int(nil), matching...)
		default:
			// No truthful option: single-card bluff.
			return []int{rest[0]}
		}
	}
}

func (b *RuleBrain) shouldChallenge(view GameView) bool {
	declared := view.LastPlay.Declared

	switch b.policy {
	case PolicyEasy:
		return b.rng.Float64() < 0.2

	case PolicyMedium:
		if declared >= 3 {
			return b.rng.Float64() < 0.5
		}
		return b.rng.Float64() < 0.2

	default: // PolicyHard
		remaining := totalMatching - countMatching(view)
		if declared > remaining {
			// They claim more satisfying cards than exist outside our hand.
			return true
		}
		p := float64(declared) / float64(remaining)
		if p > 0.8 {
			p = 0.8
		}
		return b.rng.Float64() < p
	}
}

// ShouldJudge implements BrainDecider. Only the hard tier risks the
// two-pull penalty, and only when near-certain of a bluff.
func (b *RuleBrain) ShouldJudge(view GameView) bool {
	if b.policy != PolicyHard || view.LastPlay == nil {
		return false
	}
	declared := view.LastPlay.Declared
	remaining := totalMatching - countMatching(view)
	if declared >= 4 && float64(declared) > float64(remaining)*0.7 {
		return b.rng.Float64() < 0.3
	}
	return false
}

// ThinkDelay implements BrainDecider. Harder tiers "think" longer.
func (b *RuleBrain) ThinkDelay() time.Duration {
	var base, spread time.Duration
	switch b.policy {
	case PolicyEasy:
		base, spread = time.Second, time.Second
	case PolicyMedium:
		base, spread = 1500*time.Millisecond, 1500*time.Millisecond
	default:
		base, spread = 2*time.Second, 2*time.Second
	}
	return base + time.Duration(b.rng.Int63n(int64(spread)))
}

func (b *RuleBrain) randomIndices(max, count int) []int {
	if count > max {
		count = max
	}
	picked := b.rng.Perm(max)[:count]
	return picked
}

func countMatching(view GameView) int {
	n := 0
	for _, c := range view.Hand {
		if c.Satisfies(view.TableRequired) {
			n++
		}
	}
	return n
}
