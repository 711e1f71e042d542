package game

import "liars-roulette/card"

// PlayerView is the public projection of a seat. Hands and chamber
// positions are deliberately absent: hands go out per-player through
// Hand, chamber positions never leave the engine.
type PlayerView struct {
	ID         string
	Name       string
	AI         bool
	Host       bool
	Alive      bool
	HandCount  int
	ShotsFired int
}

// PlayView is the table's last play as everyone may see it. Actual is
// nil until an accusation revealed the cards.
type PlayView struct {
	OwnerID  string
	Declared int
	Actual   []card.Card
}

// Snapshot is a consistent copy of everything broadcastable.
type Snapshot struct {
	State         State
	Round         uint16
	TableRequired card.Card
	Players       []PlayerView
	TurnIndex     int
	CurrentTurnID string
	LastPlay      *PlayView
	ChallengerID  string
	VictimID      string
	RequiredShots int
	CurrentShot   int
	// RouletteDone is true once the current revolver sequence resolved
	// and the table is waiting on a round transition.
	RouletteDone  bool
	LastDeadName  string
	WinnerName    string
	Generation    uint64
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := Snapshot{
		State:         g.state,
		Round:         g.round,
		TableRequired: g.tableReq,
		TurnIndex:     g.turnIndex,
		ChallengerID:  g.challengerID,
		VictimID:      g.victimID,
		RequiredShots: g.requiredShots,
		CurrentShot:   g.currentShot,
		RouletteDone:  g.rouletteResolved,
		LastDeadName:  g.lastDeadName,
		WinnerName:    g.winnerName,
		Generation:    g.generation,
	}
	for _, p := range g.players {
		snap.Players = append(snap.Players, PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			AI:         p.AI,
			Host:       p.host,
			Alive:      p.alive,
			HandCount:  p.HandCount(),
			ShotsFired: p.shotsFired,
		})
	}
	if g.state == StatePlaying {
		if cur := g.currentLocked(); cur != nil {
			snap.CurrentTurnID = cur.ID
		}
	}
	if g.lastPlay != nil {
		pv := &PlayView{
			OwnerID:  g.lastPlay.OwnerID,
			Declared: g.lastPlay.Declared,
		}
		if g.lastPlay.Revealed {
			pv.Actual = g.lastPlay.Actual.Clone()
		}
		snap.LastPlay = pv
	}
	return snap
}

// Hand returns a copy of one player's private hand.
func (g *Game) Hand(id string) ([]card.Card, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.findLocked(id)
	if p == nil {
		return nil, false
	}
	return p.hand.Clone(), true
}
