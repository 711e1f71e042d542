package game

import "liars-roulette/card"

type Player struct {
	ID   string
	Name string
	AI   bool

	hand  card.CardList
	alive bool
	host  bool

	// chamberPos is the hidden pull count at which the revolver fires
	// for the current loaded cycle. Never exposed in any projection.
	chamberPos int
	shotsFired int
}

func (p *Player) Alive() bool  { return p.alive }
func (p *Player) IsHost() bool { return p.host }
func (p *Player) IsAI() bool   { return p.AI }

func (p *Player) Hand() card.CardList { return p.hand }
func (p *Player) HandCount() int      { return len(p.hand) }

func (p *Player) ShotsFired() int { return p.shotsFired }

// reload spins a fresh cylinder: new hidden chamber, zero shots.
func (p *Player) reload(randChamber func() int) {
	p.chamberPos = randChamber()
	p.shotsFired = 0
}

func (p *Player) resetForNewRound() {
	p.hand = p.hand[:0]
}
