package game

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"liars-roulette/card"
)

// Game is the authoritative session state machine. Every externally or
// internally triggered action goes through one of the exported methods;
// the mutex keeps each of them atomic. Components above this package
// (the orchestrator, AI manager) never reach into the state directly.
type Game struct {
	cfg Config
	rng *rand.Rand

	mu sync.Mutex

	state State
	// Seating order is join order, fixed at Start; departing players are
	// spliced out, eliminated players stay in their seats.
	players   []*Player
	turnIndex int
	round     uint16

	tableReq card.Card
	deck     card.CardList
	lastPlay *LastPlay

	challengerID  string
	victimID      string
	requiredShots int
	currentShot   int
	// rouletteResolved flips once the sequence produced a death or the
	// victim survived all required pulls; NextRound requires it.
	rouletteResolved bool

	lastDeadName string
	winnerName   string

	// generation bumps on every successful mutation. Delayed callbacks
	// capture it and no-op when it moved on.
	generation uint64
}

func New(cfg Config) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		state: StateLobby,
	}, nil
}

func (g *Game) Generation() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generation
}

// Join seats a new player. Lobby only; the first joiner becomes host.
func (g *Game) Join(id, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateLobby {
		return ErrGameInProgress
	}
	if len(g.players) >= g.cfg.MaxSeats {
		return ErrTableFull
	}
	if g.findLocked(id) != nil {
		return ErrBadSelection
	}
	p := &Player{
		ID:    id,
		Name:  name,
		alive: true,
		host:  len(g.players) == 0,
	}
	p.reload(g.randChamber)
	g.players = append(g.players, p)
	g.generation++
	return nil
}

// AddAI seats an AI player. Host only, Lobby only, capped at MaxSeats.
func (g *Game) AddAI(hostID, id, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireHostLocked(hostID); err != nil {
		return err
	}
	if g.state != StateLobby {
		return ErrGameInProgress
	}
	if len(g.players) >= g.cfg.MaxSeats {
		return ErrTableFull
	}
	p := &Player{
		ID:    id,
		Name:  name,
		AI:    true,
		alive: true,
	}
	p.reload(g.randChamber)
	g.players = append(g.players, p)
	g.generation++
	return nil
}

// RemoveAI removes the most recently added AI seat and returns its id.
func (g *Game) RemoveAI(hostID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireHostLocked(hostID); err != nil {
		return "", err
	}
	if g.state != StateLobby {
		return "", ErrGameInProgress
	}
	for i := len(g.players) - 1; i >= 0; i-- {
		if g.players[i].AI {
			id := g.players[i].ID
			g.players = append(g.players[:i], g.players[i+1:]...)
			g.generation++
			return id, nil
		}
	}
	return "", ErrUnknownSeat
}

// Start fixes the seating order and begins round 1.
func (g *Game) Start(hostID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireHostLocked(hostID); err != nil {
		return err
	}
	if g.state != StateLobby {
		return ErrGameInProgress
	}
	if len(g.players) < g.cfg.MinSeats {
		return ErrInvalidState("not enough players")
	}
	g.turnIndex = 0
	g.round = 0
	g.startRoundLocked(false)
	g.generation++
	return nil
}

// PlayCards removes the selected hand indices (high to low) and records
// them as the unrevealed last play. The engine does not check the cards
// against the table requirement: bluffing is legal until challenged.
func (g *Game) PlayCards(id string, indices []int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StatePlaying {
		return ErrWrongState
	}
	p := g.currentLocked()
	if p == nil || p.ID != id {
		return ErrOutOfTurn
	}
	if len(indices) == 0 {
		return ErrEmptyPlay
	}

	sel := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sel)))
	for i, idx := range sel {
		if idx < 0 || idx >= p.HandCount() {
			return ErrBadSelection
		}
		if i > 0 && sel[i-1] == idx {
			return ErrBadSelection
		}
	}

	var played card.CardList
	for _, idx := range sel {
		played.Add(p.hand.RemoveAt(idx))
	}

	g.lastPlay = &LastPlay{
		OwnerID:  id,
		Declared: played.Count(),
		Actual:   played,
	}
	g.turnIndex = nextAlive(g.players, g.turnIndex)
	g.generation++
	return nil
}

// Challenge is the current-turn player accusing the previous play.
func (g *Game) Challenge(id string) (*Verdict, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StatePlaying {
		return nil, ErrWrongState
	}
	if g.lastPlay == nil {
		return nil, ErrNoLastPlay
	}
	p := g.currentLocked()
	if p == nil || p.ID != id {
		return nil, ErrOutOfTurn
	}
	return g.adjudicateLocked(id, 1)
}

// KingJudgment is the high-stakes accusation: any alive player except
// the play's owner, with a two-pull penalty for the loser.
func (g *Game) KingJudgment(id string) (*Verdict, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StatePlaying {
		return nil, ErrWrongState
	}
	if g.lastPlay == nil {
		return nil, ErrNoLastPlay
	}
	p := g.findLocked(id)
	if p == nil {
		return nil, ErrUnknownSeat
	}
	if !p.alive {
		return nil, ErrNotAlive
	}
	if id == g.lastPlay.OwnerID {
		return nil, ErrOutOfTurn
	}
	return g.adjudicateLocked(id, 2)
}

func (g *Game) adjudicateLocked(accuserID string, shots int) (*Verdict, error) {
	owner := g.findLocked(g.lastPlay.OwnerID)
	if owner == nil {
		return nil, ErrNoLastPlay
	}
	isLie := IsLie(g.lastPlay.Actual, g.tableReq)
	g.lastPlay.Revealed = true

	victim := owner
	if !isLie {
		// Failed accusation costs the accuser.
		victim = g.findLocked(accuserID)
		if victim == nil {
			return nil, ErrUnknownSeat
		}
	}

	// A full cylinder must be re-spun before the victim pulls again.
	if victim.shotsFired >= ChamberSize {
		victim.reload(g.randChamber)
	}

	g.challengerID = accuserID
	g.victimID = victim.ID
	g.requiredShots = shots
	g.currentShot = 0
	g.rouletteResolved = false
	g.state = StateRoulette
	g.generation++

	return &Verdict{
		IsLie:         isLie,
		AccuserID:     accuserID,
		OwnerID:       owner.ID,
		VictimID:      victim.ID,
		RequiredShots: shots,
		Actual:        g.lastPlay.Actual.Clone(),
	}, nil
}

// PullTrigger fires one pull for the designated victim. Death is
// deterministic given the hidden chamber position: it triggers exactly
// when shotsFired reaches it.
func (g *Game) PullTrigger(id string) (*ShotResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateRoulette || g.rouletteResolved {
		return nil, ErrWrongState
	}
	if id != g.victimID {
		return nil, ErrNotVictim
	}
	victim := g.findLocked(id)
	if victim == nil {
		return nil, ErrUnknownSeat
	}

	victim.shotsFired++
	g.currentShot++
	res := &ShotResult{
		VictimID: id,
		Shot:     g.currentShot,
		Dead:     victim.shotsFired == victim.chamberPos,
	}

	switch {
	case res.Dead:
		victim.alive = false
		victim.reload(g.randChamber)
		g.lastDeadName = victim.Name
		g.rouletteResolved = true
		res.Done = true
		if g.aliveCountLocked() < 2 {
			g.gameOverLocked()
			res.GameOver = true
			res.WinnerName = g.winnerName
		}
	case g.currentShot >= g.requiredShots:
		// Survived the whole sequence: fresh chamber, and the next round
		// is a redo of the same table requirement. A filled cylinder
		// resets completely instead of keeping its shot count.
		if victim.shotsFired >= ChamberSize {
			victim.reload(g.randChamber)
		} else {
			victim.chamberPos = g.randChamber()
		}
		g.rouletteResolved = true
		res.Done = true
		res.PreserveRequirement = true
	default:
		// Mid-sequence survival on the last chamber: reload before the
		// next pull so shotsFired never passes the cylinder size.
		if victim.shotsFired >= ChamberSize {
			victim.reload(g.randChamber)
		}
	}

	g.generation++
	return res, nil
}

// NextRound discards the finished round and deals a new one. Valid only
// after a resolved revolver sequence; the orchestrator calls it from a
// delayed transition.
func (g *Game) NextRound(preserveRequirement bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateRoulette || !g.rouletteResolved {
		return ErrWrongState
	}
	g.startRoundLocked(preserveRequirement)
	g.generation++
	return nil
}

// ResetToLobby returns a finished session to the lobby, keeping the
// seats. Valid only in GameOver.
func (g *Game) ResetToLobby() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateGameOver {
		return ErrWrongState
	}
	g.state = StateLobby
	g.round = 0
	g.turnIndex = 0
	g.deck = nil
	g.lastPlay = nil
	g.challengerID = ""
	g.victimID = ""
	g.requiredShots = 0
	g.currentShot = 0
	g.rouletteResolved = false
	g.lastDeadName = ""
	g.winnerName = ""
	for _, p := range g.players {
		p.alive = true
		p.resetForNewRound()
		p.reload(g.randChamber)
	}
	g.generation++
	return nil
}

// Leave removes a departing player in any state. Disconnected players
// are removed from the seating order, never marked dead.
func (g *Game) Leave(id string) LeaveOutcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out LeaveOutcome
	idx := -1
	for i, p := range g.players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return out
	}
	leaving := g.players[idx]
	out.Removed = true
	out.WasHost = leaving.host

	g.players = append(g.players[:idx], g.players[idx+1:]...)
	g.generation++

	if len(g.players) == 0 {
		g.resetEmptyLocked()
		out.EmptyReset = true
		return out
	}

	// Host ownership transfers to the earliest-joined remaining player.
	if out.WasHost {
		g.players[0].host = true
		out.NewHostID = g.players[0].ID
	}

	if g.state == StateLobby || g.state == StateGameOver {
		return out
	}

	// Keep the turn pointer on the seat it was aimed at.
	if idx < g.turnIndex {
		g.turnIndex--
	}
	if g.turnIndex >= len(g.players) {
		g.turnIndex = 0
	}

	if g.aliveCountLocked() < 2 {
		g.gameOverLocked()
		out.GameOver = true
		out.WinnerName = g.winnerName
		return out
	}

	if g.lastPlay != nil && g.lastPlay.OwnerID == id {
		// Nothing left to contest once the owner is gone.
		g.lastPlay = nil
	}

	if g.state == StateRoulette && g.victimID == id {
		// The victim walked away from the table; redo the round.
		g.startRoundLocked(false)
		out.RoundRestarted = true
		return out
	}

	if g.state == StatePlaying && !g.players[g.turnIndex].alive {
		g.turnIndex = nextAlive(g.players, g.turnIndex)
	}
	return out
}

func (g *Game) startRoundLocked(preserveRequirement bool) {
	if g.aliveCountLocked() < 2 {
		g.gameOverLocked()
		return
	}

	g.state = StatePlaying
	g.round++
	g.lastPlay = nil
	g.challengerID = ""
	g.victimID = ""
	g.requiredShots = 0
	g.currentShot = 0
	g.rouletteResolved = false
	g.lastDeadName = ""

	g.deck = card.NewDeck(g.rng)
	for _, p := range g.players {
		if !p.alive {
			continue
		}
		p.resetForNewRound()
		want := g.cfg.HandSize
		if want > g.deck.Count() {
			want = g.deck.Count()
		}
		if cards, ok := g.deck.PopCards(want); ok {
			p.hand.Add(cards...)
		}
	}

	if !preserveRequirement || !g.tableReq.Suited() {
		g.tableReq = card.Suits[g.rng.Intn(len(card.Suits))]
	}

	// The opener must hold cards: a truncated deal leaves late seats
	// empty, and an empty seat has nothing to open with and nothing to
	// contest.
	if cur := g.players[g.turnIndex]; !cur.alive || cur.HandCount() == 0 {
		g.turnIndex = nextHolding(g.players, g.turnIndex)
	}
}

func (g *Game) gameOverLocked() {
	g.state = StateGameOver
	g.winnerName = ""
	for _, p := range g.players {
		if p.alive {
			g.winnerName = p.Name
			break
		}
	}
}

func (g *Game) resetEmptyLocked() {
	g.state = StateLobby
	g.players = nil
	g.turnIndex = 0
	g.round = 0
	g.deck = nil
	g.lastPlay = nil
	g.challengerID = ""
	g.victimID = ""
	g.requiredShots = 0
	g.currentShot = 0
	g.rouletteResolved = false
	g.lastDeadName = ""
	g.winnerName = ""
}

func (g *Game) requireHostLocked(id string) error {
	p := g.findLocked(id)
	if p == nil {
		return ErrUnknownSeat
	}
	if !p.host {
		return ErrNotHost
	}
	return nil
}

func (g *Game) findLocked(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *Game) currentLocked() *Player {
	if g.turnIndex < 0 || g.turnIndex >= len(g.players) {
		return nil
	}
	return g.players[g.turnIndex]
}

func (g *Game) aliveCountLocked() int {
	n := 0
	for _, p := range g.players {
		if p.alive {
			n++
		}
	}
	return n
}

func (g *Game) randChamber() int {
	return 1 + g.rng.Intn(ChamberSize)
}

// nextAlive advances circularly from fromIndex, skipping dead seats. It
// returns fromIndex unchanged when no alive seat exists within one full
// lap, guarding against an infinite walk over an all-dead table.
func nextAlive(players []*Player, fromIndex int) int {
	n := len(players)
	if n == 0 {
		return fromIndex
	}
	idx := fromIndex
	for i := 0; i < n; i++ {
		idx = (idx + 1) % n
		if players[idx].alive {
			return idx
		}
	}
	return fromIndex
}

// nextHolding advances like nextAlive but also skips seats holding no
// cards. Used for the round opener only; mid-round an emptied seat may
// still challenge.
func nextHolding(players []*Player, fromIndex int) int {
	n := len(players)
	if n == 0 {
		return fromIndex
	}
	idx := fromIndex
	for i := 0; i < n; i++ {
		idx = (idx + 1) % n
		if players[idx].alive && players[idx].HandCount() > 0 {
			return idx
		}
	}
	return fromIndex
}
