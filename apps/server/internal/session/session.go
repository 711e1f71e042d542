package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"liars-roulette/apps/server/internal/history"
	"liars-roulette/game"
	"liars-roulette/game/ai"

	"go.uber.org/zap"
)

// Event types for the actor message queue.
type EventType int

const (
	EventJoin EventType = iota
	EventAddAI
	EventRemoveAI
	EventStartGame
	EventPlayCards
	EventChallenge
	EventKingJudgment
	EventPullTrigger
	EventLeave
	EventClose
)

// Event represents a message to the session actor.
type Event struct {
	Type       EventType
	PlayerID   string
	Name       string
	Difficulty string
	Indices    []int
	// Gen is the engine generation an AI decision was planned against.
	// Zero means unconditional (human input). A non-zero mismatch at
	// delivery time means the table moved on and the event is dropped.
	Gen      uint64
	Response chan error
}

var ErrSessionClosed = errors.New("session closed")

// Pacing controls the staged delays around the revolver and round
// transitions. Overridable so tests can run at full speed.
type Pacing struct {
	ShotSuspense   time.Duration
	DeathRestart   time.Duration
	SurviveRestart time.Duration
	LobbyReturn    time.Duration
	// ThinkScale multiplies AI think delays (1.0 = natural pace).
	ThinkScale float64
}

func DefaultPacing() Pacing {
	return Pacing{
		ShotSuspense:   time.Second,
		DeathRestart:   3 * time.Second,
		SurviveRestart: 2 * time.Second,
		LobbyReturn:    5 * time.Second,
		ThinkScale:     1.0,
	}
}

// Config wires a session's collaborators together.
type Config struct {
	Game    game.Config
	Pacing  Pacing
	History history.Service
	// Send delivers a frame to one connected player; unknown IDs are a
	// no-op (AI seats have no connection).
	Send func(playerID string, data []byte)
	// Broadcast delivers a frame to every connection.
	Broadcast func(data []byte)
	AISeed    int64
}

// Session is the single game room, run as an actor: all engine
// mutations happen on the run goroutine, fed by the event channel.
type Session struct {
	mu sync.RWMutex

	game    *game.Game
	gameCfg game.Config
	ai      *ai.Manager
	history history.Service
	pacing  Pacing

	send      func(playerID string, data []byte)
	broadcast func(data []byte)

	events   chan Event
	done     chan struct{}
	closed   bool
	stopOnce sync.Once

	serverSeq uint64

	// Delayed transitions, fired from tick. Each one re-validates
	// against the engine when due; pendingPull additionally carries the
	// generation it was armed against.
	pendingPullAt     time.Time
	pendingPullVictim string
	pendingPullGen    uint64

	nextRoundAt       time.Time
	nextRoundPreserve bool

	lobbyResetAt time.Time

	// aiPlanGen is the last engine generation AI turns were planned
	// for; one plan per state version.
	aiPlanGen uint64

	startedAt    time.Time
	eliminations []history.Elimination

	log *zap.Logger
}

// New creates the session and starts its actor goroutine.
func New(cfg Config) (*Session, error) {
	if cfg.Game.MaxSeats == 0 {
		cfg.Game = game.DefaultConfig()
	}
	g, err := game.New(cfg.Game)
	if err != nil {
		return nil, err
	}
	if cfg.Pacing.ThinkScale == 0 {
		cfg.Pacing = DefaultPacing()
	}
	hist := cfg.History
	if hist == nil {
		hist = history.NewNoopService()
	}
	s := &Session{
		game:      g,
		gameCfg:   cfg.Game,
		ai:        ai.NewManager(cfg.AISeed),
		history:   hist,
		pacing:    cfg.Pacing,
		send:      cfg.Send,
		broadcast: cfg.Broadcast,
		events:    make(chan Event, 256),
		done:      make(chan struct{}),
		log:       zap.L().Named("session"),
	}
	go s.run()
	return s, nil
}

// SubmitEvent sends an event to the actor and waits for the result.
func (s *Session) SubmitEvent(e Event) error {
	if e.Response == nil {
		e.Response = make(chan error, 1)
	}

	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrSessionClosed
	}

	select {
	case s.events <- e:
	case <-s.done:
		return ErrSessionClosed
	}

	select {
	case err := <-e.Response:
		return err
	case <-s.done:
		return ErrSessionClosed
	}
}

// Stop shuts down the session actor.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Session) stopLocked() {
	s.closed = true
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

// Snapshot exposes the engine projection for diagnostics and tests.
func (s *Session) Snapshot() game.Snapshot {
	return s.game.Snapshot()
}

// run is the main actor loop.
func (s *Session) run() {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case event := <-s.events:
			err := s.handleEvent(event)
			if event.Response != nil {
				event.Response <- err
			}
		case <-ticker.C:
			s.tick()
		case <-s.done:
			s.log.Info("session actor stopped")
			return
		}
	}
}

func (s *Session) handleEvent(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed && e.Type != EventClose {
		return ErrSessionClosed
	}

	// Stale AI decision: the table changed while the brain was thinking.
	if e.Gen != 0 && e.Gen != s.game.Generation() {
		s.log.Debug("dropping stale AI event",
			zap.String("player", e.PlayerID),
			zap.Uint64("plannedGen", e.Gen))
		return nil
	}

	var err error
	switch e.Type {
	case EventJoin:
		err = s.handleJoin(e.PlayerID, e.Name)
	case EventAddAI:
		err = s.handleAddAI(e.PlayerID, e.Difficulty)
	case EventRemoveAI:
		err = s.handleRemoveAI(e.PlayerID)
	case EventStartGame:
		err = s.handleStartGame(e.PlayerID)
	case EventPlayCards:
		err = s.handlePlayCards(e.PlayerID, e.Indices)
	case EventChallenge:
		err = s.handleChallenge(e.PlayerID)
	case EventKingJudgment:
		err = s.handleKingJudgment(e.PlayerID)
	case EventPullTrigger:
		err = s.handlePullTrigger(e.PlayerID)
	case EventLeave:
		err = s.handleLeave(e.PlayerID)
	case EventClose:
		s.stopLocked()
		return nil
	default:
		return fmt.Errorf("unknown event type: %d", e.Type)
	}

	// A planned AI move the engine refused would otherwise stall its
	// seat forever: the generation did not move, so no new plan would be
	// made. Plan afresh instead.
	if err != nil && e.Gen != 0 {
		s.log.Warn("AI move refused, replanning",
			zap.String("player", e.PlayerID), zap.Error(err))
		s.aiPlanGen = 0
		s.planAIMovesLocked()
	}
	return err
}

// tick drives the delayed transitions. Every fire re-validates against
// the engine's current state so a transition armed for a dead world is
// simply refused.
func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	now := time.Now()

	if !s.pendingPullAt.IsZero() && !now.Before(s.pendingPullAt) {
		victim, gen := s.pendingPullVictim, s.pendingPullGen
		s.clearPendingPullLocked()
		if gen == s.game.Generation() {
			res, err := s.game.PullTrigger(victim)
			if err != nil {
				s.log.Warn("delayed pull refused", zap.String("victim", victim), zap.Error(err))
			} else {
				s.resolveShotLocked(res)
			}
		}
	}

	if !s.nextRoundAt.IsZero() && !now.Before(s.nextRoundAt) {
		preserve := s.nextRoundPreserve
		s.nextRoundAt = time.Time{}
		if err := s.game.NextRound(preserve); err == nil {
			s.broadcastStateLocked(s.roundStartLogLocked())
			s.planAIMovesLocked()
		}
	}

	if !s.lobbyResetAt.IsZero() && !now.Before(s.lobbyResetAt) {
		s.lobbyResetAt = time.Time{}
		if err := s.game.ResetToLobby(); err == nil {
			s.broadcastLobbyLocked()
			s.broadcastStateLocked("Back to the lobby. The host can start a new game.")
		}
	}
}

func (s *Session) clearPendingPullLocked() {
	s.pendingPullAt = time.Time{}
	s.pendingPullVictim = ""
	s.pendingPullGen = 0
}

func (s *Session) clearTimersLocked() {
	s.clearPendingPullLocked()
	s.nextRoundAt = time.Time{}
	s.lobbyResetAt = time.Time{}
}

func (s *Session) nextSeq() uint64 {
	s.serverSeq++
	return s.serverSeq
}
