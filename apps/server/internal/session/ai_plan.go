package session

import (
	"time"

	"liars-roulette/game"
	"liars-roulette/game/ai"

	"go.uber.org/zap"
)

// planAIMovesLocked inspects the acting seat after a mutation and, if
// it belongs to an AI, decides its move now and schedules the delivery
// after a think delay. Exactly one plan is made per engine generation;
// the delivered event carries that generation and is dropped if the
// table moved on. All brain calls happen on the actor goroutine, so a
// brain's rng is never touched concurrently.
func (s *Session) planAIMovesLocked() {
	snap := s.game.Snapshot()
	if snap.Generation == s.aiPlanGen {
		return
	}
	s.aiPlanGen = snap.Generation

	switch snap.State {
	case game.StatePlaying:
		s.planPlayingLocked(snap)
	case game.StateRoulette:
		s.planRouletteLocked(snap)
	}
}

func (s *Session) planPlayingLocked(snap game.Snapshot) {
	// An unrevealed play invites the king's judgment from any hard AI
	// watching from off-turn.
	if snap.LastPlay != nil && snap.LastPlay.Actual == nil {
		for _, p := range snap.Players {
			if !p.Alive || !p.AI || p.ID == snap.LastPlay.OwnerID || p.ID == snap.CurrentTurnID {
				continue
			}
			inst := s.ai.Instance(p.ID)
			if inst == nil {
				continue
			}
			if inst.Brain.ShouldJudge(s.buildViewLocked(p.ID, snap)) {
				s.log.Info("AI invokes the king's judgment",
					zap.String("name", inst.Name), zap.String("owner", snap.LastPlay.OwnerID))
				s.deliverAILocked(inst, Event{
					Type:     EventKingJudgment,
					PlayerID: p.ID,
					Gen:      snap.Generation,
				})
				return
			}
		}
	}

	inst := s.ai.Instance(snap.CurrentTurnID)
	if inst == nil {
		return
	}
	view := s.buildViewLocked(inst.PlayerID, snap)

	e := Event{PlayerID: inst.PlayerID, Gen: snap.Generation}
	if view.LastPlay != nil && inst.Brain.ShouldJudge(view) {
		e.Type = EventKingJudgment
	} else {
		switch d := inst.Brain.Decide(view); d.Action {
		case ai.ActionChallenge:
			e.Type = EventChallenge
		case ai.ActionJudgment:
			e.Type = EventKingJudgment
		default:
			e.Type = EventPlayCards
			e.Indices = d.Indices
		}
	}
	s.deliverAILocked(inst, e)
}

func (s *Session) planRouletteLocked(snap game.Snapshot) {
	if snap.RouletteDone || !s.pendingPullAt.IsZero() {
		return
	}
	inst := s.ai.Instance(snap.VictimID)
	if inst == nil {
		return
	}
	s.deliverAILocked(inst, Event{
		Type:     EventPullTrigger,
		PlayerID: inst.PlayerID,
		Gen:      snap.Generation,
	})
}

// deliverAILocked re-enters the decided event through SubmitEvent after
// the brain's think delay, keeping AI input on the same validation path
// as human input.
func (s *Session) deliverAILocked(inst *ai.Instance, e Event) {
	delay := s.scaleDelay(inst.Brain.ThinkDelay())
	go func() {
		select {
		case <-time.After(delay):
		case <-s.done:
			return
		}
		_ = s.SubmitEvent(e)
	}()
}

func (s *Session) scaleDelay(d time.Duration) time.Duration {
	return time.Duration(float64(d) * s.pacing.ThinkScale)
}

func (s *Session) buildViewLocked(id string, snap game.Snapshot) ai.GameView {
	hand, _ := s.game.Hand(id)
	view := ai.GameView{
		Hand:          hand,
		TableRequired: snap.TableRequired,
	}
	for _, p := range snap.Players {
		if p.Alive {
			view.AliveCount++
		}
	}
	if snap.LastPlay != nil && snap.LastPlay.Actual == nil {
		view.LastPlay = &ai.PlayInfo{
			OwnerID:  snap.LastPlay.OwnerID,
			Declared: snap.LastPlay.Declared,
		}
	}
	return view
}
