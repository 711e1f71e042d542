package session

import (
	"fmt"
	"strings"
	"time"

	"liars-roulette/apps/server/internal/codec"
	"liars-roulette/apps/server/internal/history"
	"liars-roulette/game"
	"liars-roulette/game/ai"

	"go.uber.org/zap"
)

func (s *Session) handleJoin(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Player%d", len(s.game.Snapshot().Players)+1)
	}
	if err := s.game.Join(id, name); err != nil {
		switch err {
		case game.ErrGameInProgress:
			s.sendErrorLocked(id, "game in progress, cannot join")
		case game.ErrTableFull:
			s.sendErrorLocked(id, "table is full")
		}
		return err
	}

	s.log.Info("player joined", zap.String("id", id), zap.String("name", name))
	snap := s.game.Snapshot()
	if len(snap.Players) == 1 {
		s.sendHostGrantLocked(id)
	}
	s.broadcastLobbyLocked()
	return nil
}

func (s *Session) handleAddAI(hostID, difficulty string) error {
	policy, err := ai.ParsePolicy(difficulty)
	if err != nil {
		return err
	}
	inst := s.ai.Spawn(policy)
	if err := s.game.AddAI(hostID, inst.PlayerID, inst.Name); err != nil {
		s.ai.Remove(inst.PlayerID)
		if err == game.ErrTableFull {
			s.sendErrorLocked(hostID, "table is full")
		}
		return err
	}
	s.broadcastLobbyLocked()
	return nil
}

func (s *Session) handleRemoveAI(hostID string) error {
	id, err := s.game.RemoveAI(hostID)
	if err != nil {
		return err
	}
	s.ai.Remove(id)
	s.broadcastLobbyLocked()
	return nil
}

func (s *Session) handleStartGame(hostID string) error {
	if err := s.game.Start(hostID); err != nil {
		return err
	}
	s.startedAt = time.Now()
	s.eliminations = nil
	s.clearTimersLocked()
	s.log.Info("game started", zap.Int("seats", len(s.game.Snapshot().Players)))
	s.broadcastStateLocked(s.roundStartLogLocked())
	s.planAIMovesLocked()
	return nil
}

func (s *Session) handlePlayCards(id string, indices []int) error {
	if err := s.game.PlayCards(id, indices); err != nil {
		return err
	}
	snap := s.game.Snapshot()
	msg := ""
	if snap.LastPlay != nil {
		msg = fmt.Sprintf("%s played %d card(s)",
			s.playerName(snap, snap.LastPlay.OwnerID), snap.LastPlay.Declared)
	}
	s.broadcastStateLocked(msg)
	s.planAIMovesLocked()
	return nil
}

func (s *Session) handleChallenge(id string) error {
	v, err := s.game.Challenge(id)
	if err != nil {
		return err
	}
	s.announceVerdictLocked(v, false)
	return nil
}

func (s *Session) handleKingJudgment(id string) error {
	v, err := s.game.KingJudgment(id)
	if err != nil {
		return err
	}
	s.announceVerdictLocked(v, true)
	return nil
}

func (s *Session) announceVerdictLocked(v *game.Verdict, judgment bool) {
	snap := s.game.Snapshot()
	owner := s.playerName(snap, v.OwnerID)
	shown := make([]string, 0, len(v.Actual))
	for _, c := range v.Actual {
		shown = append(shown, c.String())
	}
	cards := strings.Join(shown, " ")

	var msg string
	switch {
	case judgment && v.IsLie:
		msg = fmt.Sprintf("⚖️ The king's judgment! %s lied! (actual: %s) Two pulls await.", owner, cards)
	case judgment:
		msg = fmt.Sprintf("⚖️ The king's judgment misfires! %s told the truth! (actual: %s) The accuser faces two pulls.", owner, cards)
	case v.IsLie:
		msg = fmt.Sprintf("😮 Caught! %s lied! (actual: %s)", owner, cards)
	default:
		msg = fmt.Sprintf("😓 False alarm! %s told the truth! (actual: %s)", owner, cards)
	}
	s.broadcastStateLocked(msg)
	s.planAIMovesLocked()
}

func (s *Session) handlePullTrigger(id string) error {
	if !s.pendingPullAt.IsZero() {
		// A pull is already in the air.
		return nil
	}
	snap := s.game.Snapshot()
	if snap.State != game.StateRoulette || snap.RouletteDone || snap.VictimID != id {
		return game.ErrNotVictim
	}

	// Spin first, resolve after the suspense beat.
	s.sendSoundLocked(codec.SoundSpin)
	s.pendingPullAt = time.Now().Add(s.pacing.ShotSuspense)
	s.pendingPullVictim = id
	s.pendingPullGen = s.game.Generation()
	return nil
}

func (s *Session) resolveShotLocked(res *game.ShotResult) {
	snap := s.game.Snapshot()
	name := s.playerName(snap, res.VictimID)

	if res.Dead {
		s.sendSoundLocked(codec.SoundBang)
		s.eliminations = append(s.eliminations, history.Elimination{
			Name:  name,
			Round: snap.Round,
			Shots: res.Shot,
		})
		s.log.Info("player eliminated", zap.String("name", name), zap.Uint16("round", snap.Round))

		if res.GameOver {
			s.broadcastStateLocked(fmt.Sprintf("💥 Bang! %s is down... %s wins!", name, res.WinnerName))
			s.finishGameLocked(res.WinnerName)
			return
		}
		s.broadcastStateLocked(fmt.Sprintf("💥 Bang! %s is down...", name))
		s.nextRoundAt = time.Now().Add(s.pacing.DeathRestart)
		s.nextRoundPreserve = false
		return
	}

	s.sendSoundLocked(codec.SoundClick)
	if res.Done {
		s.broadcastStateLocked(fmt.Sprintf("😅 Click... empty! %s survives!", name))
		s.nextRoundAt = time.Now().Add(s.pacing.SurviveRestart)
		s.nextRoundPreserve = true
		return
	}
	s.broadcastStateLocked(fmt.Sprintf("😅 Click... %s must pull again (%d/%d)",
		name, res.Shot, snap.RequiredShots))
	s.planAIMovesLocked()
}

func (s *Session) finishGameLocked(winnerName string) {
	s.broadcastGameOverLocked(winnerName)
	s.recordHistoryLocked(winnerName)
	s.nextRoundAt = time.Time{}
	s.lobbyResetAt = time.Now().Add(s.pacing.LobbyReturn)
}

func (s *Session) handleLeave(id string) error {
	before := s.game.Snapshot()
	name := s.playerName(before, id)

	out := s.game.Leave(id)
	if !out.Removed {
		return nil
	}
	s.log.Info("player left", zap.String("id", id), zap.String("name", name))

	if out.EmptyReset {
		s.clearTimersLocked()
		return nil
	}

	// A table of nothing but AI seats has no audience; tear it down.
	if s.onlyAIRemainLocked() {
		for _, inst := range s.ai.All() {
			s.game.Leave(inst.PlayerID)
			s.ai.Remove(inst.PlayerID)
		}
		s.clearTimersLocked()
		return nil
	}

	if out.NewHostID != "" && !s.ai.IsAI(out.NewHostID) {
		s.sendHostGrantLocked(out.NewHostID)
	}

	snap := s.game.Snapshot()
	switch {
	case out.GameOver:
		s.broadcastStateLocked(fmt.Sprintf("%s disconnected, not enough players", name))
		s.finishGameLocked(out.WinnerName)
	case snap.State == game.StateLobby:
		s.broadcastLobbyLocked()
	case out.RoundRestarted:
		s.clearTimersLocked()
		s.broadcastStateLocked(fmt.Sprintf("%s left the table. %s", name, s.roundStartLogLocked()))
		s.planAIMovesLocked()
	default:
		s.broadcastStateLocked(fmt.Sprintf("%s left the table", name))
		s.planAIMovesLocked()
	}
	return nil
}

func (s *Session) onlyAIRemainLocked() bool {
	snap := s.game.Snapshot()
	if len(snap.Players) == 0 {
		return false
	}
	for _, p := range snap.Players {
		if !p.AI {
			return false
		}
	}
	return true
}

func (s *Session) recordHistoryLocked(winnerName string) {
	snap := s.game.Snapshot()
	rec := history.Record{
		StartedAt:    s.startedAt,
		EndedAt:      time.Now(),
		Rounds:       int(snap.Round),
		Seats:        len(snap.Players),
		WinnerName:   winnerName,
		Eliminations: append([]history.Elimination(nil), s.eliminations...),
	}
	// Fire and forget; the ledger logs its own failures.
	go s.history.RecordGame(rec)
}

func (s *Session) roundStartLogLocked() string {
	snap := s.game.Snapshot()
	if snap.State != game.StatePlaying {
		return ""
	}
	return fmt.Sprintf("New round! The table demands: %s", snap.TableRequired)
}

func (s *Session) playerName(snap game.Snapshot, id string) string {
	for _, p := range snap.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}
