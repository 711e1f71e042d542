package session

import (
	"liars-roulette/apps/server/internal/codec"

	"go.uber.org/zap"
)

func (s *Session) broadcastStateLocked(logMsg string) {
	snap := s.game.Snapshot()
	data, err := codec.Encode(codec.MsgStateUpdate, s.nextSeq(), codec.SnapshotToState(snap, logMsg))
	if err != nil {
		s.log.Error("encode stateUpdate failed", zap.Error(err))
		return
	}
	s.broadcast(data)

	// Private hands go only to their owners; AI seats have no socket.
	for _, p := range snap.Players {
		if p.AI {
			continue
		}
		hand, ok := s.game.Hand(p.ID)
		if !ok {
			continue
		}
		frame, err := codec.Encode(codec.MsgHandUpdate, s.nextSeq(), codec.CardsToStrings(hand))
		if err != nil {
			s.log.Error("encode handUpdate failed", zap.Error(err))
			continue
		}
		s.send(p.ID, frame)
	}
}

func (s *Session) broadcastLobbyLocked() {
	snap := s.game.Snapshot()
	data, err := codec.Encode(codec.MsgLobbyUpdate, s.nextSeq(),
		codec.SnapshotToLobby(snap, s.gameCfg.MinSeats))
	if err != nil {
		s.log.Error("encode lobbyUpdate failed", zap.Error(err))
		return
	}
	s.broadcast(data)
}

func (s *Session) broadcastGameOverLocked(winnerName string) {
	if winnerName == "" {
		winnerName = "no one"
	}
	data, err := codec.Encode(codec.MsgGameOver, s.nextSeq(), map[string]string{"winner": winnerName})
	if err != nil {
		s.log.Error("encode gameOver failed", zap.Error(err))
		return
	}
	s.broadcast(data)
}

func (s *Session) sendSoundLocked(name string) {
	data, err := codec.Encode(codec.MsgSound, s.nextSeq(), map[string]string{"name": name})
	if err != nil {
		return
	}
	s.broadcast(data)
}

func (s *Session) sendErrorLocked(playerID, msg string) {
	data, err := codec.Encode(codec.MsgError, s.nextSeq(), map[string]string{"message": msg})
	if err != nil {
		return
	}
	s.send(playerID, data)
}

func (s *Session) sendHostGrantLocked(playerID string) {
	data, err := codec.Encode(codec.MsgYouAreHost, s.nextSeq(), struct{}{})
	if err != nil {
		return
	}
	s.send(playerID, data)
}
