package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"liars-roulette/card"
	"liars-roulette/game"
)

// Client command names. These are the socket protocol verbs; the
// gateway rejects anything else.
const (
	CmdJoin         = "join"
	CmdAddAI        = "addAI"
	CmdRemoveAI     = "removeAI"
	CmdStartGame    = "startGame"
	CmdPlayCards    = "playCards"
	CmdChallenge    = "challenge"
	CmdKingJudgment = "kingJudgment"
	CmdPullTrigger  = "pullTrigger"
)

// Server message types.
const (
	MsgStateUpdate = "stateUpdate"
	MsgHandUpdate  = "handUpdate"
	MsgLobbyUpdate = "lobbyUpdate"
	MsgYouAreHost  = "youAreHost"
	MsgSound       = "sound"
	MsgGameOver    = "gameOver"
	MsgError       = "err"
)

// Sound cue names, played client-side.
const (
	SoundSpin  = "spin"
	SoundBang  = "bang"
	SoundClick = "click"
)

// ClientEnvelope is a single inbound command frame.
type ClientEnvelope struct {
	Cmd        string `json:"cmd"`
	Name       string `json:"name,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Indices    []int  `json:"indices,omitempty"`
}

// ServerEnvelope is a single outbound frame.
type ServerEnvelope struct {
	Type string          `json:"type"`
	Seq  uint64          `json:"seq"`
	TsMs int64           `json:"ts"`
	Data json.RawMessage `json:"data,omitempty"`
}

// PlayerDTO 玩家公开信息
type PlayerDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsAI       bool   `json:"isAI"`
	IsHost     bool   `json:"isHost"`
	IsAlive    bool   `json:"isAlive"`
	CardCount  int    `json:"cardCount"`
	ShotsFired int    `json:"shotsFired"`
}

// LastPlayDTO carries only what everyone may know: the declared count,
// plus the actual cards once revealed.
type LastPlayDTO struct {
	PlayerID string   `json:"playerId"`
	Count    int      `json:"count"`
	Cards    []string `json:"cards,omitempty"`
}

// StateDTO is the public stateUpdate payload.
type StateDTO struct {
	GameState       string       `json:"gameState"`
	Round           uint16       `json:"round"`
	TableReq        string       `json:"tableReq,omitempty"`
	Players         []PlayerDTO  `json:"players"`
	CurrentPlayerID string       `json:"currentPlayerId,omitempty"`
	LastPlay        *LastPlayDTO `json:"lastPlay,omitempty"`
	ChallengerID    string       `json:"challengerId,omitempty"`
	RouletteVictim  string       `json:"rouletteVictim,omitempty"`
	RequiredShots   int          `json:"requiredShots,omitempty"`
	CurrentShot     int          `json:"currentShot,omitempty"`
	LastDead        string       `json:"lastDead,omitempty"`
	Log             string       `json:"log,omitempty"`
}

// LobbyDTO is the lobbyUpdate payload.
type LobbyDTO struct {
	Players  []PlayerDTO `json:"players"`
	CanStart bool        `json:"canStart"`
}

// SnapshotToState converts an engine snapshot into the broadcast DTO.
// Hands and chamber positions are absent from the snapshot already;
// this layer only renames and stringifies.
func SnapshotToState(snap game.Snapshot, logMsg string) StateDTO {
	dto := StateDTO{
		GameState:       snap.State.String(),
		Round:           snap.Round,
		CurrentPlayerID: snap.CurrentTurnID,
		ChallengerID:    snap.ChallengerID,
		RouletteVictim:  snap.VictimID,
		RequiredShots:   snap.RequiredShots,
		CurrentShot:     snap.CurrentShot,
		LastDead:        snap.LastDeadName,
		Log:             logMsg,
	}
	if snap.TableRequired.Suited() {
		dto.TableReq = snap.TableRequired.String()
	}
	for _, p := range snap.Players {
		dto.Players = append(dto.Players, PlayerDTO{
			ID:         p.ID,
			Name:       p.Name,
			IsAI:       p.AI,
			IsHost:     p.Host,
			IsAlive:    p.Alive,
			CardCount:  p.HandCount,
			ShotsFired: p.ShotsFired,
		})
	}
	if snap.LastPlay != nil {
		lp := &LastPlayDTO{
			PlayerID: snap.LastPlay.OwnerID,
			Count:    snap.LastPlay.Declared,
		}
		for _, c := range snap.LastPlay.Actual {
			lp.Cards = append(lp.Cards, c.String())
		}
		dto.LastPlay = lp
	}
	return dto
}

// SnapshotToLobby converts a snapshot into the lobbyUpdate DTO.
func SnapshotToLobby(snap game.Snapshot, minSeats int) LobbyDTO {
	dto := LobbyDTO{CanStart: len(snap.Players) >= minSeats}
	for _, p := range snap.Players {
		dto.Players = append(dto.Players, PlayerDTO{
			ID:      p.ID,
			Name:    p.Name,
			IsAI:    p.AI,
			IsHost:  p.Host,
			IsAlive: p.Alive,
		})
	}
	return dto
}

// CardsToStrings renders a private hand for handUpdate.
func CardsToStrings(cards []card.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}

// Encode wraps a payload into a serialized ServerEnvelope.
func Encode(msgType string, seq uint64, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", msgType, err)
	}
	env := ServerEnvelope{
		Type: msgType,
		Seq:  seq,
		TsMs: time.Now().UnixMilli(),
		Data: data,
	}
	return json.Marshal(env)
}

// Decode parses one inbound frame.
func Decode(raw []byte) (*ClientEnvelope, error) {
	var env ClientEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode client frame: %w", err)
	}
	if env.Cmd == "" {
		return nil, fmt.Errorf("client frame missing cmd")
	}
	return &env, nil
}
