package codec

import (
	"encoding/json"
	"testing"

	"liars-roulette/card"
	"liars-roulette/game"
)

func TestDecodeRejectsMissingCmd(t *testing.T) {
	if _, err := Decode([]byte(`{"name":"x"}`)); err == nil {
		t.Fatal("expected error for frame without cmd")
	}
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed frame")
	}
	env, err := Decode([]byte(`{"cmd":"playCards","indices":[0,2]}`))
	if err != nil {
		t.Fatalf("Decode err: %v", err)
	}
	if env.Cmd != CmdPlayCards || len(env.Indices) != 2 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestEncodeEnvelopeShape(t *testing.T) {
	raw, err := Encode(MsgSound, 7, map[string]string{"name": SoundBang})
	if err != nil {
		t.Fatalf("Encode err: %v", err)
	}
	var env ServerEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if env.Type != MsgSound || env.Seq != 7 || env.TsMs == 0 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestSnapshotToStateHidesUnrevealedCards(t *testing.T) {
	snap := game.Snapshot{
		State:         game.StatePlaying,
		Round:         2,
		TableRequired: card.CardMoon,
		CurrentTurnID: "p1",
		Players: []game.PlayerView{
			{ID: "p0", Name: "A", Host: true, Alive: true, HandCount: 4},
			{ID: "p1", Name: "B", Alive: true, HandCount: 5},
		},
		LastPlay: &game.PlayView{OwnerID: "p0", Declared: 1},
	}

	dto := SnapshotToState(snap, "hello")
	if dto.GameState != "playing" || dto.TableReq != "moon" || dto.Log != "hello" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if dto.LastPlay == nil || dto.LastPlay.Cards != nil {
		t.Fatal("unrevealed play must carry no card faces")
	}

	snap.LastPlay.Actual = []card.Card{card.CardStar}
	dto = SnapshotToState(snap, "")
	if len(dto.LastPlay.Cards) != 1 || dto.LastPlay.Cards[0] != "star" {
		t.Fatalf("revealed cards missing: %+v", dto.LastPlay)
	}
}

func TestSnapshotToLobby(t *testing.T) {
	snap := game.Snapshot{
		State: game.StateLobby,
		Players: []game.PlayerView{
			{ID: "p0", Name: "A", Host: true, Alive: true},
		},
	}
	dto := SnapshotToLobby(snap, 2)
	if dto.CanStart {
		t.Fatal("one seat cannot start")
	}
	snap.Players = append(snap.Players, game.PlayerView{ID: "ai-1", Name: "Bot", AI: true, Alive: true})
	if !SnapshotToLobby(snap, 2).CanStart {
		t.Fatal("two seats should be startable")
	}
}
