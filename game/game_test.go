package game

import (
	"fmt"
	"testing"

	"liars-roulette/card"
)

func newTestGame(t *testing.T, seats int, seed int64) (*Game, []string) {
	t.Helper()
	g, err := New(Config{MaxSeats: 7, MinSeats: 2, HandSize: 5, Seed: seed})
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	ids := make([]string, 0, seats)
	for i := 0; i < seats; i++ {
		id := fmt.Sprintf("p%d", i)
		if err := g.Join(id, fmt.Sprintf("P%d", i)); err != nil {
			t.Fatalf("Join %s err: %v", id, err)
		}
		ids = append(ids, id)
	}
	return g, ids
}

// rigHand replaces the current turn holder's hand so bluff outcomes are
// under test control.
func rigHand(t *testing.T, g *Game, id string, cards []card.Card) {
	t.Helper()
	p := g.findLocked(id)
	if p == nil {
		t.Fatalf("rigHand: unknown player %s", id)
	}
	p.hand.Init(cards)
}

func TestJoinRules(t *testing.T) {
	g, _ := newTestGame(t, 2, 1)

	snap := g.Snapshot()
	if !snap.Players[0].Host {
		t.Fatal("first joiner should be host")
	}
	if snap.Players[1].Host {
		t.Fatal("second joiner should not be host")
	}

	if err := g.Join("p0", "dup"); err != ErrBadSelection {
		t.Fatalf("duplicate join err = %v", err)
	}

	for i := 2; i < 7; i++ {
		if err := g.Join(fmt.Sprintf("p%d", i), ""); err != nil {
			t.Fatalf("join %d err: %v", i, err)
		}
	}
	if err := g.Join("p7", "late"); err != ErrTableFull {
		t.Fatalf("8th join err = %v, want ErrTableFull", err)
	}

	g2, _ := newTestGame(t, 2, 1)
	if err := g2.Start("p0"); err != nil {
		t.Fatalf("Start err: %v", err)
	}
	if err := g2.Join("p9", "late"); err != ErrGameInProgress {
		t.Fatalf("mid-game join err = %v, want ErrGameInProgress", err)
	}
}

func TestDealFullHands(t *testing.T) {
	g, _ := newTestGame(t, 3, 7)
	if err := g.Start("p0"); err != nil {
		t.Fatalf("Start err: %v", err)
	}
	snap := g.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("state = %v, want playing", snap.State)
	}
	if snap.Round != 1 {
		t.Fatalf("round = %d, want 1", snap.Round)
	}
	for _, p := range snap.Players {
		if p.HandCount != 5 {
			t.Fatalf("%s hand = %d, want 5", p.ID, p.HandCount)
		}
	}
	if !snap.TableRequired.Suited() {
		t.Fatalf("table requirement %v is not a suit", snap.TableRequired)
	}
}

// 7 人桌只有 20 张牌：前 4 人拿满 5 张，剩下 3 人一张不剩，静默截断。
func TestDealTruncatesOnSevenSeats(t *testing.T) {
	g, _ := newTestGame(t, 7, 7)
	if err := g.Start("p0"); err != nil {
		t.Fatalf("Start err: %v", err)
	}
	snap := g.Snapshot()
	total := 0
	for i, p := range snap.Players {
		total += p.HandCount
		want := 5
		if i >= 4 {
			want = 0
		}
		if p.HandCount != want {
			t.Fatalf("seat %d hand = %d, want %d", i, p.HandCount, want)
		}
	}
	if total != card.DeckSize {
		t.Fatalf("dealt total = %d, want %d", total, card.DeckSize)
	}
	if cur := g.currentLocked(); cur == nil || cur.HandCount() == 0 {
		t.Fatal("round opener must hold cards")
	}
}

// 截断发牌后,空手座位永远不能成为开局者,否则整桌卡死:
// 空手无牌可出,又没有上家可质疑。
func TestRoundOpenerSkipsEmptySeats(t *testing.T) {
	g, ids := newTestGame(t, 6, 67)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	// Aim the pointer at a seat the truncated deal left empty, then
	// restart the round.
	g.turnIndex = 5
	g.startRoundLocked(false)

	cur := g.currentLocked()
	if cur == nil || !cur.alive || cur.HandCount() == 0 {
		t.Fatalf("opener %+v holds no cards", cur)
	}
	snap := g.Snapshot()
	if snap.CurrentTurnID != cur.ID {
		t.Fatalf("snapshot actor %s != opener %s", snap.CurrentTurnID, cur.ID)
	}
}

func TestNextRoundAfterDeathOpenerHoldsCards(t *testing.T) {
	g, ids := newTestGame(t, 6, 71)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	victim := forceRoulette(t, g, 1)
	p := g.findLocked(victim)
	p.chamberPos = 1
	p.shotsFired = 0
	if _, err := g.PullTrigger(victim); err != nil {
		t.Fatal(err)
	}
	if err := g.NextRound(false); err != nil {
		t.Fatal(err)
	}

	// Five alive, twenty cards: at least one seat is empty again. The
	// new opener must not be one of them.
	cur := g.currentLocked()
	if cur == nil || !cur.alive || cur.HandCount() == 0 {
		t.Fatalf("opener after death %+v holds no cards", cur)
	}
}

func TestIsLieExhaustive(t *testing.T) {
	alphabet := []card.Card{card.CardSun, card.CardMoon, card.CardStar, card.CardJoker}
	for _, req := range card.Suits {
		for _, a := range alphabet {
			for _, b := range alphabet {
				for _, c := range alphabet {
					play := []card.Card{a, b, c}
					want := false
					for _, x := range play {
						if x != req && x != card.CardJoker {
							want = true
						}
					}
					if got := IsLie(play, req); got != want {
						t.Fatalf("IsLie(%v, %v) = %v, want %v", play, req, got, want)
					}
				}
			}
		}
	}
	if IsLie(nil, card.CardSun) {
		t.Fatal("empty play should never be a lie")
	}
}

func TestPlayCardsValidation(t *testing.T) {
	g, ids := newTestGame(t, 3, 11)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	cur := g.Snapshot().CurrentTurnID
	other := ids[1]
	if cur == other {
		other = ids[0]
	}

	if err := g.PlayCards(other, []int{0}); err != ErrOutOfTurn {
		t.Fatalf("out-of-turn err = %v", err)
	}
	if err := g.PlayCards(cur, nil); err != ErrEmptyPlay {
		t.Fatalf("empty play err = %v", err)
	}
	if err := g.PlayCards(cur, []int{0, 0}); err != ErrBadSelection {
		t.Fatalf("duplicate index err = %v", err)
	}
	if err := g.PlayCards(cur, []int{99}); err != ErrBadSelection {
		t.Fatalf("out-of-range err = %v", err)
	}

	if err := g.PlayCards(cur, []int{0, 2}); err != nil {
		t.Fatalf("legal play err: %v", err)
	}
	snap := g.Snapshot()
	if snap.LastPlay == nil || snap.LastPlay.Declared != 2 || snap.LastPlay.OwnerID != cur {
		t.Fatalf("unexpected lastPlay: %+v", snap.LastPlay)
	}
	if snap.LastPlay.Actual != nil {
		t.Fatal("actual cards must stay hidden before a challenge")
	}
	if snap.CurrentTurnID == cur {
		t.Fatal("turn should advance after a play")
	}
	for _, p := range snap.Players {
		if p.ID == cur && p.HandCount != 3 {
			t.Fatalf("hand after play = %d, want 3", p.HandCount)
		}
	}
}

func TestChallengeOnLieTargetsLiar(t *testing.T) {
	g, ids := newTestGame(t, 2, 3)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	g.tableReq = card.CardSun
	liar := g.Snapshot().CurrentTurnID
	rigHand(t, g, liar, []card.Card{card.CardMoon, card.CardSun})
	if err := g.PlayCards(liar, []int{0}); err != nil {
		t.Fatal(err)
	}

	challenger := g.Snapshot().CurrentTurnID
	v, err := g.Challenge(challenger)
	if err != nil {
		t.Fatalf("Challenge err: %v", err)
	}
	if !v.IsLie {
		t.Fatal("moon against sun requirement must be a lie")
	}
	if v.VictimID != liar {
		t.Fatalf("victim = %s, want liar %s", v.VictimID, liar)
	}
	if v.RequiredShots != 1 {
		t.Fatalf("required shots = %d, want 1", v.RequiredShots)
	}

	snap := g.Snapshot()
	if snap.State != StateRoulette {
		t.Fatalf("state = %v, want roulette", snap.State)
	}
	if snap.LastPlay == nil || len(snap.LastPlay.Actual) != 1 {
		t.Fatal("challenge must reveal the actual cards")
	}
}

func TestChallengeOnTruthTargetsChallenger(t *testing.T) {
	g, ids := newTestGame(t, 2, 3)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	g.tableReq = card.CardSun
	honest := g.Snapshot().CurrentTurnID
	rigHand(t, g, honest, []card.Card{card.CardJoker, card.CardSun})
	if err := g.PlayCards(honest, []int{0, 1}); err != nil {
		t.Fatal(err)
	}

	challenger := g.Snapshot().CurrentTurnID
	v, err := g.Challenge(challenger)
	if err != nil {
		t.Fatal(err)
	}
	if v.IsLie {
		t.Fatal("joker+sun against sun requirement is truthful")
	}
	if v.VictimID != challenger {
		t.Fatalf("victim = %s, want challenger %s", v.VictimID, challenger)
	}
}

func TestKingJudgmentRules(t *testing.T) {
	g, ids := newTestGame(t, 3, 5)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	if _, err := g.KingJudgment(ids[0]); err != ErrNoLastPlay {
		t.Fatalf("judgment without play err = %v", err)
	}

	g.tableReq = card.CardStar
	owner := g.Snapshot().CurrentTurnID
	rigHand(t, g, owner, []card.Card{card.CardMoon, card.CardStar})
	if err := g.PlayCards(owner, []int{0}); err != nil {
		t.Fatal(err)
	}

	if _, err := g.KingJudgment(owner); err != ErrOutOfTurn {
		t.Fatalf("self-judgment err = %v", err)
	}

	// Any other alive seat may judge, turn holder or not.
	accuser := ""
	for _, id := range ids {
		if id != owner && id != g.Snapshot().CurrentTurnID {
			accuser = id
			break
		}
	}
	v, err := g.KingJudgment(accuser)
	if err != nil {
		t.Fatalf("off-turn judgment err: %v", err)
	}
	if v.RequiredShots != 2 {
		t.Fatalf("judgment required shots = %d, want 2", v.RequiredShots)
	}
	if v.VictimID != owner {
		t.Fatalf("victim = %s, want lying owner %s", v.VictimID, owner)
	}
}

// forceRoulette walks the table into a revolver sequence with the
// current turn holder as the designated liar.
func forceRoulette(t *testing.T, g *Game, shots int) (victim string) {
	t.Helper()
	g.tableReq = card.CardSun
	victim = g.Snapshot().CurrentTurnID
	rigHand(t, g, victim, []card.Card{card.CardMoon, card.CardMoon})
	if err := g.PlayCards(victim, []int{0}); err != nil {
		t.Fatal(err)
	}
	accuser := g.Snapshot().CurrentTurnID
	var err error
	if shots == 2 {
		_, err = g.KingJudgment(accuser)
	} else {
		_, err = g.Challenge(accuser)
	}
	if err != nil {
		t.Fatal(err)
	}
	return victim
}

// 弹巢位置 3：前两枪空响，第三枪必死。
func TestChamberDeterminism(t *testing.T) {
	g, ids := newTestGame(t, 3, 9)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	victim := forceRoulette(t, g, 1)
	p := g.findLocked(victim)
	p.chamberPos = 3
	p.shotsFired = 0
	g.requiredShots = 3 // stretch the sequence to watch each pull

	for pull := 1; pull <= 2; pull++ {
		res, err := g.PullTrigger(victim)
		if err != nil {
			t.Fatalf("pull %d err: %v", pull, err)
		}
		if res.Dead || res.Done {
			t.Fatalf("pull %d should be a survivable click, got %+v", pull, res)
		}
	}
	res, err := g.PullTrigger(victim)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Dead || !res.Done {
		t.Fatalf("pull 3 must fire: %+v", res)
	}
	if res.PreserveRequirement {
		t.Fatal("death must redraw the requirement")
	}
}

func TestPullTriggerValidation(t *testing.T) {
	g, ids := newTestGame(t, 3, 13)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}
	if _, err := g.PullTrigger(ids[0]); err != ErrWrongState {
		t.Fatalf("pull outside roulette err = %v", err)
	}

	victim := forceRoulette(t, g, 1)
	other := ids[0]
	if other == victim {
		other = ids[1]
	}
	if _, err := g.PullTrigger(other); err != ErrNotVictim {
		t.Fatalf("non-victim pull err = %v", err)
	}
}

func TestSurvivedSequencePreservesRequirement(t *testing.T) {
	g, ids := newTestGame(t, 3, 17)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	victim := forceRoulette(t, g, 1)
	p := g.findLocked(victim)
	p.chamberPos = 6
	p.shotsFired = 0
	shotsBefore := 0

	res, err := g.PullTrigger(victim)
	if err != nil {
		t.Fatal(err)
	}
	if res.Dead || !res.Done || !res.PreserveRequirement {
		t.Fatalf("expected survived resolved sequence: %+v", res)
	}
	if p.shotsFired != shotsBefore+1 {
		t.Fatalf("shotsFired = %d, want %d", p.shotsFired, shotsBefore+1)
	}

	reqBefore := g.Snapshot().TableRequired
	if _, err := g.PullTrigger(victim); err != ErrWrongState {
		t.Fatalf("pull after resolution err = %v", err)
	}
	if err := g.NextRound(true); err != nil {
		t.Fatalf("NextRound err: %v", err)
	}
	snap := g.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("state = %v, want playing", snap.State)
	}
	if snap.TableRequired != reqBefore {
		t.Fatalf("requirement changed across a survived redo: %v -> %v", reqBefore, snap.TableRequired)
	}
	if snap.Round != 2 {
		t.Fatalf("round = %d, want 2", snap.Round)
	}
	// Shots carry over; only the hidden chamber was re-rolled.
	if p.shotsFired != 1 {
		t.Fatalf("shotsFired reset unexpectedly: %d", p.shotsFired)
	}
}

func TestKingJudgmentTakesTwoPulls(t *testing.T) {
	g, ids := newTestGame(t, 3, 19)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	victim := forceRoulette(t, g, 2)
	p := g.findLocked(victim)
	p.chamberPos = 6
	p.shotsFired = 0

	res, err := g.PullTrigger(victim)
	if err != nil {
		t.Fatal(err)
	}
	if res.Done {
		t.Fatalf("first of two pulls must not resolve: %+v", res)
	}
	res, err = g.PullTrigger(victim)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Done || res.Dead || !res.PreserveRequirement {
		t.Fatalf("second pull should resolve the survived sequence: %+v", res)
	}
}

// 两连发序列中途打满弹巢:立即重新装弹,shotsFired 永不超过 6。
func TestMidSequenceReloadAtFullCylinder(t *testing.T) {
	g, ids := newTestGame(t, 3, 73)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	victim := forceRoulette(t, g, 2)
	p := g.findLocked(victim)
	// Carried shots with the pin already past the chamber, as left by
	// earlier survived sequences.
	p.shotsFired = 5
	p.chamberPos = 2

	res, err := g.PullTrigger(victim)
	if err != nil {
		t.Fatal(err)
	}
	if res.Dead || res.Done {
		t.Fatalf("first of two pulls: %+v", res)
	}
	if p.shotsFired != 0 {
		t.Fatalf("cylinder not reloaded at 6: shotsFired = %d", p.shotsFired)
	}
	if p.chamberPos < 1 || p.chamberPos > ChamberSize {
		t.Fatalf("chamber out of range after reload: %d", p.chamberPos)
	}

	p.chamberPos = 3 // keep the second pull survivable
	res, err = g.PullTrigger(victim)
	if err != nil {
		t.Fatal(err)
	}
	if res.Dead || !res.Done {
		t.Fatalf("second pull should survive and resolve: %+v", res)
	}
	if p.shotsFired > ChamberSize {
		t.Fatalf("shotsFired = %d exceeds cylinder size", p.shotsFired)
	}
}

func TestSurviveFinalPullAtFullCylinderReloads(t *testing.T) {
	g, ids := newTestGame(t, 3, 79)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	victim := forceRoulette(t, g, 1)
	p := g.findLocked(victim)
	p.shotsFired = 5
	p.chamberPos = 2

	res, err := g.PullTrigger(victim)
	if err != nil {
		t.Fatal(err)
	}
	if res.Dead || !res.Done || !res.PreserveRequirement {
		t.Fatalf("expected survived resolved sequence: %+v", res)
	}
	// The sixth pull filled the cylinder; it must come back empty, not
	// carry 6 into the next sequence.
	if p.shotsFired != 0 {
		t.Fatalf("full cylinder survived without reload: shotsFired = %d", p.shotsFired)
	}
}

// shotsFired ≥ 6 时，再次成为受害者要先重新装弹。
func TestReloadOnFullCylinder(t *testing.T) {
	g, ids := newTestGame(t, 3, 23)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	victim := g.Snapshot().CurrentTurnID
	p := g.findLocked(victim)
	p.shotsFired = 6
	p.chamberPos = 2

	forceRoulette(t, g, 1)
	if p.shotsFired != 0 {
		t.Fatalf("full cylinder not reloaded: shotsFired = %d", p.shotsFired)
	}
	if p.chamberPos < 1 || p.chamberPos > ChamberSize {
		t.Fatalf("chamber out of range after reload: %d", p.chamberPos)
	}
}

func TestDeathEndsTwoPlayerGame(t *testing.T) {
	g, ids := newTestGame(t, 2, 29)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	victim := forceRoulette(t, g, 1)
	p := g.findLocked(victim)
	p.chamberPos = 1
	p.shotsFired = 0

	res, err := g.PullTrigger(victim)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Dead || !res.GameOver {
		t.Fatalf("expected lethal game-ending pull: %+v", res)
	}

	snap := g.Snapshot()
	if snap.State != StateGameOver {
		t.Fatalf("state = %v, want gameover", snap.State)
	}
	survivor := ids[0]
	if survivor == victim {
		survivor = ids[1]
	}
	if res.WinnerName != g.findLocked(survivor).Name {
		t.Fatalf("winner = %q, want %q", res.WinnerName, g.findLocked(survivor).Name)
	}
}

func TestTurnRotationSkipsDead(t *testing.T) {
	g, ids := newTestGame(t, 4, 31)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	g.players[1].alive = false
	g.players[2].alive = false

	if got := nextAlive(g.players, 0); got != 3 {
		t.Fatalf("nextAlive(0) = %d, want 3", got)
	}
	if got := nextAlive(g.players, 3); got != 0 {
		t.Fatalf("nextAlive(3) = %d, want 0", got)
	}

	// No alive seat at all: stay put instead of walking forever.
	g.players[0].alive = false
	g.players[3].alive = false
	if got := nextAlive(g.players, 2); got != 2 {
		t.Fatalf("nextAlive with all dead = %d, want 2", got)
	}
}

func TestHostTransferOnLeave(t *testing.T) {
	g, ids := newTestGame(t, 3, 37)

	out := g.Leave(ids[0])
	if !out.Removed || !out.WasHost {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if out.NewHostID != ids[1] {
		t.Fatalf("new host = %s, want %s", out.NewHostID, ids[1])
	}
	snap := g.Snapshot()
	if !snap.Players[0].Host {
		t.Fatal("earliest remaining seat should hold host")
	}
}

func TestLeaveUnknownIsNoop(t *testing.T) {
	g, _ := newTestGame(t, 2, 37)
	gen := g.Generation()
	out := g.Leave("ghost")
	if out.Removed {
		t.Fatal("unknown id should not remove anyone")
	}
	if g.Generation() != gen {
		t.Fatal("no-op leave must not bump the generation")
	}
}

func TestVictimLeaveRestartsRound(t *testing.T) {
	g, ids := newTestGame(t, 3, 41)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	victim := forceRoulette(t, g, 1)
	out := g.Leave(victim)
	if !out.Removed || !out.RoundRestarted {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	snap := g.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("state = %v, want playing after restart", snap.State)
	}
	if snap.VictimID != "" || snap.LastPlay != nil {
		t.Fatal("challenge markers must be cleared on restart")
	}
}

func TestMidGameLeaveBelowTwoEndsGame(t *testing.T) {
	g, ids := newTestGame(t, 2, 43)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	out := g.Leave(ids[1])
	if !out.GameOver {
		t.Fatalf("expected game over: %+v", out)
	}
	if out.WinnerName != "P0" {
		t.Fatalf("winner = %q, want P0", out.WinnerName)
	}
	if g.Snapshot().State != StateGameOver {
		t.Fatal("state should be gameover")
	}
}

func TestLastLeaveResetsEverything(t *testing.T) {
	g, ids := newTestGame(t, 2, 47)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	g.Leave(ids[0])
	out := g.Leave(ids[1])
	if !out.EmptyReset {
		t.Fatalf("expected empty reset: %+v", out)
	}
	snap := g.Snapshot()
	if snap.State != StateLobby || len(snap.Players) != 0 || snap.Round != 0 {
		t.Fatalf("session not reset: %+v", snap)
	}
}

func TestResetToLobbyRevivesSeats(t *testing.T) {
	g, ids := newTestGame(t, 2, 53)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	victim := forceRoulette(t, g, 1)
	p := g.findLocked(victim)
	p.chamberPos = 1
	p.shotsFired = 0
	if _, err := g.PullTrigger(victim); err != nil {
		t.Fatal(err)
	}

	if err := g.ResetToLobby(); err != nil {
		t.Fatalf("ResetToLobby err: %v", err)
	}
	snap := g.Snapshot()
	if snap.State != StateLobby {
		t.Fatalf("state = %v, want lobby", snap.State)
	}
	if len(snap.Players) != 2 {
		t.Fatalf("seats = %d, want 2", len(snap.Players))
	}
	for _, pv := range snap.Players {
		if !pv.Alive || pv.HandCount != 0 || pv.ShotsFired != 0 {
			t.Fatalf("seat not reset: %+v", pv)
		}
	}
	if err := g.Start(ids[0]); err != nil {
		t.Fatalf("restart after lobby reset err: %v", err)
	}
}

func TestAIManagementHostOnly(t *testing.T) {
	g, ids := newTestGame(t, 2, 59)

	if err := g.AddAI(ids[1], "ai-1", "Bot"); err != ErrNotHost {
		t.Fatalf("non-host addAI err = %v", err)
	}
	if err := g.AddAI(ids[0], "ai-1", "Bot"); err != nil {
		t.Fatalf("host addAI err: %v", err)
	}
	if _, err := g.RemoveAI(ids[1]); err != ErrNotHost {
		t.Fatalf("non-host removeAI err = %v", err)
	}
	id, err := g.RemoveAI(ids[0])
	if err != nil || id != "ai-1" {
		t.Fatalf("removeAI = (%s, %v)", id, err)
	}
	if _, err := g.RemoveAI(ids[0]); err != ErrUnknownSeat {
		t.Fatalf("removeAI on empty err = %v", err)
	}

	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}
	if err := g.AddAI(ids[0], "ai-2", "Bot"); err != ErrGameInProgress {
		t.Fatalf("mid-game addAI err = %v", err)
	}
}

func TestSnapshotHidesPrivateState(t *testing.T) {
	g, ids := newTestGame(t, 2, 61)
	if err := g.Start(ids[0]); err != nil {
		t.Fatal(err)
	}

	cur := g.Snapshot().CurrentTurnID
	if err := g.PlayCards(cur, []int{0}); err != nil {
		t.Fatal(err)
	}
	snap := g.Snapshot()
	if snap.LastPlay.Actual != nil {
		t.Fatal("unrevealed play must not expose cards")
	}

	hand, ok := g.Hand(ids[0])
	if !ok {
		t.Fatal("Hand lookup failed")
	}
	// Returned hand is a copy, not an aliased slice.
	if len(hand) > 0 {
		orig := hand[0]
		hand[0] = card.CardInvalid
		fresh, _ := g.Hand(ids[0])
		if len(fresh) > 0 && fresh[0] != orig {
			t.Fatal("Hand must return an isolated copy")
		}
	}
	if _, ok := g.Hand("ghost"); ok {
		t.Fatal("unknown id should have no hand")
	}
}
