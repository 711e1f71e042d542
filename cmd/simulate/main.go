// Command simulate runs headless AI-only games and prints survival
// statistics. Useful for sanity-checking policy balance after tuning
// the brains.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"liars-roulette/game"
	"liars-roulette/game/ai"
)

func main() {
	games := flag.Int("games", 200, "number of games to simulate")
	seats := flag.Int("seats", 4, "AI seats per game (2-7)")
	difficulty := flag.String("difficulty", "hard", "AI policy: easy, medium, hard")
	seed := flag.Int64("seed", 1, "base rng seed")
	maxSteps := flag.Int("max-steps", 20000, "step cap per game")
	flag.Parse()

	policy, err := ai.ParsePolicy(*difficulty)
	if err != nil {
		log.Fatalf("bad difficulty: %v", err)
	}
	if *seats < 2 || *seats > 7 {
		log.Fatalf("seats must be 2-7, got %d", *seats)
	}

	wins := map[string]int{}
	aborted := 0
	for i := 0; i < *games; i++ {
		winner := runGame(*seed+int64(i)*7919, *seats, policy, *maxSteps)
		if winner == "" {
			aborted++
			continue
		}
		wins[winner]++
	}

	names := make([]string, 0, len(wins))
	for name := range wins {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("simulated %d games, %d seats, policy=%s\n", *games, *seats, policy)
	for _, name := range names {
		fmt.Printf("  %-8s %4d wins (%.1f%%)\n", name, wins[name],
			100*float64(wins[name])/float64(*games))
	}
	if aborted > 0 {
		fmt.Printf("  aborted  %4d\n", aborted)
		os.Exit(1)
	}
}

func runGame(seed int64, seats int, policy ai.Policy, maxSteps int) string {
	g, err := game.New(game.Config{MaxSeats: 7, MinSeats: 2, HandSize: 5, Seed: seed})
	if err != nil {
		log.Fatalf("new game: %v", err)
	}

	brains := map[string]*ai.RuleBrain{}
	for i := 0; i < seats; i++ {
		id := fmt.Sprintf("seat-%d", i)
		name := fmt.Sprintf("Seat%d", i+1)
		if err := g.Join(id, name); err != nil {
			log.Fatalf("join: %v", err)
		}
		brains[id] = ai.NewRuleBrain(policy, name, seed*31+int64(i))
	}
	if err := g.Start("seat-0"); err != nil {
		log.Fatalf("start: %v", err)
	}

	preserve := false
	for step := 0; step < maxSteps; step++ {
		snap := g.Snapshot()
		switch snap.State {
		case game.StateGameOver:
			return snap.WinnerName

		case game.StatePlaying:
			id := snap.CurrentTurnID
			brain := brains[id]
			view := buildView(g, snap, id)
			if view.LastPlay != nil && brain.ShouldJudge(view) {
				if _, err := g.KingJudgment(id); err == nil {
					continue
				}
			}
			d := brain.Decide(view)
			if d.Action == ai.ActionChallenge {
				if _, err := g.Challenge(id); err == nil {
					continue
				}
			}
			if err := g.PlayCards(id, d.Indices); err != nil {
				// Brain produced an illegal move; let it rethink.
				continue
			}

		case game.StateRoulette:
			if snap.RouletteDone {
				if err := g.NextRound(preserve); err != nil {
					return ""
				}
				continue
			}
			res, err := g.PullTrigger(snap.VictimID)
			if err != nil {
				return ""
			}
			if res.GameOver {
				return res.WinnerName
			}
			if res.Done {
				preserve = res.PreserveRequirement
			}
		}
	}
	return ""
}

func buildView(g *game.Game, snap game.Snapshot, id string) ai.GameView {
	hand, _ := g.Hand(id)
	view := ai.GameView{Hand: hand, TableRequired: snap.TableRequired}
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
