package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/skirmish/internal/config"
	"github.com/KirkDiggler/skirmish/internal/dice"
	"github.com/KirkDiggler/skirmish/internal/domain/character"
	"github.com/KirkDiggler/skirmish/internal/domain/combat"
	"github.com/KirkDiggler/skirmish/internal/services/bestiary"
	"github.com/KirkDiggler/skirmish/internal/services/loot"
)

// tally aggregates independent runs
type tally struct {
	mu         sync.Mutex
	runs       int
	wins       int
	stalemates int
	turns      int
	experience int
}

func (t *tally) add(result *combat.CombatResult, won bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.runs++
	t.turns += result.Turns
	t.experience += result.Experience
	if won {
		t.wins++
	}
	if result.Stalemate {
		t.stalemates++
	}
}

func main() {
	runs := flag.Int("runs", 1000, "number of independent skirmishes")
	workers := flag.Int("workers", runtime.NumCPU(), "skirmishes resolved at once")
	class := flag.String("class", string(character.ClassWarrior), "hero class")
	monsters := flag.String("monsters", "goblin,goblin", "comma separated bestiary keys")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	keys := strings.Split(*monsters, ",")
	source := bestiary.NewStaticSource(nil)
	table := loot.DefaultTable()
	results := &tally{}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)

	for i := 0; i < *runs; i++ {
		// Each run owns its roller; seeded runs stay reproducible regardless of scheduling
		seed := cfg.Combat.Seed
		if seed != 0 {
			seed += int64(i)
		}

		g.Go(func() error {
			hero, err := character.New("Hero", character.Class(*class))
			if err != nil {
				return err
			}

			adversaries := make([]*character.Character, 0, len(keys))
			for _, key := range keys {
				monster, err := source.Spawn(ctx, strings.TrimSpace(key))
				if err != nil {
					return err
				}
				adversaries = append(adversaries, monster)
			}

			resolver := combat.NewResolver(&combat.ResolverConfig{
				Roller:   dice.NewRandomRoller(seed),
				Loot:     table,
				MaxTurns: cfg.Combat.MaxTurns,
			})

			result, err := resolver.Resolve(ctx, hero, adversaries)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}

			results.add(result, hero.IsAlive() && !result.Stalemate)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	if results.runs == 0 {
		fmt.Println("No runs")
		return
	}

	n := float64(results.runs)
	fmt.Printf("Runs:        %d\n", results.runs)
	fmt.Printf("Win rate:    %.1f%%\n", 100*float64(results.wins)/n)
	fmt.Printf("Stalemates:  %d\n", results.stalemates)
	fmt.Printf("Mean turns:  %.2f\n", float64(results.turns)/n)
	fmt.Printf("Mean xp:     %.2f\n", float64(results.experience)/n)
}
