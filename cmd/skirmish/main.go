package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/skirmish/internal/clients/dnd5e"
	"github.com/KirkDiggler/skirmish/internal/config"
	"github.com/KirkDiggler/skirmish/internal/domain/character"
	"github.com/KirkDiggler/skirmish/internal/domain/combat"
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
	"github.com/KirkDiggler/skirmish/internal/repositories/saves"
	"github.com/KirkDiggler/skirmish/internal/services"
	"github.com/KirkDiggler/skirmish/internal/services/skirmish"
	"github.com/KirkDiggler/skirmish/internal/telemetry"
)

func main() {
	owner := flag.String("owner", "local", "owner of the save slot")
	saveID := flag.String("save", "", "continue an existing save instead of creating a hero")
	name := flag.String("name", "Hero", "name of a new hero")
	class := flag.String("class", string(character.ClassWarrior), "class of a new hero: warrior, mage or rogue")
	monsters := flag.String("monsters", "goblin", "comma separated bestiary keys")
	rest := flag.Bool("rest", false, "rest the hero of -save and exit")
	use := flag.String("use", "", "use an item from the pack of -save and exit")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "skirmish", cfg.Telemetry)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Failed to flush traces: %v", err)
		}
	}()

	providerConfig := &services.ProviderConfig{Config: cfg}

	if cfg.Bestiary.Source == config.BestiaryDND5E {
		dndClient, err := dnd5e.New(&dnd5e.Config{
			HttpClient: &http.Client{Timeout: cfg.Bestiary.DND5ETimeout},
		})
		if err != nil {
			log.Fatalf("Failed to create D&D 5e client: %v", err)
		}
		providerConfig.DNDClient = dndClient
	}

	if cfg.Redis.URL != "" {
		client, err := connectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			log.Println("Falling back to in-memory saves")
		} else {
			defer func() {
				if err := client.Close(); err != nil {
					log.Printf("Failed to close Redis connection: %v", err)
				}
			}()
			providerConfig.SaveRepository = saves.NewRedis(client)
			log.Println("Using Redis for saves")
		}
	} else {
		log.Println("No SKIRMISH_REDIS_URL found, using in-memory saves")
	}

	provider := services.NewProvider(providerConfig)

	req := &request{
		owner:    *owner,
		saveID:   *saveID,
		name:     *name,
		class:    *class,
		monsters: *monsters,
		rest:     *rest,
		use:      *use,
	}
	if err := execute(ctx, provider.SkirmishService, req, os.Stdout); err != nil {
		log.Fatalf("%v (code %s)", err, dnderr.GetCode(err))
	}
}

// request is what the command line asked for
type request struct {
	owner    string
	saveID   string
	name     string
	class    string
	monsters string
	rest     bool
	use      string
}

// execute runs one rest, item use or skirmish and prints the result to w
func execute(ctx context.Context, svc skirmish.Service, req *request, w io.Writer) error {
	switch {
	case req.rest:
		save, err := svc.Rest(ctx, req.saveID)
		if err != nil {
			return dnderr.Wrap(err, "failed to rest")
		}
		stats := save.Character.Stats()
		fmt.Fprintf(w, "%s rests: %d/%d HP, %d/%d mana\n", save.Character.Name, stats.Health, stats.MaxHealth, stats.Mana, stats.MaxMana)
		return nil
	case req.use != "":
		used, err := svc.UseItem(ctx, req.saveID, req.use)
		if err != nil {
			return dnderr.Wrapf(err, "failed to use %s", req.use)
		}
		if !used {
			fmt.Fprintf(w, "Nothing to use for %s\n", req.use)
			return nil
		}
		fmt.Fprintf(w, "Used %s\n", req.use)
		return nil
	}

	outcome, err := svc.Run(ctx, &skirmish.RunInput{
		OwnerID:   req.owner,
		SaveID:    req.saveID,
		HeroName:  req.name,
		HeroClass: character.Class(strings.ToLower(req.class)),
		Monsters:  splitKeys(req.monsters),
	})
	if err != nil {
		return dnderr.Wrap(err, "skirmish failed")
	}

	printOutcome(w, outcome)
	return nil
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

func splitKeys(s string) []string {
	var keys []string
	for _, key := range strings.Split(s, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func printOutcome(w io.Writer, outcome *skirmish.Outcome) {
	result := outcome.Result
	for _, action := range result.Actions {
		fmt.Fprintf(w, "%3d  %s\n", action.Turn, describe(action))
	}

	fmt.Fprintln(w)
	switch {
	case result.Stalemate:
		fmt.Fprintf(w, "Stalemate after %d turns\n", result.Turns)
	default:
		fmt.Fprintf(w, "%s wins after %d turns\n", result.Winner, result.Turns)
	}

	hero := outcome.Save.Character
	stats := hero.Stats()
	fmt.Fprintf(w, "%s: level %d, %d xp, %d/%d HP (save %s)\n",
		hero.Name, hero.Level, hero.Experience, stats.Health, stats.MaxHealth, outcome.Save.ID)
	if outcome.LevelsGained > 0 {
		fmt.Fprintf(w, "Level up!\n")
	}
	for _, it := range outcome.Added {
		fmt.Fprintf(w, "Looted %dx %s\n", it.GetQuantity(), it.GetName())
	}
	for _, it := range outcome.Discarded {
		fmt.Fprintf(w, "Left behind %dx %s (pack full)\n", it.GetQuantity(), it.GetName())
	}
}

func describe(action combat.CombatAction) string {
	switch action.Kind {
	case combat.ActionAttack:
		var b strings.Builder
		fmt.Fprintf(&b, "%s hits %s", action.Actor, action.Target)
		if action.Damage != nil {
			fmt.Fprintf(&b, " for %d", *action.Damage)
		}
		if action.Special {
			b.WriteString(" with a special attack")
		}
		if action.Critical {
			b.WriteString(" (critical)")
		}
		return b.String()
	case combat.ActionDefend:
		return fmt.Sprintf("%s defends", action.Actor)
	default:
		return fmt.Sprintf("%s %s", action.Actor, action.Kind)
	}
}
