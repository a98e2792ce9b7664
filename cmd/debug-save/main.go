package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/skirmish/internal/config"
	"github.com/KirkDiggler/skirmish/internal/repositories/saves"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: debug-save <save-id> | debug-save -owner <owner-id>")
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	redisURL := cfg.Redis.URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	ctx := context.Background()
	client := redis.NewClient(opts)

	// Test connection first
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}
	defer func() {
		clientErr := client.Close()
		if clientErr != nil {
			log.Printf("Failed to close Redis connection: %v", clientErr)
		}
	}()

	repo := saves.NewRedis(client)

	if os.Args[1] == "-owner" {
		if len(os.Args) < 3 {
			log.Println("Missing owner id")
			return
		}
		list, err := repo.ListByOwner(ctx, os.Args[2])
		if err != nil {
			log.Printf("Failed to list saves: %v", err)
			return
		}
		fmt.Printf("Owner %s has %d saves\n", os.Args[2], len(list))
		for _, save := range list {
			fmt.Printf("  %s: %s level %d (updated %s)\n",
				save.ID, save.Character.Name, save.Character.Level, save.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return
	}

	save, err := repo.Get(ctx, os.Args[1])
	if err != nil {
		log.Printf("Failed to get save: %v", err)
		return
	}

	hero := save.Character
	stats := hero.Stats()
	fmt.Printf("Save ID: %s\n", save.ID)
	fmt.Printf("Owner: %s\n", save.OwnerID)
	fmt.Printf("Hero: %s (%s)\n", hero.Name, hero.Class)
	fmt.Printf("Level: %d (%d xp)\n", hero.Level, hero.Experience)
	fmt.Printf("HP: %d/%d  Mana: %d/%d\n", stats.Health, stats.MaxHealth, stats.Mana, stats.MaxMana)
	fmt.Printf("Attack: %d  Defense: %d  Speed: %d\n", stats.Attack, stats.Defense, stats.Speed)

	inv := save.Inventory
	fmt.Printf("Inventory: %d/%d slots, %d items, worth %d\n", inv.SlotCount(), inv.MaxSlots(), inv.ItemCount(), inv.TotalValue())
	for _, it := range inv.GetAllItems() {
		fmt.Printf("  %s: %s x%d (%s)\n", it.GetID(), it.GetName(), it.GetQuantity(), it.GetType())
	}
}
