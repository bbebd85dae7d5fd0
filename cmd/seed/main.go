// Command seed resets the courts table to the default facility layout:
// three badminton courts and three table-tennis tables.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/wlong0711/sporthall/internal/config"
	"github.com/wlong0711/sporthall/internal/database"
	"github.com/wlong0711/sporthall/internal/model"
	"github.com/wlong0711/sporthall/internal/repository"
)

var courts = []struct {
	name  string
	sport string
}{
	{"Court 1", model.SportBadminton},
	{"Court 2", model.SportBadminton},
	{"Court 3", model.SportBadminton},
	{"Table 1", model.SportTableTennis},
	{"Table 2", model.SportTableTennis},
	{"Table 3", model.SportTableTennis},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Existing bookings reference courts, so they go first.
	for _, stmt := range []string{
		"DELETE FROM booking_participants",
		"DELETE FROM bookings",
		"DELETE FROM availability",
		"DELETE FROM courts",
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("seed: %q failed: %v", stmt, err)
		}
	}
	log.Println("Cleared existing courts")

	repo := repository.NewCourtRepo(db)
	for _, c := range courts {
		created, err := repo.Create(ctx, c.name, c.sport)
		if err != nil {
			log.Fatalf("seed: create %s failed: %v", c.name, err)
		}
		log.Printf("  - %s (%s)", created.Name, created.Sport)
	}
	log.Printf("Created %d courts", len(courts))
}
