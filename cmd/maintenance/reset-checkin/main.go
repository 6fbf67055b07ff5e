package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/onewave/qrcheckin-backend/internal/config"
	"github.com/onewave/qrcheckin-backend/internal/database"
	"github.com/onewave/qrcheckin-backend/internal/services"
)

func main() {
	var (
		dayFlag    string
		resetFlags bool
	)
	flag.StringVar(&dayFlag, "day", "", "ledger day to wipe, YYYY-MM-DD (defaults to today in event time)")
	flag.BoolVar(&resetFlags, "reset-flags", false, "also clear the check-in fields on every participant record")
	flag.Parse()

	// Try loading .env from current working directory (optional)
	_ = godotenv.Load()

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		log.Fatal("FIREBASE_PROJECT_ID is not set")
	}

	ctx := context.Background()
	db, err := database.NewConnection(ctx, config.FirestoreConfig{
		ProjectID:       projectID,
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	})
	if err != nil {
		log.Fatalf("failed to connect to Firestore: %v", err)
	}
	defer db.Close()

	day := dayFlag
	if day == "" {
		day = services.DayString(time.Now())
	}

	fmt.Printf("Wiping check-in ledger for %s...\n", day)

	ledgerRepo := database.NewLedgerRepository(db)
	removed, err := ledgerRepo.ResetDay(ctx, day)
	if err != nil {
		log.Fatalf("failed to wipe ledger: %v", err)
	}
	fmt.Printf("Removed %d ledger entries.\n", removed)

	if resetFlags {
		fmt.Println("Clearing check-in fields on participant records...")
		participantRepo := database.NewParticipantRepository(db)
		touched, err := participantRepo.ResetCheckinFlags(ctx, time.Now())
		if err != nil {
			log.Fatalf("failed to reset participant flags: %v", err)
		}
		fmt.Printf("Reset %d participant records.\n", touched)
	}

	fmt.Println("Done.")
}
