package main

import (
	"batepapo/domain"
	"batepapo/internal"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
)

func main() {
	// 1. Load config
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// 2. Open Badger in read-only mode
	// Note: BypassLockGuard allows opening while the API process holds the lock
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// 3. Start the inspector and keep the process alive
	fmt.Printf("Viewer started at http://localhost:%d/inspect\n", config.DebugPort)
	database.StartDebugServer(db, config.DebugPort, "/inspect", RecordMapper)
	select {}
}

// RecordMapper decodes participant and message records for the inspector
// rows; anything else falls back to the raw default view.
func RecordMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	var m domain.Message
	if err := json.Unmarshal(val, &m); err == nil && m.ID != "" {
		row.Type = "MSG"
		row.Detail = fmt.Sprintf("[%s] %s -> %s (%s): %s", m.Time, m.From, m.To, m.Type, m.Text)
		return row
	}

	var p domain.Participant
	if err := json.Unmarshal(val, &p); err == nil && p.Name != "" {
		row.Type = "PARTICIPANT"
		row.Detail = fmt.Sprintf("%s lastStatus=%d", p.Name, p.LastStatus)
	}
	return row
}
