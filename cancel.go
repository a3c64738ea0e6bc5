package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// Cancel deletes the calendar event with notifications enabled and reports
// whether the deletion was confirmed. It never panics past this boundary; any
// remote error (including an unknown event id) yields false.
//
// The ledger row is intentionally left in place: the ledger stays accurate
// for "was booked" and goes stale for "is still active".
func (a *App) Cancel(ctx context.Context, eventID string) bool {
	if strings.TrimSpace(eventID) == "" {
		return false
	}
	if err := a.calendar.Delete(ctx, eventID, true); err != nil {
		log.Printf("Cancellation of event %s failed: %v", eventID, err)
		return false
	}
	printVerbosely(1, "  🗑 Calendar event %s cancelled\n", eventID)
	return true
}

func runCancel(config *Config, args []string) {
	if len(args) < 1 {
		log.Fatalf("Usage: citasync cancel <event-id>")
	}

	ctx := context.Background()
	app, err := newApp(ctx, config)
	if err != nil {
		log.Fatalf("Error initializing: %v", err)
	}
	defer app.Close()

	if !app.Cancel(ctx, args[0]) {
		fmt.Printf("❌ Could not cancel event %s\n", args[0])
		os.Exit(1)
	}
	fmt.Printf("✅ Appointment cancelled, the client has been notified\n")
}
