package worker

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lfcamargo/crm-leads/internal/usecase"
)

// StaleLeadWorker periodically flags active NEW/CONTACTED leads that have had
// no contact inside the follow-up window and alerts their owners. Read-only
// against business state: it never mutates leads.
type StaleLeadWorker struct {
	db           *sql.DB
	notifier     usecase.Notifier
	staleWindow  time.Duration
	tickInterval time.Duration
}

func NewStaleLeadWorker(db *sql.DB, notifier usecase.Notifier, staleWindow time.Duration) *StaleLeadWorker {
	if staleWindow <= 0 {
		staleWindow = 14 * 24 * time.Hour
	}
	return &StaleLeadWorker{
		db:           db,
		notifier:     notifier,
		staleWindow:  staleWindow,
		tickInterval: time.Hour,
	}
}

func (w *StaleLeadWorker) Start(ctx context.Context) {
	log.Printf("stale lead worker started (window %s)", w.staleWindow)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.scanStaleLeads(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("stale lead worker stopped")
			return
		case <-ticker.C:
			w.scanStaleLeads(ctx)
		}
	}
}

func (w *StaleLeadWorker) scanStaleLeads(ctx context.Context) {
	query := `
		SELECT id, first_name, last_name, assigned_to, last_contact_date
		FROM leads
		WHERE active = TRUE
		  AND status IN ('NEW', 'CONTACTED')
		  AND last_contact_date < NOW() - $1::interval
	`

	interval := fmt.Sprintf("%d seconds", int(w.staleWindow.Seconds()))
	rows, err := w.db.QueryContext(ctx, query, interval)
	if err != nil {
		log.Printf("stale lead scan failed: %v", err)
		return
	}
	defer rows.Close()

	staleCount := 0
	for rows.Next() {
		var id, firstName, lastName, assignedTo string
		var lastContact time.Time

		if err := rows.Scan(&id, &firstName, &lastName, &assignedTo, &lastContact); err != nil {
			log.Printf("failed to scan stale lead row: %v", err)
			continue
		}

		idle := time.Since(lastContact).Round(time.Hour)
		w.notifier.SendNotification(ctx, assignedTo,
			fmt.Sprintf("Lead %s %s has had no contact for %s, consider a follow-up", firstName, lastName, idle),
			usecase.NotificationWarning)
		staleCount++
	}

	if staleCount > 0 {
		log.Printf("%d stale lead(s) flagged for follow-up", staleCount)
	}
}
