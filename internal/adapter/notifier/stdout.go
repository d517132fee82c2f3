package notifier

import (
	"context"
	"fmt"

	"github.com/harbourview/aptly/internal/domain"
)

// StdoutBroadcaster is an implementation of Broadcaster that prints to
// standard output. Used when no redis address is configured.
type StdoutBroadcaster struct{}

// NewStdoutBroadcaster creates a new StdoutBroadcaster.
func NewStdoutBroadcaster() *StdoutBroadcaster {
	return &StdoutBroadcaster{}
}

// Broadcast prints the alert details to stdout.
func (b *StdoutBroadcaster) Broadcast(ctx context.Context, apartment string, alert *domain.SafetyAlert) error {
	fmt.Printf(
		"--- SAFETY ALERT ---\nApartment: %s\nTitle: %s\nDescription: %s\n--------------------\n",
		apartment,
		alert.Title,
		alert.Description,
	)
	return nil
}
