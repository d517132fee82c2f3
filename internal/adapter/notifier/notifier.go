package notifier

import (
	"context"

	"github.com/harbourview/aptly/internal/domain"
)

// Broadcaster defines the interface for fanning a safety alert out to the
// residents of one apartment complex. Broadcast failures are advisory; the
// alert is already persisted by the time Broadcast runs.
type Broadcaster interface {
	Broadcast(ctx context.Context, apartment string, alert *domain.SafetyAlert) error
}
