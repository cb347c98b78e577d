package usecase

import "context"

// Notifier pushes league happenings to external subscribers. Publishing is
// fire-and-forget from the caller's point of view; implementations handle
// delivery, retries and backpressure themselves.
type Notifier interface {
	Publish(ctx context.Context, eventType string, payload any)
}

type noopNotifier struct{}

func (noopNotifier) Publish(context.Context, string, any) {}

// NopNotifier is used when no webhook endpoint is configured.
func NopNotifier() Notifier { return noopNotifier{} }
