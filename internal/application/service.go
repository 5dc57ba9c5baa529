package application

import (
	"context"
	"expvar"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/internal/domain/event"
)

// Process counters, served on /debug/vars.
var (
	registrations = expvar.NewInt("artmarket_registrations")
	logins        = expvar.NewInt("artmarket_logins")
	failedLogins  = expvar.NewInt("artmarket_failed_logins")
)

// EventPublisher puts a JSON message on the events queue. *helpers.RabbitPublisher implements it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// emitter publishes domain events when a publisher is configured. Publishing is
// best effort: the write has already committed, so failures are only logged.
type emitter struct {
	pub    EventPublisher
	logger *logrus.Logger
}

func (e emitter) emit(ctx context.Context, typ event.Type, data any) {
	if e.pub == nil {
		return
	}
	env, err := event.New(typ, data)
	if err == nil {
		err = e.pub.PublishJSON(ctx, env)
	}
	if err != nil && e.logger != nil {
		e.logger.WithError(err).WithField("event", typ).Warn("publish event failed")
	}
}
