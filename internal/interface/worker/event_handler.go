// Package worker turns domain events from the events queue into side effects.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/internal/domain/event"
	"github.com/oksasatya/artwork-marketplace/pkg/mailer"
	mailtpl "github.com/oksasatya/artwork-marketplace/pkg/mailer/templates"
)

// ErrPermanent marks messages that will never succeed and must not be requeued.
var ErrPermanent = errors.New("permanent event failure")

type EventHandler struct {
	Mail    mailer.Sender // nil disables email
	AppName string
	Logger  *logrus.Logger
}

func NewEventHandler(mail mailer.Sender, appName string, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Mail: mail, AppName: appName, Logger: logger}
}

// Handle processes one message body. Errors wrapping ErrPermanent should be
// dropped; any other error is worth a retry.
func (h *EventHandler) Handle(ctx context.Context, body []byte) error {
	var env event.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return oops.Code("EVENT_MALFORMED").Wrap(errors.Join(ErrPermanent, err))
	}
	log := h.Logger.WithFields(logrus.Fields{"event_id": env.ID, "event": env.Type})

	switch env.Type {
	case event.UserRegistered:
		var d event.UserRegisteredData
		if err := env.Decode(&d); err != nil {
			return oops.Code("EVENT_MALFORMED").With("event", env.Type).Wrap(errors.Join(ErrPermanent, err))
		}
		return h.welcome(ctx, log, env.OccurredAt, d)
	case event.ArtworkCreated, event.ReviewCreated:
		log.Debug("event acknowledged")
		return nil
	default:
		log.Warn("unknown event type, dropping")
		return nil
	}
}

func (h *EventHandler) welcome(ctx context.Context, log *logrus.Entry, at time.Time, d event.UserRegisteredData) error {
	if h.Mail == nil {
		log.WithField("user_id", d.UserID).Info("mail disabled, skipping welcome email")
		return nil
	}
	job := mailer.EmailJob{
		To:       d.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(h.AppName, d.Name, d.Email, mailtpl.WithArtist(d.IsArtist), mailtpl.WithTime(at)),
	}
	if err := job.Render(); err != nil {
		return oops.Code("WELCOME_RENDER_FAILED").With("user_id", d.UserID).Wrap(errors.Join(ErrPermanent, err))
	}
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := h.Mail.Send(c, job.To, job.Subject, job.Text, job.HTML); err != nil {
		return oops.Code("WELCOME_SEND_FAILED").With("user_id", d.UserID).Wrap(err)
	}
	log.WithField("user_id", d.UserID).Info("welcome email sent")
	return nil
}
