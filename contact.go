package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

type ContactMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContactRelay accepts contact form submissions and forwards them by email
// when a relay is configured.
//
// Delivery is best effort: a missing relay, an unknown recipient or a failed
// send is logged and the caller still gets success. The form must not look
// broken to a visitor because the mail settings are wrong.
type ContactRelay struct {
	mailer    Mailer // nil when no relay is configured
	recipient string
	timeout   time.Duration
	contacts  *Store[Contact]
}

func NewContactRelay(cfg Config, mailer Mailer, contacts *Store[Contact]) *ContactRelay {
	return &ContactRelay{
		mailer:    mailer,
		recipient: cfg.ContactEmail,
		timeout:   cfg.SMTPTimeout,
		contacts:  contacts,
	}
}

// SendMessage handles POST /api/contact/message
func (h *ContactRelay) SendMessage(w http.ResponseWriter, r *http.Request) {
	var msg ContactMessage
	if err := decodePayload(r, &msg); err != nil {
		writePayloadError(w, err)
		return
	}

	slog.Info("contact form submission",
		"name", *msg.Name,
		"email", *msg.Email,
		"subject", *msg.Subject,
	)

	h.deliver(r.Context(), msg)

	writeJSON(w, http.StatusOK, ContactMessageResponse{
		Success: true,
		Message: "Your message has been sent successfully!",
	})
}

func (h *ContactRelay) deliver(ctx context.Context, msg ContactMessage) {
	if h.mailer == nil {
		slog.Info("mail relay not configured, message logged only")
		return
	}

	to, err := h.resolveRecipient(ctx)
	if err != nil {
		slog.Warn("no recipient for contact message", "error", err)
		return
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if err := h.mailer.Send(ctx, to, msg); err != nil {
		slog.Error("failed to send contact email", "to", to, "error", err)
		return
	}
	slog.Info("contact email sent", "to", to)
}

var errNoRecipient = errors.New("CONTACT_EMAIL unset and no contact email stored")

// resolveRecipient prefers CONTACT_EMAIL, then the email on the stored
// contact record.
func (h *ContactRelay) resolveRecipient(ctx context.Context) (string, error) {
	if h.recipient != "" {
		return h.recipient, nil
	}
	contact, err := h.contacts.First(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", errNoRecipient
		}
		return "", err
	}
	if contact.Email == "" {
		return "", errNoRecipient
	}
	return contact.Email, nil
}
