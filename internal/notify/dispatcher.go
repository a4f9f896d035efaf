// Package notify decides when an inbound message warrants a user-facing
// notification and formats it.
package notify

import (
	"log"

	"chat-client/internal/directory"
	"chat-client/internal/models"
	"chat-client/internal/observability"
)

// Notification payload bodies are cut at this many characters.
const maxBodyLength = 256

// Notifier presents a notification to the user.
type Notifier interface {
	Notify(title, body string) error
}

// Dispatcher raises a notification for messages authored by other users.
type Dispatcher struct {
	users    *directory.UserDirectory
	notifier Notifier
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(users *directory.UserDirectory, notifier Notifier) *Dispatcher {
	return &Dispatcher{users: users, notifier: notifier}
}

// MessageReceived raises a notification for msg unless the session's own user
// authored it. The title is the room's display name; the body is
// "<author>: <message body>" with the message body truncated. Notifier
// failures are logged, never propagated.
func (d *Dispatcher) MessageReceived(room models.Room, msg models.Message) {
	if msg.AuthorID == d.users.Self().ID {
		return
	}

	name := "someone"
	if author, ok := d.users.Lookup(msg.AuthorID); ok {
		name = author.Name
	}

	if err := d.notifier.Notify(room.Name, name+": "+truncate(msg.Body, maxBodyLength)); err != nil {
		log.Printf("notification failed: %v", err)
		return
	}
	observability.IncNotification()
}

// truncate cuts s at max characters, with no ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
