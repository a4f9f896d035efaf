package directory

import (
	"context"
	"sync"

	"chat-client/internal/api"
	"chat-client/internal/models"
)

// UserDirectory maps user ids to profiles and remembers the session's own
// identity.
type UserDirectory struct {
	api api.UserAPI

	mu    sync.RWMutex
	users map[string]models.User
	self  models.User
}

// NewUserDirectory constructs an empty UserDirectory.
func NewUserDirectory(userAPI api.UserAPI) *UserDirectory {
	return &UserDirectory{
		api:   userAPI,
		users: make(map[string]models.User),
	}
}

// Load fetches the user list and the session identity.
func (d *UserDirectory) Load(ctx context.Context) error {
	users, err := d.api.ListUsers(ctx)
	if err != nil {
		return err
	}
	self, err := d.api.Self(ctx)
	if err != nil {
		return err
	}

	d.mu.Lock()
	for _, user := range users {
		d.users[user.ID] = user
	}
	d.self = self
	d.mu.Unlock()
	return nil
}

// Lookup returns the profile for a user id from the local index.
func (d *UserDirectory) Lookup(id string) (models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.users[id]
	return user, ok
}

// Self returns the session's own identity.
func (d *UserDirectory) Self() models.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.self
}
