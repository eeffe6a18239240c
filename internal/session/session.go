// Package session holds the identity of the current caller and the guards
// that gate uploads and moderation.
package session

import (
	"github.com/P3chys/scholarshub-api/internal/apperrors"
	"github.com/P3chys/scholarshub-api/internal/models"
)

// Context carries at most one authenticated user. The zero value is an
// anonymous session.
type Context struct {
	user *models.User
}

func New() *Context {
	return &Context{}
}

// For returns a context already logged in as u.
func For(u models.User) *Context {
	c := New()
	c.Login(u)
	return c
}

// Login replaces any existing identity.
func (c *Context) Login(u models.User) {
	c.user = &u
}

func (c *Context) Logout() {
	c.user = nil
}

// User returns a copy of the identity, or nil when anonymous.
func (c *Context) User() *models.User {
	if c == nil || c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// RequireUser allows any authenticated role.
func (c *Context) RequireUser() (models.User, error) {
	u := c.User()
	if u == nil {
		return models.User{}, apperrors.Clone(apperrors.ErrUnauthorized, "login required")
	}
	return *u, nil
}

// RequireAdmin allows only the admin role.
func (c *Context) RequireAdmin() (models.User, error) {
	u, err := c.RequireUser()
	if err != nil {
		return models.User{}, err
	}
	if !u.IsAdmin() {
		return models.User{}, apperrors.Clone(apperrors.ErrForbidden, "admin access required")
	}
	return u, nil
}
