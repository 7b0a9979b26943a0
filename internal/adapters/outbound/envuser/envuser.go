// Package envuser resolves the authenticated pusher from environment
// variables set by the hosting service before it invokes the hook.
package envuser

import (
	"os"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

const (
	// EnvPusherName and friends are set by the hook wrapper.
	EnvPusherName    = "YACC_PUSHER_NAME"
	EnvPusherEmail   = "YACC_PUSHER_EMAIL"
	EnvPusherService = "YACC_PUSHER_SERVICE"
)

// Provider implements domain.UserProvider from the process environment.
type Provider struct{}

// New creates a Provider.
func New() *Provider { return &Provider{} }

// CurrentUser returns the pusher identity, or nil when the hosting service
// provided none. The absence of a principal is the host's fault, never the
// push author's, so callers skip identity checks in that case.
func (p *Provider) CurrentUser() (*domain.User, error) {
	name, ok := os.LookupEnv(EnvPusherName)
	if !ok {
		return nil, nil
	}

	return &domain.User{
		Name:      name,
		Email:     os.Getenv(EnvPusherEmail),
		IsService: os.Getenv(EnvPusherService) == "true",
	}, nil
}
