package jira

import (
	"net/http"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

// Registry implements domain.TrackerRegistry over a static endpoint list.
// Configuration order is preserved; the first endpoint is the primary one.
type Registry struct {
	endpoints []domain.TrackerEndpoint
}

// NewRegistry builds one Endpoint per configuration entry, sharing a single
// HTTP client.
func NewRegistry(configs []domain.EndpointConfig) *Registry {
	client := &http.Client{}

	endpoints := make([]domain.TrackerEndpoint, 0, len(configs))
	for _, cfg := range configs {
		endpoints = append(endpoints, NewEndpoint(cfg, client))
	}

	return &Registry{endpoints: endpoints}
}

func (r *Registry) LinkedEndpoints() []domain.TrackerEndpoint {
	return r.endpoints
}
