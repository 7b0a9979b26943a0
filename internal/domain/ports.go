package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ObjectKind classifies a resolved repository object.
type ObjectKind int

const (
	ObjectKindCommit ObjectKind = iota
	ObjectKindTag
	ObjectKindOther
)

// TagInfo is the metadata of an annotated tag object.
type TagInfo struct {
	Tagger  Person
	Message string
}

// ResolvedObject is the result of resolving a hash in the repository.
type ResolvedObject struct {
	Kind ObjectKind
	// Tag is populated when Kind is ObjectKindTag.
	Tag TagInfo
}

// ErrObjectNotFound is returned by RepositoryReader when a hash does not
// resolve, as opposed to an I/O failure reading repository state.
var ErrObjectNotFound = errors.New("object not found")

// RepositoryReader is the read-only view of the repository the validation
// engine needs. Implementations must return ErrObjectNotFound for missing
// objects and a distinct error for I/O failures.
type RepositoryReader interface {
	// ResolveObject classifies the object behind a hash.
	ResolveObject(hash string) (ResolvedObject, error)

	// ListBranchTips returns the hashes currently pointed at by every
	// branch ref in the repository.
	ListBranchTips() ([]string, error)

	// CommitsReachableFromExcluding returns the commits reachable from
	// "to" that are not reachable from any hash in exclude, each commit
	// once, in a deterministic order.
	CommitsReachableFromExcluding(to string, exclude []string) ([]Commit, error)
}

// UserProvider resolves the authenticated principal for the current push.
// A nil user with nil error means no principal is available.
type UserProvider interface {
	CurrentUser() (*User, error)
}

// TrackerEndpoint is one configured issue tracker connection.
// Blocking calls take a context; the caller bounds each call with the
// configured tracker timeout.
type TrackerEndpoint interface {
	Name() string

	// IssueExists reports whether the issue exists on this endpoint.
	IssueExists(ctx context.Context, key IssueKey) (bool, error)

	// ProjectExists reports whether the project key exists on this endpoint.
	ProjectExists(ctx context.Context, projectKey string) (bool, error)

	// IssueMatchesQuery reports whether the issue satisfies the query.
	// Implementations return ErrIssueNotFound when the endpoint's error
	// response names the issue itself (older servers fail the whole query
	// instead of returning an empty result).
	IssueMatchesQuery(ctx context.Context, jql string, key IssueKey) (bool, error)

	// ValidateQuery reports whether the tracker accepts jql as
	// syntactically valid.
	ValidateQuery(ctx context.Context, jql string) (bool, error)
}

// ErrIssueNotFound marks a query failure that actually means the issue does
// not exist on that endpoint. See TrackerEndpoint.IssueMatchesQuery.
var ErrIssueNotFound = errors.New("issue not found on endpoint")

// TrackerRegistry lists the tracker endpoints linked to the installation.
type TrackerRegistry interface {
	LinkedEndpoints() []TrackerEndpoint
}

// AuthenticationError is returned by tracker endpoints when the request was
// rejected for missing or invalid credentials. AuthURL, when known, points
// the pusher at the page where they can re-link their account.
type AuthenticationError struct {
	AuthURL string
}

func (e *AuthenticationError) Error() string {
	if e.AuthURL == "" {
		return "authentication with the issue tracker failed"
	}
	return "authentication with the issue tracker failed, visit " + e.AuthURL + " to authenticate"
}

// QuerySyntaxError is returned when the tracker rejects a query as invalid.
type QuerySyntaxError struct {
	Messages []string
}

func (e *QuerySyntaxError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// StatusError is returned for unexpected tracker HTTP statuses.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response received. Status code: %d", e.StatusCode)
}
