// Package jira implements domain.TrackerEndpoint against the Jira REST API.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

// Endpoint talks to one Jira server.
type Endpoint struct {
	name     string
	baseURL  string
	username string
	token    string
	authURL  string
	client   *http.Client
}

// NewEndpoint builds an endpoint from its configuration. The client may be
// shared between endpoints; per-call deadlines come from the context.
func NewEndpoint(cfg domain.EndpointConfig, client *http.Client) *Endpoint {
	if client == nil {
		client = http.DefaultClient
	}
	return &Endpoint{
		name:     cfg.Name,
		baseURL:  strings.TrimSuffix(cfg.URL, "/"),
		username: cfg.Username,
		token:    cfg.Token,
		authURL:  cfg.AuthURL,
		client:   client,
	}
}

func (e *Endpoint) Name() string { return e.name }

// IssueExists checks the issue via GET /rest/api/2/issue/<key>.
func (e *Endpoint) IssueExists(ctx context.Context, key domain.IssueKey) (bool, error) {
	status, _, err := e.do(ctx, http.MethodGet,
		"/rest/api/2/issue/"+url.PathEscape(key.FullyQualified()), nil)
	if err != nil {
		return false, err
	}

	switch {
	case status == http.StatusOK:
		return true, nil
	case status == http.StatusNotFound:
		return false, nil
	case isAuthStatus(status):
		return false, &domain.AuthenticationError{AuthURL: e.authURL}
	default:
		return false, &domain.StatusError{StatusCode: status}
	}
}

// ProjectExists checks the project via GET /rest/api/2/project/<key> and
// confirms the response actually describes the requested project.
func (e *Endpoint) ProjectExists(ctx context.Context, projectKey string) (bool, error) {
	status, body, err := e.do(ctx, http.MethodGet,
		"/rest/api/2/project/"+url.PathEscape(projectKey), nil)
	if err != nil {
		return false, err
	}

	switch {
	case status == http.StatusOK:
		var project struct {
			Key string `json:"key"`
		}
		if err := json.Unmarshal(body, &project); err != nil {
			return false, fmt.Errorf("malformed project response: %w", err)
		}
		return project.Key == projectKey, nil
	case status == http.StatusNotFound:
		return false, nil
	case isAuthStatus(status):
		return false, &domain.AuthenticationError{AuthURL: e.authURL}
	default:
		return false, &domain.StatusError{StatusCode: status}
	}
}

// IssueMatchesQuery combines the user's query with an issueKey clause so a
// single-result search answers the question without paging.
func (e *Endpoint) IssueMatchesQuery(ctx context.Context, jql string, key domain.IssueKey) (bool, error) {
	combined := fmt.Sprintf("issueKey=%s and (%s)", key.FullyQualified(), jql)

	issues, err := e.search(ctx, combined)
	if err != nil {
		if queryErr, ok := err.(*domain.QuerySyntaxError); ok && namesIssue(queryErr, key) {
			// Older servers reject the combined query outright when the
			// issue does not exist, naming it in the error body.
			return false, domain.ErrIssueNotFound
		}
		return false, err
	}

	return len(issues) == 1, nil
}

// ValidateQuery runs the query as-is; Jira answers 400 for bad syntax.
func (e *Endpoint) ValidateQuery(ctx context.Context, jql string) (bool, error) {
	_, err := e.search(ctx, jql)
	if _, ok := err.(*domain.QuerySyntaxError); ok {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func namesIssue(err *domain.QuerySyntaxError, key domain.IssueKey) bool {
	for _, m := range err.Messages {
		if strings.Contains(m, key.FullyQualified()) {
			return true
		}
	}
	return false
}

// search POSTs to /rest/api/2/search and returns the matched issue keys.
func (e *Endpoint) search(ctx context.Context, jql string) ([]string, error) {
	request := map[string]any{
		"jql":        jql,
		"fields":     []string{"summary"},
		"maxResults": 1,
	}

	status, body, err := e.do(ctx, http.MethodPost, "/rest/api/2/search", request)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK:
		var response struct {
			Issues []struct {
				Key string `json:"key"`
			} `json:"issues"`
		}
		if err := json.Unmarshal(body, &response); err != nil {
			// The response could not be trusted; treat it as a transport
			// failure, not an answer.
			return nil, fmt.Errorf("malformed search response: %w", err)
		}
		keys := make([]string, 0, len(response.Issues))
		for _, issue := range response.Issues {
			keys = append(keys, issue.Key)
		}
		return keys, nil

	case status == http.StatusBadRequest:
		var response struct {
			ErrorMessages []string `json:"errorMessages"`
		}
		if err := json.Unmarshal(body, &response); err == nil && len(response.ErrorMessages) > 0 {
			return nil, &domain.QuerySyntaxError{Messages: response.ErrorMessages}
		}
		return nil, &domain.StatusError{StatusCode: status}

	case isAuthStatus(status):
		return nil, &domain.AuthenticationError{AuthURL: e.authURL}

	default:
		return nil, &domain.StatusError{StatusCode: status}
	}
}

func (e *Endpoint) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, e.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	switch {
	case e.username != "":
		req.SetBasicAuth(e.username, e.token)
	case e.token != "":
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}

	return resp.StatusCode, body, nil
}

func isAuthStatus(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
