// Package remote pulls the upstream user listing. The fetch is a single
// attempt with no retry; any transport or status failure is reported as
// model.ErrorFetchFailed.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AndiEkaNugraha/table-user-management/internal/model"
)

type service struct {
	endpoint string
	client   *http.Client
}

func New(endpoint string) *service {
	return &service{
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

// Fetch retrieves the remote listing and applies the local-only defaults to
// each record: no email, no age, active status. The result is meant to
// replace the cached collection wholesale, not merge into it.
func (s *service) Fetch(ctx context.Context) ([]model.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrorFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status code %d", model.ErrorFetchFailed, resp.StatusCode)
	}

	var users []model.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", model.ErrorFetchFailed, err)
	}

	for i := range users {
		users[i].Email = nil
		users[i].Age = nil
		users[i].Status = true
	}

	return users, nil
}
