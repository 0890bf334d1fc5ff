package downstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bookaroo/create-event-service/internal/domain"
)

// EventsClient creates events through the events collaborator.
type EventsClient struct {
	baseURL string
	client  *Client
}

func NewEventsClient(baseURL string, client *Client) *EventsClient {
	return &EventsClient{baseURL: baseURL, client: client}
}

// CreateEvent issues exactly one creation request. No retry: the
// orchestrator must not silently duplicate a creation; idempotency is
// the collaborator's responsibility.
func (c *EventsClient) CreateEvent(ctx context.Context, bearerToken string, event domain.PersistableEvent) (*domain.CreatedEvent, error) {
	jsonBody, err := json.Marshal(event)
	if err != nil {
		return nil, domain.ErrCollaborator("failed to encode event payload", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if bearerToken != "" {
		headers["Authorization"] = bearerToken
	}

	u := fmt.Sprintf("%s/create", c.baseURL)
	resp, err := c.client.DoWithBody(ctx, http.MethodPost, u, bytes.NewReader(jsonBody), headers)
	if err != nil {
		return nil, domain.ErrCollaborator("events service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, domain.ErrCollaborator(
			fmt.Sprintf("events service returned status %d", resp.StatusCode), nil)
	}

	var created domain.CreatedEvent
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, domain.ErrCollaborator("malformed events service response", err)
	}

	if created.ID == "" {
		return nil, domain.ErrCollaborator("events service returned an empty event id", nil)
	}

	return &created, nil
}
