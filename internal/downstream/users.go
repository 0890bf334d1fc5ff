package downstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bookaroo/create-event-service/internal/domain"
)

// UserClient queries the interest registry of the user-management
// collaborator.
type UserClient struct {
	baseURL string
	client  *Client
}

func NewUserClient(baseURL string, client *Client) *UserClient {
	return &UserClient{baseURL: baseURL, client: client}
}

// GetInterestedUsers returns the users subscribed to a category. An
// empty list is a normal answer, not an error.
func (c *UserClient) GetInterestedUsers(ctx context.Context, category string) ([]domain.InterestedUser, error) {
	u := fmt.Sprintf("%s/api/userinterests/getusers/%s", c.baseURL, url.PathEscape(category))

	resp, err := c.client.Get(ctx, u, nil)
	if err != nil {
		return nil, domain.ErrCollaborator("user-management service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrCollaborator(
			fmt.Sprintf("user-management service returned status %d", resp.StatusCode), nil)
	}

	var users []domain.InterestedUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, domain.ErrCollaborator("malformed user-management response", err)
	}

	return users, nil
}
