package downstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bookaroo/create-event-service/internal/domain"
	"github.com/bookaroo/create-event-service/internal/logger"
)

// NotificationClient sends e-mail-shaped messages through the
// notifications collaborator.
type NotificationClient struct {
	baseURL string
	client  *Client
}

func NewNotificationClient(baseURL string, client *Client) *NotificationClient {
	return &NotificationClient{baseURL: baseURL, client: client}
}

type notificationResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// SendEmail delivers one message. A blank recipient is not an error:
// the message is logged and discarded.
func (c *NotificationClient) SendEmail(ctx context.Context, msg domain.EmailMessage) error {
	if strings.TrimSpace(msg.Email) == "" {
		logger.Ctx(ctx).Warn().
			Str("subject", msg.Subject).
			Msg("dropping notification with empty recipient")
		return nil
	}

	jsonBody, err := json.Marshal(msg)
	if err != nil {
		return domain.ErrCollaborator("failed to encode notification payload", err)
	}

	u := fmt.Sprintf("%s/confirmation", c.baseURL)
	resp, err := c.client.DoWithBody(ctx, http.MethodPost, u, bytes.NewReader(jsonBody),
		map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return domain.ErrCollaborator("notifications service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ErrCollaborator(
			fmt.Sprintf("notifications service returned status %d", resp.StatusCode), nil)
	}

	var body notificationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.ErrCollaborator("malformed notifications response", err)
	}

	// The message field narrates both success and failure.
	if !body.Success {
		if len(body.Errors) > 0 {
			return domain.ErrCollaborator(
				fmt.Sprintf("%s: %s", body.Message, strings.Join(body.Errors, "; ")), nil)
		}
		return domain.ErrCollaborator(body.Message, nil)
	}

	return nil
}
