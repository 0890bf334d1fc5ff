package downstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bookaroo/create-event-service/internal/domain"
	"github.com/bookaroo/create-event-service/internal/logger"
	"github.com/bookaroo/create-event-service/internal/retry"
)

// BillingClient verifies that the organizer has paid for creating an
// event before the workflow is allowed to proceed.
type BillingClient struct {
	baseURL  string
	client   *Client
	retryCfg retry.Config
}

func NewBillingClient(baseURL string, client *Client, retryCfg retry.Config) *BillingClient {
	return &BillingClient{
		baseURL:  baseURL,
		client:   client,
		retryCfg: retryCfg,
	}
}

type verifyPaymentResponse struct {
	Success bool   `json:"success"`
	IsPaid  bool   `json:"is_paid"`
	Error   string `json:"error"`
}

// VerifyEventPayment reports whether payment for the event has been
// completed. Empty identifiers fail fast without a network call.
// Connection-level failures are retried with exponential backoff; a
// well-formed negative answer is returned as paid=false with a reason
// and is never retried.
func (c *BillingClient) VerifyEventPayment(ctx context.Context, eventID, organizerID string) (bool, string, error) {
	if strings.TrimSpace(eventID) == "" {
		return false, "", domain.ErrValidation("event id is required for payment verification")
	}
	if strings.TrimSpace(organizerID) == "" {
		return false, "", domain.ErrValidation("organizer id is required for payment verification")
	}

	var paid bool
	var reason string

	err := retry.Do(ctx, c.retryCfg, func() error {
		p, r, err := c.verifyOnce(ctx, eventID, organizerID)
		if err != nil {
			return err
		}
		paid, reason = p, r
		return nil
	})
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).
			Str("event_id", eventID).
			Msg("payment verification failed")
		return false, "", err
	}

	return paid, reason, nil
}

func (c *BillingClient) verifyOnce(ctx context.Context, eventID, organizerID string) (bool, string, error) {
	q := url.Values{}
	q.Set("event_id", eventID)
	q.Set("organizer_id", organizerID)
	u := fmt.Sprintf("%s/verify-payment?%s", c.baseURL, q.Encode())

	resp, err := c.client.Get(ctx, u, nil)
	if err != nil {
		if isTransport(err) {
			return false, "", domain.ErrTransient("billing service unreachable", err)
		}
		return false, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, "", domain.ErrCollaborator(
			fmt.Sprintf("billing service returned status %d", resp.StatusCode), nil)
	}

	var body verifyPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, "", domain.ErrCollaborator("malformed billing response", err)
	}

	// Both flags must be set for the event to count as paid.
	if body.Success && body.IsPaid {
		return true, "", nil
	}

	reason := body.Error
	if reason == "" {
		reason = fmt.Sprintf("payment not completed for event %s", eventID)
	}
	return false, reason, nil
}
