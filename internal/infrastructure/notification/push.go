package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/jobsight/backend/internal/infrastructure/config"
)

// ErrEndpointGone indicates the push service no longer knows the endpoint.
// The caller should delete the stored subscription.
var ErrEndpointGone = errors.New("push: endpoint gone")

// PushPayload is the JSON body delivered to a push endpoint
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Kind  string `json:"kind"`
}

// PushSender posts notification payloads to registered push endpoints
type PushSender struct {
	httpClient *http.Client
	enabled    bool
	logger     *zap.Logger
}

// NewPushSender creates a push sender with the configured delivery timeout
func NewPushSender(cfg config.PushConfig, logger *zap.Logger) *PushSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PushSender{
		httpClient: &http.Client{
			Timeout: timeout,
			// Push services must not redirect deliveries elsewhere
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		enabled: cfg.Enabled,
		logger:  logger,
	}
}

// Enabled reports whether push delivery is turned on in configuration
func (s *PushSender) Enabled() bool {
	return s.enabled
}

// Send posts the payload to a single endpoint. A 404 or 410 response returns
// ErrEndpointGone so the subscription can be pruned.
func (s *PushSender) Send(ctx context.Context, endpoint string, payload PushPayload) error {
	if !s.enabled {
		return nil
	}

	if err := validateEndpoint(endpoint); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("push: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("push: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("TTL", "86400")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push: deliver to %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		s.logger.Info("Push endpoint no longer exists",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return ErrEndpointGone
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push: endpoint returned %d: %s", resp.StatusCode, string(respBody))
	}

	s.logger.Debug("Delivered push notification", zap.String("endpoint", endpoint))
	return nil
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("push: invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("push: endpoint scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}
