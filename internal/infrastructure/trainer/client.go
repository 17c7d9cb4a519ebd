package trainer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nexlearn/agenthub/internal/domain/entity"
	"github.com/nexlearn/agenthub/internal/infrastructure/config"
)

// HTTPClient talks to the external training service. Registration is a
// best-effort side call: the caller fires it from a background goroutine and
// only logs the outcome, so errors returned here never reach an HTTP client.
type HTTPClient struct {
	baseURL    string
	maxRetries int
	retryWait  time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPClient creates a training service client from config.
func NewHTTPClient(cfg config.TrainerConfig, logger *zap.Logger) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    cfg.BaseURL,
		maxRetries: cfg.MaxRetries,
		retryWait:  cfg.RetryWait,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(zap.String("component", "trainer-client")),
	}
}

type registerRequest struct {
	AgentID   uint64 `json:"agent_id"`
	CreatorID uint64 `json:"creator_id"`
	Name      string `json:"name"`
	ModelName string `json:"model_name,omitempty"`
	AgentType string `json:"agent_type"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		AgentUUID string `json:"agent_uuid"`
	} `json:"data"`
}

// Register submits the agent to the training service and returns the
// correlation UUID it assigned. Transient failures (network errors, 5xx) are
// retried with exponential backoff up to the configured limit; 4xx responses
// are not retried.
func (c *HTTPClient) Register(ctx context.Context, agent *entity.Agent) (string, error) {
	body, err := json.Marshal(registerRequest{
		AgentID:   agent.ID,
		CreatorID: agent.CreatorID,
		Name:      agent.Name,
		ModelName: agent.ModelName,
		AgentType: string(agent.AgentType),
	})
	if err != nil {
		return "", fmt.Errorf("marshal register request: %w", err)
	}

	url := c.baseURL + "/api/v1/agents/register"
	wait := c.retryWait
	if wait <= 0 {
		wait = 2 * time.Second
	}

	var lastErr error
	attempts := c.maxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		uuid, retryable, err := c.attempt(ctx, url, body)
		if err == nil {
			return uuid, nil
		}
		lastErr = err
		if !retryable || attempt == attempts {
			break
		}

		c.logger.Warn("Trainer registration attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}

	return "", lastErr
}

// attempt does a single request; the second return reports retryability.
func (c *HTTPClient) attempt(ctx context.Context, url string, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", true, err
	}

	if resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("trainer returned %d: %s", resp.StatusCode, string(data))
	}
	if resp.StatusCode >= 400 {
		return "", false, fmt.Errorf("trainer rejected registration (%d): %s", resp.StatusCode, string(data))
	}

	var parsed registerResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", false, fmt.Errorf("decode trainer response: %w", err)
	}
	if parsed.Data.AgentUUID == "" {
		return "", false, fmt.Errorf("trainer response missing agent_uuid")
	}

	return parsed.Data.AgentUUID, false, nil
}
