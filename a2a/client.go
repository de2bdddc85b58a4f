package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/hupe1980/researchmesh/logging"
	"github.com/hupe1980/researchmesh/model"
)

// Mode identifies which backing capability a client resolved to during
// initialization.
type Mode string

const (
	// ModeRemote invokes the agent over its declared protocol endpoint.
	ModeRemote Mode = "remote"
	// ModeLocal invokes a locally bound model with the skill's prompt.
	ModeLocal Mode = "local"
	// ModeStub synthesizes deterministic stand-in outputs.
	ModeStub Mode = "stub"
)

// maxResponseBytes caps how much of a remote response body is read.
const maxResponseBytes = 4 << 20

// Options configures a Client.
type Options struct {
	// HTTPClient used for remote invocation; defaults to a dedicated client.
	HTTPClient *http.Client
	// Model backs local invocation when the card declares no endpoint.
	Model model.Model
	// CallTimeout bounds one skill invocation.
	CallTimeout time.Duration
	// ProbeTimeout bounds the reachability probe during Initialize.
	ProbeTimeout time.Duration
	// Logger for attempt logging; NoOp if nil.
	Logger logging.Logger
}

// Client invokes one named agent's skills. Construct with NewClient, then
// call Initialize before CallSkill. The client performs no retries: a failed
// call surfaces as a failed task and retry policy is the caller's concern
// (this system has none).
type Client struct {
	card         Card
	httpClient   *http.Client
	model        model.Model
	callTimeout  time.Duration
	probeTimeout time.Duration
	logger       logging.Logger

	// slots enforces the card's maxConcurrent capability; nil when unbounded.
	slots chan struct{}

	mode        Mode
	initialized bool
}

// NewClient creates a client for the agent described by card.
func NewClient(card Card, optFns ...func(o *Options)) *Client {
	opts := Options{
		CallTimeout:  120 * time.Second,
		ProbeTimeout: 5 * time.Second,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	c := &Client{
		card:         card,
		httpClient:   opts.HTTPClient,
		model:        opts.Model,
		callTimeout:  opts.CallTimeout,
		probeTimeout: opts.ProbeTimeout,
		logger:       opts.Logger,
		mode:         ModeStub,
	}
	if n := card.Capabilities.MaxConcurrent; n > 0 {
		c.slots = make(chan struct{}, n)
	}
	return c
}

// Initialize establishes reachability to the agent: a network probe for
// remote cards, a model binding for local ones. Unreachable or unconfigured
// agents degrade to stub mode; the only error returned is a caller-side
// context cancellation.
func (c *Client) Initialize(ctx context.Context) error {
	c.logger.Info("Initializing agent client", "agent_name", c.card.Name)

	switch {
	case !c.card.Local():
		if err := c.probe(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("Agent endpoint unreachable, using stub responses",
				"agent_name", c.card.Name, "endpoint", c.card.Endpoint, "error", err.Error())
			c.mode = ModeStub
		} else {
			c.mode = ModeRemote
		}
	case c.model != nil:
		c.mode = ModeLocal
		c.logger.Info("Agent bound to local model",
			"agent_name", c.card.Name, "model", c.model.Info().Name)
	default:
		c.logger.Warn("No model configured, using stub responses", "agent_name", c.card.Name)
		c.mode = ModeStub
	}

	c.initialized = true
	return nil
}

// probe checks the agent's discovery document endpoint.
func (c *Client) probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.card.Endpoint+"/.well-known/agent.json", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes)) //nolint:errcheck
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("probe returned status %d", resp.StatusCode)
	}
	return nil
}

// Card returns the agent's static descriptor.
func (c *Client) Card() Card { return c.card }

// Mode returns the backing mode resolved during Initialize.
func (c *Client) Mode() Mode { return c.mode }

// Configured reports whether a fully configured backing capability (remote
// endpoint or local model) is available, as opposed to the stub fallback.
func (c *Client) Configured() bool { return c.mode != ModeStub }

// CallSkill performs one invocation of the named skill with the given input
// parameters. The returned document always carries a "status" field; an
// "error" status is surfaced as an error here so the owning task fails.
// When the card declares maxConcurrent, the call waits for a free slot; the
// wait counts against the call timeout.
func (c *Client) CallSkill(ctx context.Context, skillID string, input map[string]any) (json.RawMessage, error) {
	if !c.initialized {
		return nil, fmt.Errorf("agent %s: client not initialized", c.card.Name)
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	if c.slots != nil {
		select {
		case c.slots <- struct{}{}:
			defer func() { <-c.slots }()
		case <-ctx.Done():
			return nil, fmt.Errorf("agent %s skill %s: %w", c.card.Name, skillID, ctx.Err())
		}
	}

	start := time.Now()
	var (
		out json.RawMessage
		err error
	)
	switch c.mode {
	case ModeRemote:
		out, err = c.callRemote(ctx, skillID, input)
	case ModeLocal:
		out, err = c.callLocal(ctx, skillID, input)
	default:
		out = StubResponse(c.card.Name, skillID, input)
	}

	if err != nil {
		c.logger.Error("Skill call failed",
			"agent_name", c.card.Name, "skill_id", skillID,
			"duration", time.Since(start), "error", err.Error())
		return nil, err
	}

	if gjson.GetBytes(out, "status").String() == "error" {
		msg := gjson.GetBytes(out, "error").String()
		if msg == "" {
			msg = "agent reported error status"
		}
		c.logger.Error("Skill call returned error status",
			"agent_name", c.card.Name, "skill_id", skillID, "error", msg)
		return nil, fmt.Errorf("agent %s skill %s: %s", c.card.Name, skillID, msg)
	}

	c.logger.Info("Skill call completed",
		"agent_name", c.card.Name, "skill_id", skillID,
		"mode", string(c.mode), "duration", time.Since(start))
	return out, nil
}

// callRemote performs POST {endpoint}/skills/{skillId} with a JSON body of
// named input parameters.
func (c *Client) callRemote(ctx context.Context, skillID string, input map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode skill input: %w", err)
	}

	url := c.card.Endpoint + "/skills/" + skillID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent %s skill %s: %w", c.card.Name, skillID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("agent %s skill %s: read response: %w", c.card.Name, skillID, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("agent %s skill %s: status %d: %s", c.card.Name, skillID, resp.StatusCode, truncate(string(data), 256))
	}
	return data, nil
}

// callLocal drives the bound model with the skill's rendered prompt and wraps
// the completion in the standard result envelope.
func (c *Client) callLocal(ctx context.Context, skillID string, input map[string]any) (json.RawMessage, error) {
	prompt, err := BuildPrompt(skillID, input)
	if err != nil {
		return nil, err
	}

	resp, err := c.model.Generate(ctx, model.Request{
		System: SystemPrompt(c.card.Name),
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("agent %s skill %s: %w", c.card.Name, skillID, err)
	}

	out := []byte(`{"status":"success"}`)
	out, _ = sjson.SetBytes(out, "raw_output", resp.Text)
	out, _ = sjson.SetBytes(out, "agent_name", c.card.Name)
	out, _ = sjson.SetBytes(out, "skill_name", skillID)
	out, _ = sjson.SetBytes(out, "model_used", resp.Model)
	if resp.Usage != nil {
		out, _ = sjson.SetBytes(out, "tokens_used", resp.Usage.TotalTokens)
	}
	return out, nil
}

// Close releases the held connection. Idempotent.
func (c *Client) Close() error {
	if c.initialized {
		c.logger.Info("Closing agent client", "agent_name", c.card.Name)
	}
	c.httpClient.CloseIdleConnections()
	c.initialized = false
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
