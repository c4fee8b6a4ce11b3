package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"textgraph/internal/util"
	"textgraph/pkg/logger"
	"textgraph/pkg/ner"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeoutSec  = 60
	defaultMaxParallel = 4
	defaultMaxTries    = 3
)

// Client is a ner.Recognizer backed by a hosted token-classification
// endpoint speaking the Hugging Face inference protocol. The remote model
// is warmed up lazily on first use; concurrent callers during warmup await
// the same in-flight request instead of triggering duplicate loads.
type Client struct {
	model   string
	baseURL *url.URL

	httpClient *http.Client
	reqLock    *semaphore.Weighted
	maxTries   int

	warm   singleflight.Group
	warmed atomic.Bool
}

// NewClientParams contains configuration options for creating a new Client.
type NewClientParams struct {
	// BaseURL of the inference server, e.g. "https://api-inference.example.com".
	BaseURL string
	// Model identifier of the token-classification model to query.
	Model string
	// ApiKey sent as a bearer token when non-empty.
	ApiKey string

	// TimeoutSec bounds a single inference round trip. Defaults to 60.
	TimeoutSec int
	// MaxConcurrentRequests bounds in-flight inference calls. Defaults to 4.
	MaxConcurrentRequests int64
	// MaxTries bounds attempts per inference call. Defaults to 3.
	MaxTries int
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewClient creates a recognizer client for the given inference server and
// model. No network call is made until the first Recognize.
func NewClient(params NewClientParams) (*Client, error) {
	if params.Model == "" {
		return nil, fmt.Errorf("ner model is empty")
	}

	u, err := url.Parse(params.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := params.TimeoutSec
	if timeout <= 0 {
		timeout = defaultTimeoutSec
	}
	maxParallel := params.MaxConcurrentRequests
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}
	maxTries := params.MaxTries
	if maxTries <= 0 {
		maxTries = defaultMaxTries
	}

	headers := map[string]string{}
	if params.ApiKey != "" {
		headers["Authorization"] = "Bearer " + params.ApiKey
	}

	httpClient := &http.Client{
		Timeout: time.Duration(timeout) * time.Second,
		Transport: &headerTransport{
			headers: headers,
			rt:      http.DefaultTransport,
		},
	}

	return &Client{
		model:      params.Model,
		baseURL:    u,
		httpClient: httpClient,
		reqLock:    semaphore.NewWeighted(maxParallel),
		maxTries:   maxTries,
	}, nil
}

// NewClientFromEnv creates a client from NER_URL, NER_MODEL, NER_KEY,
// NER_TIMEOUT_SEC and NER_PARALLEL_REQ.
func NewClientFromEnv() (*Client, error) {
	return NewClient(NewClientParams{
		BaseURL:               util.GetEnv("NER_URL"),
		Model:                 util.GetEnv("NER_MODEL"),
		ApiKey:                util.GetEnv("NER_KEY"),
		TimeoutSec:            int(util.GetEnvNumeric("NER_TIMEOUT_SEC", defaultTimeoutSec)),
		MaxConcurrentRequests: int64(util.GetEnvNumeric("NER_PARALLEL_REQ", defaultMaxParallel)),
		MaxTries:              int(util.GetEnvNumeric("NER_MAX_TRIES", defaultMaxTries)),
	})
}

type inferRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		AggregationStrategy string `json:"aggregation_strategy"`
	} `json:"parameters"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

// Recognize sends text to the token-classification endpoint and returns the
// labeled spans in model order. Empty or whitespace-only input returns an
// empty result without any network call.
func (c *Client) Recognize(ctx context.Context, text string) ([]ner.Span, error) {
	if strings.TrimSpace(text) == "" {
		return []ner.Span{}, nil
	}

	if err := c.ensureWarm(ctx); err != nil {
		return nil, err
	}

	return util.RetryWithContext(ctx, c.maxTries, func(ctx context.Context) ([]ner.Span, error) {
		return c.infer(ctx, text, false)
	})
}

// ensureWarm issues a single warmup inference so the remote model is loaded
// exactly once per process. All callers racing the first request share one
// in-flight warmup via singleflight.
func (c *Client) ensureWarm(ctx context.Context) error {
	if c.warmed.Load() {
		return nil
	}

	_, err, _ := c.warm.Do("warmup", func() (any, error) {
		if c.warmed.Load() {
			return nil, nil
		}
		logger.Debug("[NER] Warming up model", "model", c.model)
		if _, err := c.infer(ctx, "warmup", true); err != nil {
			return nil, err
		}
		c.warmed.Store(true)
		return nil, nil
	})
	return err
}

func (c *Client) infer(ctx context.Context, text string, waitForModel bool) ([]ner.Span, error) {
	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.reqLock.Release(1)

	reqBody := inferRequest{Inputs: text}
	reqBody.Parameters.AggregationStrategy = "simple"
	reqBody.Options.WaitForModel = waitForModel

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL.JoinPath("models", c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ner inference failed: status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	spans := make([]ner.Span, 0)
	if err := json.Unmarshal(body, &spans); err != nil {
		return nil, fmt.Errorf("ner inference returned malformed response: %w", err)
	}

	return spans, nil
}
