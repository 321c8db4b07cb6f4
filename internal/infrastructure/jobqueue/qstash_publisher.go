package jobqueue

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
)

const (
	ScoreWeekPath          = "/v1/internal/jobs/score-week"
	internalJobTokenHeader = "X-Internal-Job-Token"
	maxErrorBodyBytes      = 4096
)

var tracer = otel.Tracer("confidence-pool/internal/infrastructure/jobqueue")

type QStashPublisherConfig struct {
	BaseURL string
	Token   string
	// TargetBaseURL is the public base URL of this API, which QStash calls
	// back.
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	// ScoreDelay holds scoring jobs back so several games finishing together
	// collapse into few passes.
	ScoreDelay time.Duration
}

// QStashPublisher queues internal job calls through Upstash QStash.
type QStashPublisher struct {
	client           *http.Client
	baseURL          string
	token            string
	targetBaseURL    string
	retries          int
	internalJobToken string
	scoreDelay       time.Duration
	logger           *logging.Logger
}

func NewQStashPublisher(cfg QStashPublisherConfig, logger *logging.Logger) (*QStashPublisher, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid QSTASH_BASE_URL: %w", err)
	}
	targetBaseURL, err := validateHTTPBaseURL(cfg.TargetBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid QSTASH_TARGET_BASE_URL: %w", err)
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("QSTASH_TOKEN is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &QStashPublisher{
		client:           &http.Client{Timeout: timeout},
		baseURL:          baseURL,
		token:            strings.TrimSpace(cfg.Token),
		targetBaseURL:    targetBaseURL,
		retries:          cfg.Retries,
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		scoreDelay:       cfg.ScoreDelay,
		logger:           logger,
	}, nil
}

type scoreWeekJob struct {
	WeekID int64 `json:"week_id"`
}

// PublishScoreWeek queues POST /v1/internal/jobs/score-week for weekID.
func (p *QStashPublisher) PublishScoreWeek(ctx context.Context, weekID int64, dedupID string) error {
	return p.Enqueue(ctx, ScoreWeekPath, scoreWeekJob{WeekID: weekID}, p.scoreDelay, dedupID)
}

// Enqueue asks QStash to POST payload to path on the target API after delay.
func (p *QStashPublisher) Enqueue(ctx context.Context, path string, payload any, delay time.Duration, dedupID string) (err error) {
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "/" {
		return fmt.Errorf("job path is required")
	}

	targetURL := p.targetBaseURL + path
	ctx, span := tracer.Start(ctx, "jobqueue.QStashPublisher.Enqueue")
	span.SetAttributes(
		attribute.String("qstash.target_url", targetURL),
		attribute.String("qstash.deduplication_id", dedupID),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if payload == nil {
		payload = map[string]any{}
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal job payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v2/publish/"+targetURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create qstash request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Upstash-Method", http.MethodPost)
	if p.retries > 0 {
		req.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	}
	if delay > 0 {
		req.Header.Set("Upstash-Delay", formatDelay(delay))
	}
	if dedupID = strings.TrimSpace(dedupID); dedupID != "" {
		req.Header.Set("Upstash-Deduplication-Id", dedupID)
	}
	if p.internalJobToken != "" {
		req.Header.Set("Upstash-Forward-"+internalJobTokenHeader, p.internalJobToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("publish qstash job target_url=%s: %w", targetURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("publish qstash job status=%d target_url=%s body=%s", resp.StatusCode, targetURL, strings.TrimSpace(string(raw)))
	}

	p.logger.InfoContext(ctx, "qstash job published",
		"path", path,
		"delay", formatDelay(delay),
		"deduplication_id", dedupID,
	)
	return nil
}

// formatDelay renders whole seconds, the unit QStash accepts.
func formatDelay(delay time.Duration) string {
	seconds := int(delay.Round(time.Second).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	return strconv.Itoa(seconds) + "s"
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", fmt.Errorf("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", candidate, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", fmt.Errorf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}
