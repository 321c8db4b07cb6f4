package observability

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/confidence-pool/internal/config"
	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logSinkQueueSize     = 2048
	logSinkFlushInterval = 2 * time.Second
)

// InitLogSink tees the logger to stdout and to an HTTP log ingestion
// endpoint. Records at or above LogSinkMinLevel are shipped in JSON array
// batches.
func InitLogSink(cfg config.Config, baseLogger *logging.Logger) (*logging.Logger, func(context.Context) error, error) {
	if baseLogger == nil {
		baseLogger = logging.NewJSON(cfg.LogLevel)
	}

	if !cfg.LogSinkEnabled {
		baseLogger.Info("log sink disabled", "reason", "LOG_SINK_ENABLED=false")
		return baseLogger, func(context.Context) error { return nil }, nil
	}

	endpoint := normalizeSinkEndpoint(cfg.LogSinkEndpoint)
	if endpoint == "" {
		return nil, nil, fmt.Errorf("log sink endpoint cannot be empty")
	}

	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "dt",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})

	sink := newBatchSink(endpoint, strings.TrimSpace(cfg.LogSinkToken), cfg.LogSinkTimeout, cfg.LogSinkBatch)
	sinkCore := zapcore.NewCore(encoder, zapcore.AddSync(sink), cfg.LogSinkMinLevel).
		With([]zap.Field{zap.String("service", cfg.ServiceName), zap.String("env", cfg.AppEnv)})

	zapLogger := baseLogger.Zap().WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, sinkCore)
	}))

	logger := logging.FromZap(zapLogger)
	logger.Info("log sink enabled",
		"endpoint", endpoint,
		"min_level", cfg.LogSinkMinLevel.String(),
		"batch_size", cfg.LogSinkBatch,
	)

	return logger, func(ctx context.Context) error {
		if ctx == nil {
			ctx = context.Background()
		}
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
		}
		if err := sink.Close(ctx); err != nil {
			return fmt.Errorf("drain log sink: %w", err)
		}
		if err := logger.Sync(); err != nil && !isIgnorableSyncError(err) {
			return err
		}
		return nil
	}, nil
}

func normalizeSinkEndpoint(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

// batchSink buffers encoded log lines and posts them from one goroutine.
// Writes never block the caller; a full queue drops the line.
type batchSink struct {
	endpoint  string
	token     string
	batchSize int
	client    *http.Client

	mu      sync.RWMutex
	closed  bool
	queue   chan []byte
	done    chan struct{}
	once    sync.Once
	dropped atomic.Uint64
}

func newBatchSink(endpoint, token string, timeout time.Duration, batchSize int) *batchSink {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 1
	}

	s := &batchSink{
		endpoint:  endpoint,
		token:     token,
		batchSize: batchSize,
		client:    &http.Client{Timeout: timeout},
		queue:     make(chan []byte, logSinkQueueSize),
		done:      make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *batchSink) Write(p []byte) (int, error) {
	line := bytes.TrimSpace(p)
	if len(line) == 0 {
		return len(p), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return len(p), nil
	}

	// zap reuses its buffer after Write returns
	copied := append([]byte(nil), line...)
	select {
	case s.queue <- copied:
	default:
		if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
			fmt.Fprintf(os.Stderr, "log sink queue full; dropped=%d\n", n)
		}
	}
	return len(p), nil
}

func (s *batchSink) Sync() error { return nil }

func (s *batchSink) run() {
	defer close(s.done)

	ticker := time.NewTicker(logSinkFlushInterval)
	defer ticker.Stop()

	batch := make([][]byte, 0, s.batchSize)
	for {
		select {
		case line, ok := <-s.queue:
			if !ok {
				s.post(batch)
				return
			}
			batch = append(batch, line)
			if len(batch) >= s.batchSize {
				s.post(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			s.post(batch)
			batch = batch[:0]
		}
	}
}

func (s *batchSink) post(batch [][]byte) {
	if len(batch) == 0 {
		return
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)
	_ = body.WriteByte('[')
	for i, line := range batch {
		if i > 0 {
			_ = body.WriteByte(',')
		}
		_, _ = body.Write(line)
	}
	_ = body.WriteByte(']')

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.endpoint, bytes.NewReader(body.B))
	if err != nil {
		fmt.Fprintf(os.Stderr, "log sink create request failed: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log sink post failed: %v\n", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		fmt.Fprintf(os.Stderr, "log sink got non-2xx status=%d\n", resp.StatusCode)
	}
}

// Close stops accepting writes and waits for queued lines to be posted.
func (s *batchSink) Close(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
	})

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isIgnorableSyncError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bad file descriptor") || strings.Contains(msg, "invalid argument")
}
