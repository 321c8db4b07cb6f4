package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap/zapcore"

	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
)

const logBridgeScope = "confidence-pool/internal/platform/logging"

// quietRequestPaths are probe and scrape routes whose request logs stay local.
var quietRequestPaths = map[string]struct{}{
	"/healthz": {},
	"/metrics": {},
}

// logBridge forwards logger records to the global OpenTelemetry log provider
// that uptrace-go installs.
type logBridge struct {
	logger   otellog.Logger
	minLevel zapcore.Level
}

func newLogBridge(serviceVersion string, minLevel zapcore.Level) *logBridge {
	return &logBridge{
		logger:   otelglobal.Logger(logBridgeScope, otellog.WithInstrumentationVersion(serviceVersion)),
		minLevel: minLevel,
	}
}

func (b *logBridge) mirror() logging.MirrorFunc {
	return b.emit
}

func (b *logBridge) emit(ctx context.Context, level logging.Level, msg string, args ...any) {
	if level < b.minLevel || isQuietRequestLog(msg, args) {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	severity := severityFor(level)
	if !b.logger.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
		return
	}

	now := time.Now().UTC()
	var record otellog.Record
	record.SetTimestamp(now)
	record.SetObservedTimestamp(now)
	record.SetSeverity(severity)
	record.SetSeverityText(strings.ToUpper(level.String()))
	record.SetEventName(msg)
	record.SetBody(otellog.StringValue(msg))
	if attrs := logAttributes(args); len(attrs) > 0 {
		record.AddAttributes(attrs...)
	}

	b.logger.Emit(ctx, record)
}

func isQuietRequestLog(msg string, args []any) bool {
	if msg != "http request" {
		return false
	}
	for i := 0; i+1 < len(args); i += 2 {
		if key, _ := args[i].(string); key == "path" {
			path, _ := args[i+1].(string)
			_, quiet := quietRequestPaths[path]
			return quiet
		}
	}
	return false
}

// logAttributes converts key/value pairs. A trailing key without a value
// becomes an empty attribute; a non-string key is named after its position.
func logAttributes(args []any) []otellog.KeyValue {
	if len(args) == 0 {
		return nil
	}

	attrs := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || strings.TrimSpace(key) == "" {
			key = fmt.Sprintf("arg_%d", i/2)
		}
		if i+1 == len(args) {
			attrs = append(attrs, otellog.Empty(key))
			break
		}
		attrs = append(attrs, otellog.KeyValue{Key: key, Value: logValue(args[i+1])})
	}
	return attrs
}

func severityFor(level zapcore.Level) otellog.Severity {
	switch level {
	case zapcore.DebugLevel:
		return otellog.SeverityDebug
	case zapcore.InfoLevel:
		return otellog.SeverityInfo
	case zapcore.WarnLevel:
		return otellog.SeverityWarn
	case zapcore.ErrorLevel:
		return otellog.SeverityError
	default:
		if level < zapcore.DebugLevel {
			return otellog.SeverityTrace
		}
		return otellog.SeverityFatal
	}
}

// logValue covers the value types the pool logs: identifiers, counters,
// durations, errors and small slices of IDs or team abbreviations. Anything
// else is rendered with fmt.
func logValue(value any) otellog.Value {
	switch v := value.(type) {
	case nil:
		return otellog.Value{}
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case int:
		return otellog.IntValue(v)
	case int32:
		return otellog.Int64Value(int64(v))
	case int64:
		return otellog.Int64Value(v)
	case uint32:
		return otellog.Int64Value(int64(v))
	case float64:
		return otellog.Float64Value(v)
	case time.Duration:
		return otellog.StringValue(v.String())
	case time.Time:
		return otellog.StringValue(v.UTC().Format(time.RFC3339Nano))
	case error:
		return otellog.StringValue(v.Error())
	case []string:
		items := make([]otellog.Value, len(v))
		for i, s := range v {
			items[i] = otellog.StringValue(s)
		}
		return otellog.SliceValue(items...)
	case []int64:
		items := make([]otellog.Value, len(v))
		for i, n := range v {
			items[i] = otellog.Int64Value(n)
		}
		return otellog.SliceValue(items...)
	case map[string]int:
		kvs := make([]otellog.KeyValue, 0, len(v))
		for k, n := range v {
			kvs = append(kvs, otellog.Int(k, n))
		}
		return otellog.MapValue(kvs...)
	case fmt.Stringer:
		return otellog.StringValue(v.String())
	default:
		return otellog.StringValue(fmt.Sprint(v))
	}
}
