package webhook

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/tournevent/shipit/internal/telemetry"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const maxCallbackSize = 1 << 20

// Receiver is the HTTP endpoint Shipit posts status callbacks to. It always
// answers 200 "ok" so the vendor does not retry.
type Receiver struct {
	dispatcher *Dispatcher
	logger     *otelzap.Logger
	metrics    *telemetry.Metrics
}

// NewReceiver creates a receiver dispatching to d. metrics may be nil.
func NewReceiver(d *Dispatcher, logger *otelzap.Logger, metrics *telemetry.Metrics) *Receiver {
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}
	return &Receiver{
		dispatcher: d,
		logger:     logger,
		metrics:    metrics,
	}
}

// ServeHTTP implements http.Handler.
func (rc *Receiver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}()

	eventType, ok := EventTypeForMethod(r.Method)
	if !ok {
		return
	}

	ctx := r.Context()
	data, err := callbackData(r)
	if err != nil {
		rc.logger.Ctx(ctx).Warn("Could not parse callback body",
			zap.String("method", r.Method),
			zap.Error(err),
		)
	}

	ev := NewEvent(eventType, data)
	if rc.metrics != nil {
		rc.metrics.RecordWebhook(eventType)
	}
	rc.dispatcher.Dispatch(ctx, ev)
}

// callbackData merges the query string and the body, JSON or form encoded.
// Body values win over query values.
func callbackData(r *http.Request) (map[string]any, error) {
	data := make(map[string]any)
	mergeValues(data, r.URL.Query())

	body, err := io.ReadAll(io.LimitReader(r.Body, maxCallbackSize))
	if err != nil {
		return data, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return data, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return data, err
		}
		mergeValues(data, values)
		return data, nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return data, err
	}
	switch v := decoded.(type) {
	case map[string]any:
		for k, val := range v {
			data[k] = val
		}
	default:
		data["payload"] = v
	}
	return data, nil
}

func mergeValues(dst map[string]any, values url.Values) {
	for k, vs := range values {
		if len(vs) == 1 {
			dst[k] = vs[0]
		} else {
			dst[k] = vs
		}
	}
}
