package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dialogue-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "colloquy",
			Subsystem: "dialogue_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "colloquy",
			Subsystem: "dialogue_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Completion call duration
	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "colloquy",
			Subsystem: "dialogue_api",
			Name:      "completion_duration_seconds",
			Help:      "Completion backend call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model", "backend", "stream"},
	)

	// Completion failures
	CompletionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "colloquy",
			Subsystem: "dialogue_api",
			Name:      "completion_errors_total",
			Help:      "Total completion backend call failures",
		},
		[]string{"backend", "error_type"},
	)

	// Dialogue turns by outcome
	DialogueTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "colloquy",
			Subsystem: "dialogue_api",
			Name:      "dialogue_turns_total",
			Help:      "Role turns by outcome (generated or skipped)",
		},
		[]string{"outcome"},
	)

	// Syntheses by outcome
	SynthesesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "colloquy",
			Subsystem: "dialogue_api",
			Name:      "syntheses_total",
			Help:      "Synthesis steps by outcome",
		},
		[]string{"outcome"},
	)

	// Collaboration resolver decisions
	CollaborationDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "colloquy",
			Subsystem: "dialogue_api",
			Name:      "collaboration_decisions_total",
			Help:      "Collaboration resolver decisions by outcome",
		},
		[]string{"outcome"},
	)

	// Active streaming connections gauge
	ActiveStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "colloquy",
			Subsystem: "dialogue_api",
			Name:      "active_streams",
			Help:      "Currently active dialogue streams",
		},
	)

	// User agent metrics (normalized to keep low cardinality)
	UserAgentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "colloquy",
			Subsystem: "dialogue_api",
			Name:      "user_agents_total",
			Help:      "Requests by normalized user agent",
		},
		[]string{"user_agent"},
	)

	UserAgentFamilyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "colloquy",
			Subsystem: "dialogue_api",
			Name:      "user_agent_family_total",
			Help:      "Requests by user agent family (browser/cli/sdk/unknown)",
		},
		[]string{"family"},
	)
)

// Turn outcomes.
const (
	TurnGenerated = "generated"
	TurnSkipped   = "skipped"
)

// Synthesis outcomes.
const (
	SynthesisCompleted = "completed"
	SynthesisFailed    = "failed"
)

// Resolver outcomes.
const (
	DecisionCollaborate = "collaborate"
	DecisionSolo        = "solo"
	DecisionMalformed   = "malformed"
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordCompletionDuration records the duration of a completion backend call
func RecordCompletionDuration(model, backend string, stream bool, durationSec float64) {
	streamStr := "false"
	if stream {
		streamStr = "true"
	}
	CompletionDuration.WithLabelValues(model, backend, streamStr).Observe(durationSec)
}

// RecordCompletionError records a completion backend failure
func RecordCompletionError(backend, errorType string) {
	CompletionErrorsTotal.WithLabelValues(backend, errorType).Inc()
}

// RecordDialogueTurn records one role turn outcome
func RecordDialogueTurn(outcome string) {
	DialogueTurnsTotal.WithLabelValues(outcome).Inc()
}

// RecordSynthesis records one synthesis step outcome
func RecordSynthesis(outcome string) {
	SynthesesTotal.WithLabelValues(outcome).Inc()
}

// RecordCollaborationDecision records one resolver decision outcome
func RecordCollaborationDecision(outcome string) {
	CollaborationDecisionsTotal.WithLabelValues(outcome).Inc()
}

// IncrementActiveStreams increments the active streams gauge
func IncrementActiveStreams() {
	ActiveStreams.Inc()
}

// DecrementActiveStreams decrements the active streams gauge
func DecrementActiveStreams() {
	ActiveStreams.Dec()
}

// RecordUserAgent records UA metrics with normalization and family bucketing
func RecordUserAgent(ua string) {
	norm := normalizeUserAgent(ua)
	family := userAgentFamily(norm)
	UserAgentsTotal.WithLabelValues(norm).Inc()
	UserAgentFamilyTotal.WithLabelValues(family).Inc()
}

func normalizeUserAgent(ua string) string {
	ua = strings.TrimSpace(strings.ToLower(ua))
	if ua == "" {
		return "unknown"
	}
	parts := strings.Fields(ua)
	norm := parts[0]
	if len(norm) > 60 {
		norm = norm[:60]
	}
	return norm
}

func userAgentFamily(normUA string) string {
	switch {
	case strings.Contains(normUA, "mozilla") || strings.Contains(normUA, "chrome") || strings.Contains(normUA, "safari") || strings.Contains(normUA, "firefox") || strings.Contains(normUA, "edge"):
		return "browser"
	case strings.Contains(normUA, "curl") || strings.Contains(normUA, "wget") || strings.Contains(normUA, "httpie"):
		return "cli"
	case strings.Contains(normUA, "postman") || strings.Contains(normUA, "insomnia"):
		return "api_client"
	case strings.Contains(normUA, "okhttp") || strings.Contains(normUA, "cfnetwork"):
		return "mobile"
	case strings.Contains(normUA, "axios") || strings.Contains(normUA, "fetch") || strings.Contains(normUA, "python-requests") || strings.Contains(normUA, "go-http-client") || strings.Contains(normUA, "java"):
		return "sdk"
	default:
		return "unknown"
	}
}
