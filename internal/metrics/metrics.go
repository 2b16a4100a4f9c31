package metrics

import "github.com/prometheus/client_golang/prometheus"

// HTTPTotalDurations is a summary metric of the durations of http requests,
// labelled by method and status code
var HTTPTotalDurations = prometheus.NewSummaryVec(
	prometheus.SummaryOpts{
		Namespace: "http",
		Subsystem: "all",
		Name:      "total_duration",

		Help: "Durations of http requests, labelled by method and status code",

		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	},
	[]string{"method", "code"},
)

// RenderDurations records how long a banner took to generate, labelled by
// mode (static, animated) and outcome (ok, error).
var RenderDurations = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "banner",
		Subsystem: "render",
		Name:      "duration_seconds",

		Help: "Banner generation durations, labelled by mode and outcome",

		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
	},
	[]string{"mode", "outcome"},
)

// AvatarFetches counts avatar acquisitions by outcome.
var AvatarFetches = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "banner",
		Subsystem: "avatar",
		Name:      "fetches_total",

		Help: "Avatar acquisitions, labelled by outcome",
	},
	[]string{"outcome"},
)

// FramesEncoded counts frames pushed to animation encoders.
var FramesEncoded = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "banner",
		Subsystem: "sequencer",
		Name:      "frames_total",

		Help: "Frames rendered and pushed to the animation encoder",
	},
)

func init() {
	prometheus.MustRegister(HTTPTotalDurations, RenderDurations, AvatarFetches, FramesEncoded)
}
