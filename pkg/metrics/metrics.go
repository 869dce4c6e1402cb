// Package metrics documents the Prometheus metrics exposed by the QuickPin
// client. Metrics are defined via promauto in the packages that record them
// (pkg/client, pkg/submit) to keep registration next to usage; this package
// provides the registry handles for anything that wants to serve them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the Prometheus registerer used by the QuickPin client. All
// metrics register themselves here via promauto.
var Registry = prometheus.DefaultRegisterer

// Gatherer collects the registered metrics, e.g. for a promhttp handler.
var Gatherer = prometheus.DefaultGatherer

// Metrics Reference
//
// Request metrics (pkg/client):
//   - quickpin_requests_total{endpoint, status} (Counter): requests by
//     endpoint and HTTP status ("network_error" for failures before a status)
//   - quickpin_request_duration_seconds{endpoint} (Histogram)
//   - quickpin_errors_total{kind} (Counter): errors by kind
//     (invalid_argument, authentication, not_authenticated, transport)
//
// Submission metrics (pkg/submit):
//   - quickpin_chunks_submitted_total (Counter)
//   - quickpin_profiles_submitted_total (Counter)
//   - quickpin_submission_duration_seconds (Histogram)
//
// Example Prometheus Queries:
//
//   # Request error rate
//   rate(quickpin_errors_total[5m])
//
//   # P95 request latency
//   histogram_quantile(0.95, rate(quickpin_request_duration_seconds_bucket[5m]))
