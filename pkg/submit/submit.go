// Package submit implements batched profile submission against the QuickPin
// profile endpoint: an arbitrarily large list of profile descriptors is
// partitioned into fixed-size chunks and dispatched strictly sequentially
// with a fixed inter-chunk pacing interval.
package submit

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/zanachka/quickpin-api/pkg/client"
)

// Prometheus metrics for submission runs.
var (
	qpChunksSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickpin_chunks_submitted_total",
		Help: "Total profile chunks submitted",
	})

	qpProfilesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickpin_profiles_submitted_total",
		Help: "Total profiles submitted",
	})

	qpSubmissionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quickpin_submission_duration_seconds",
		Help:    "Duration of whole submission runs in seconds",
		Buckets: []float64{0.1, 1, 5, 30, 60, 300, 600},
	})
)

// Profile describes one social-media profile to submit. Site is required and
// exactly one of Username or UpstreamID identifies the profile.
type Profile struct {
	Site       string `json:"site"`
	Username   string `json:"username,omitempty"`
	UpstreamID string `json:"upstream_id,omitempty"`
}

// Payload is the body of one submission request.
type Payload struct {
	Profiles []Profile `json:"profiles"`
	Stub     bool      `json:"stub"`
}

// Poster is the transport the submitter dispatches chunks through.
// *client.Client satisfies it.
type Poster interface {
	Post(ctx context.Context, path string, body any) ([]byte, error)
}

// ProgressFunc is invoked once per dispatched chunk with the cumulative
// number of profiles sent so far. Advisory only, it never affects control
// flow or return values.
type ProgressFunc func(submitted int)

// Config holds submitter configuration.
type Config struct {
	// ChunkSize is the number of profiles per request. Must be >= 1.
	ChunkSize int

	// Interval is the minimum spacing between chunk dispatches. Pacing is
	// a rate-limit courtesy toward the service; dispatch is sequential.
	Interval time.Duration

	// Progress, if set, observes submission progress.
	Progress ProgressFunc
}

// DefaultConfig returns the stock configuration: one profile per request,
// five seconds between requests.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 1,
		Interval:  5 * time.Second,
	}
}

// Submitter dispatches profile batches through a Poster. It holds no state
// across Submit calls.
type Submitter struct {
	poster Poster
	config Config
	logger zerolog.Logger
}

// New creates a new Submitter.
func New(poster Poster, cfg Config) *Submitter {
	return &Submitter{
		poster: poster,
		config: cfg,
		logger: log.With().Str("component", "quickpin-submit").Logger(),
	}
}

// SubmitUsernames submits profiles identified by username, all on the same
// site.
func (s *Submitter) SubmitUsernames(ctx context.Context, usernames []string, site string, stub bool) ([][]byte, error) {
	profiles := make([]Profile, len(usernames))
	for i, username := range usernames {
		profiles[i] = Profile{Site: site, Username: username}
	}
	return s.Submit(ctx, profiles, stub)
}

// SubmitIDs submits profiles identified by their upstream platform ID, all
// on the same site.
func (s *Submitter) SubmitIDs(ctx context.Context, ids []string, site string, stub bool) ([][]byte, error) {
	profiles := make([]Profile, len(ids))
	for i, id := range ids {
		profiles[i] = Profile{Site: site, UpstreamID: id}
	}
	return s.Submit(ctx, profiles, stub)
}

// Submit partitions profiles into chunks and POSTs them in order, returning
// one raw response body per chunk. The first failed request aborts the run:
// later chunks are never dispatched and no partial responses are returned.
// Callers needing resumability re-invoke with the un-submitted suffix.
//
// Cancelling the context stops the run between chunks; in that case the
// responses collected so far are returned together with the context error.
func (s *Submitter) Submit(ctx context.Context, profiles []Profile, stub bool) ([][]byte, error) {
	if s.config.ChunkSize < 1 {
		return nil, &client.Error{
			Kind:    client.KindInvalidArgument,
			Message: "chunk size must be at least 1",
		}
	}

	responses := make([][]byte, 0, (len(profiles)+s.config.ChunkSize-1)/s.config.ChunkSize)
	if len(profiles) == 0 {
		return responses, nil
	}

	start := time.Now()
	defer func() {
		qpSubmissionDuration.Observe(time.Since(start).Seconds())
	}()

	chunks := chunkProfiles(profiles, s.config.ChunkSize)

	s.logger.Info().
		Int("profiles", len(profiles)).
		Int("chunks", len(chunks)).
		Int("chunk_size", s.config.ChunkSize).
		Dur("interval", s.config.Interval).
		Msg("Starting profile submission")

	// Burst 1 means the first chunk goes immediately and every later chunk
	// waits out the interval, so K chunks take at least (K-1)*Interval.
	limiter := rate.NewLimiter(intervalLimit(s.config.Interval), 1)

	submitted := 0
	for i, chunk := range chunks {
		if err := limiter.Wait(ctx); err != nil {
			s.logger.Warn().
				Int("submitted", submitted).
				Int("chunks_sent", i).
				Msg("Submission cancelled")
			// Keep the context error unwrappable so callers can tell a
			// cancelled run apart from one aborted by a transport error.
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return responses, fmt.Errorf("submission cancelled after %d of %d chunks: %w", i, len(chunks), err)
		}

		body, err := s.poster.Post(ctx, client.ProfilePath, Payload{
			Profiles: chunk,
			Stub:     stub,
		})
		if err != nil {
			s.logger.Error().Err(err).
				Int("chunk", i+1).
				Int("chunks", len(chunks)).
				Msg("Chunk submission failed, aborting run")
			return nil, err
		}

		responses = append(responses, body)
		submitted += len(chunk)
		qpChunksSubmitted.Inc()
		qpProfilesSubmitted.Add(float64(len(chunk)))

		if s.config.Progress != nil {
			s.config.Progress(submitted)
		}

		s.logger.Debug().
			Int("chunk", i+1).
			Int("chunks", len(chunks)).
			Int("submitted", submitted).
			Msg("Chunk submitted")
	}

	s.logger.Info().
		Int("profiles", submitted).
		Int("chunks", len(chunks)).
		Dur("duration", time.Since(start)).
		Msg("Submission complete")

	return responses, nil
}

// chunkProfiles partitions profiles into consecutive chunks of size elements,
// the final chunk holding the remainder. Order is preserved and the chunks
// alias the input slice.
func chunkProfiles(profiles []Profile, size int) [][]Profile {
	chunks := make([][]Profile, 0, (len(profiles)+size-1)/size)
	for start := 0; start < len(profiles); start += size {
		end := start + size
		if end > len(profiles) {
			end = len(profiles)
		}
		chunks = append(chunks, profiles[start:end])
	}
	return chunks
}

// intervalLimit converts a pacing interval to a limiter rate. A zero or
// negative interval means no pacing at all.
func intervalLimit(interval time.Duration) rate.Limit {
	if interval <= 0 {
		return rate.Inf
	}
	return rate.Every(interval)
}
