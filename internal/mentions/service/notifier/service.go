// Package notifier dispatches mention notifications for newly created posts:
// it derives the recipient set from the post's mentions, filters it down to
// users who should and may be notified, and pushes the survivors through the
// host notification API in rate-limited batches.
package notifier

import (
	"fmt"
	"log/slog"
	"time"

	"mentiond/internal/mentions/metrics"
	"mentiond/internal/mentions/models"
	"mentiond/internal/mentions/parser"
	"mentiond/internal/mentions/ports"
)

const (
	defaultBatchSize     = 500
	defaultBatchInterval = time.Second
)

// Collaborators bundles the host-side dependencies of the notifier.
type Collaborators struct {
	Users         ports.Users
	Groups        ports.Groups
	Topics        ports.Topics
	Posts         ports.Posts
	Privileges    ports.Privileges
	Notifications ports.Notifications
	Sent          ports.SentStore
}

func (c Collaborators) validate() error {
	switch {
	case c.Users == nil:
		return fmt.Errorf("user store is required")
	case c.Groups == nil:
		return fmt.Errorf("group store is required")
	case c.Topics == nil:
		return fmt.Errorf("topic store is required")
	case c.Posts == nil:
		return fmt.Errorf("post store is required")
	case c.Privileges == nil:
		return fmt.Errorf("privilege checker is required")
	case c.Notifications == nil:
		return fmt.Errorf("notification backend is required")
	case c.Sent == nil:
		return fmt.Errorf("sent store is required")
	}
	return nil
}

// Service runs mention notification dispatches. One post-creation event
// triggers exactly one Notify call; the service itself holds no per-dispatch
// state and is safe for concurrent use across posts.
type Service struct {
	c        Collaborators
	settings models.Settings
	hook     ports.DeliveryHook
	slugify  parser.Slugify
	logger   *slog.Logger
	metrics  *metrics.Metrics

	batchSize     int
	batchInterval time.Duration
	now           func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the dispatch logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithDeliveryHook sets the observer notified after every successful push.
func WithDeliveryHook(hook ports.DeliveryHook) Option {
	return func(s *Service) {
		s.hook = hook
	}
}

// WithSlugify injects the host's slug normalization.
func WithSlugify(fn parser.Slugify) Option {
	return func(s *Service) {
		s.slugify = fn
	}
}

// WithBatch overrides the batch size and minimum inter-batch interval.
func WithBatch(size int, interval time.Duration) Option {
	return func(s *Service) {
		s.batchSize = size
		s.batchInterval = interval
	}
}

// WithClock overrides the time source. Tests use this to pin sent-record
// scores.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a notifier Service.
func New(c Collaborators, settings models.Settings, opts ...Option) (*Service, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	s := &Service{
		c:             c,
		settings:      settings,
		slugify:       parser.DefaultSlugify,
		logger:        slog.New(slog.DiscardHandler),
		batchSize:     defaultBatchSize,
		batchInterval: defaultBatchInterval,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}
