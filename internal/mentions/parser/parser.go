package parser

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"mentiond/internal/mentions/metrics"
	"mentiond/internal/mentions/models"
	"mentiond/internal/mentions/ports"
	pkgerrors "mentiond/pkg/errors"
)

// Parser rewrites mention candidates in post content into display links.
// It is safe for concurrent use.
type Parser struct {
	users   ports.Users
	groups  ports.Groups
	baseURL string
	display models.DisplayMode
	slugify Slugify
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithSlugify injects the host's slug normalization.
func WithSlugify(fn Slugify) Option {
	return func(p *Parser) {
		p.slugify = fn
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Parser) {
		p.metrics = m
	}
}

// New creates a Parser. baseURL is the site root used in generated links;
// display selects the rewrite display policy.
func New(users ports.Users, groups ports.Groups, baseURL string, display models.DisplayMode, opts ...Option) (*Parser, error) {
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if groups == nil {
		return nil, fmt.Errorf("group store is required")
	}

	p := &Parser{
		users:   users,
		groups:  groups,
		baseURL: baseURL,
		display: display,
		slugify: DefaultSlugify,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ParsePost rewrites post.Content in place.
func (p *Parser) ParsePost(ctx context.Context, post *models.Post) error {
	if post == nil || post.Content == "" {
		return nil
	}
	content, err := p.ParseRaw(ctx, post.Content)
	if err != nil {
		return err
	}
	post.Content = content
	return nil
}

// ParseRaw returns content with every resolvable mention replaced by a link.
// Content arrives already rendered, so only code regions are protected here;
// blockquoted mentions still get their links.
func (p *Parser) ParseRaw(ctx context.Context, content string) (string, error) {
	if p.metrics != nil {
		p.metrics.PostsParsed.Inc()
	}

	spans := Split(content, SplitOptions{Code: true})
	candidates := CandidatesInSpans(spans, p.slugify)
	if len(candidates) == 0 {
		return content, nil
	}

	resolutions, err := p.Resolve(ctx, candidates)
	if err != nil {
		return "", err
	}

	rewritten := 0
	for _, res := range resolutions {
		if !res.Resolved() {
			continue
		}
		rewriteSpans(spans, res, p.baseURL, p.display)
		rewritten++
	}
	if rewritten > 0 {
		p.logger.DebugContext(ctx, "mentions rewritten",
			"candidates", len(candidates),
			"rewritten", rewritten,
		)
	}
	return Join(spans), nil
}

// Resolve looks up every candidate against user and group identity. The two
// lookups per candidate run concurrently and succeed independently; a
// candidate matching neither is returned unresolved, which is not an error.
func (p *Parser) Resolve(ctx context.Context, candidates []Candidate) ([]Resolution, error) {
	out := make([]Resolution, len(candidates))
	g, ctx := errgroup.WithContext(ctx)

	for i, c := range candidates {
		out[i].Candidate = c

		g.Go(func() error {
			uid, err := p.users.IDBySlug(ctx, c.Slug)
			if err != nil {
				return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "resolve user mention")
			}
			if uid.IsZero() {
				return nil
			}
			user, err := p.users.ByID(ctx, uid)
			if err != nil {
				return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load mentioned user")
			}
			if user != nil {
				out[i].User = &UserRef{ID: user.ID, Username: user.Username, Fullname: user.Fullname}
			}
			return nil
		})

		g.Go(func() error {
			exists, err := p.groups.ExistsBySlug(ctx, c.Slug)
			if err != nil {
				return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "resolve group mention")
			}
			if exists {
				out[i].Group = &GroupRef{Slug: c.Slug}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
