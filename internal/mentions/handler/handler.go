// Package handler exposes the mentions module over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"mentiond/internal/mentions/models"
	"mentiond/internal/mentions/ports"
	"mentiond/internal/platform/metrics"
	"mentiond/internal/platform/middleware"
	pkgerrors "mentiond/pkg/errors"
	"mentiond/pkg/requestcontext"
)

// Parser rewrites mentions in rendered content.
type Parser interface {
	ParseRaw(ctx context.Context, content string) (string, error)
}

// Notifier runs a mention notification dispatch for a post.
type Notifier interface {
	Notify(ctx context.Context, post *models.Post) error
}

// Handler handles the mentions HTTP endpoints.
type Handler struct {
	logger   *slog.Logger
	parser   Parser
	notifier Notifier
	users    ports.Users
	groups   ports.Groups
	settings models.Settings
	metrics  *metrics.Metrics
}

// New creates a mentions Handler.
func New(
	parser Parser,
	notifier Notifier,
	users ports.Users,
	groups ports.Groups,
	settings models.Settings,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Handler {
	return &Handler{
		logger:   logger,
		parser:   parser,
		notifier: notifier,
		users:    users,
		groups:   groups,
		settings: settings,
		metrics:  metrics,
	}
}

// Register mounts the mentions routes with the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(h.metrics))

	router.Post("/api/mentions/parse", h.handleParse)
	router.Post("/api/mentions/notify", h.handleNotify)
	router.Get("/api/mentions/groups", h.handleGroups)
	router.Get("/api/mentions/users", h.handleUserSearch)
	router.Get("/api/admin/mentions/settings", h.handleSettings)

	r.Mount("/", router)
}

type parseRequest struct {
	Content string `json:"content"`
}

type parseResponse struct {
	Content string `json:"content"`
}

// handleParse previews the mention rewrite for a piece of rendered content.
func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, pkgerrors.New(pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}

	content, err := h.parser.ParseRaw(ctx, req.Content)
	if err != nil {
		h.logger.ErrorContext(ctx, "parse preview failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{Content: content})
}

type notifyRequest struct {
	ID         int64  `json:"id"`
	TopicID    int64  `json:"topic_id"`
	CategoryID int64  `json:"category_id"`
	AuthorID   int64  `json:"author_id"`
	ReplyTo    int64  `json:"reply_to"`
	Content    string `json:"content"`
}

// handleNotify triggers a mention dispatch for a freshly created post.
func (h *Handler) handleNotify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, pkgerrors.New(pkgerrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.ID <= 0 || req.TopicID <= 0 || req.AuthorID <= 0 {
		writeError(w, pkgerrors.New(pkgerrors.CodeBadRequest, "id, topic_id and author_id are required"))
		return
	}

	post := &models.Post{
		ID:         req.ID,
		TopicID:    req.TopicID,
		CategoryID: req.CategoryID,
		AuthorID:   models.UserID(req.AuthorID),
		ReplyTo:    req.ReplyTo,
		Content:    req.Content,
	}
	if err := h.notifier.Notify(ctx, post); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

type groupsResponse struct {
	Groups []string `json:"groups"`
}

// handleGroups lists groups for composer autofill. Disabled autofill yields
// an empty list, not an error, so composers need no feature probing.
func (h *Handler) handleGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.settings.AutofillGroups {
		writeJSON(w, http.StatusOK, groupsResponse{Groups: []string{}})
		return
	}

	names, err := h.groups.Visible(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "group autofill failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		writeError(w, pkgerrors.New(pkgerrors.CodeInternal, "failed to list groups"))
		return
	}

	excluded := h.settings.NoMentionGroups()
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if !slices.Contains(excluded, name) {
			filtered = append(filtered, name)
		}
	}
	writeJSON(w, http.StatusOK, groupsResponse{Groups: filtered})
}

type userResult struct {
	UID      int64  `json:"uid"`
	Username string `json:"username"`
	Userslug string `json:"userslug"`
	Fullname string `json:"fullname,omitempty"`
}

type usersResponse struct {
	Users []userResult `json:"users"`
}

// handleUserSearch finds users for composer autofill. It searches by
// username and by fullname; the fullname leg only surfaces users who opted
// into showing their fullname, so the search cannot uncover hidden names.
func (h *Handler) handleUserSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("query")

	found, err := h.users.Search(ctx, query, "username")
	if err != nil {
		h.logger.ErrorContext(ctx, "user search failed",
			"request_id", requestcontext.RequestID(ctx),
			"query", query,
			"error", err.Error(),
		)
		writeError(w, pkgerrors.New(pkgerrors.CodeInternal, "failed to search users"))
		return
	}

	byFullname, err := h.users.Search(ctx, query, "fullname")
	if err != nil {
		h.logger.ErrorContext(ctx, "fullname search failed",
			"request_id", requestcontext.RequestID(ctx),
			"query", query,
			"error", err.Error(),
		)
		writeError(w, pkgerrors.New(pkgerrors.CodeInternal, "failed to search users"))
		return
	}

	seen := make(map[models.UserID]struct{}, len(found))
	for _, u := range found {
		seen[u.ID] = struct{}{}
	}
	for _, u := range byFullname {
		if !u.ShowFullname {
			continue
		}
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		found = append(found, u)
	}

	results := make([]userResult, 0, len(found))
	for _, u := range found {
		item := userResult{
			UID:      int64(u.ID),
			Username: u.Username,
			Userslug: u.Userslug,
		}
		if u.ShowFullname {
			item.Fullname = u.Fullname
		}
		results = append(results, item)
	}
	writeJSON(w, http.StatusOK, usersResponse{Users: results})
}

type settingsResponse struct {
	DisableFollowedTopics   bool     `json:"disableFollowedTopics"`
	AutofillGroups          bool     `json:"autofillGroups"`
	DisableGroupMentions    []string `json:"disableGroupMentions"`
	OverrideIgnores         bool     `json:"overrideIgnores"`
	Display                 string   `json:"display"`
	PrivilegedDirectReplies bool     `json:"privilegedDirectReplies"`
}

// handleSettings exposes the active settings snapshot for the admin page.
func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	groups := h.settings.DisableGroupMentions
	if groups == nil {
		groups = []string{}
	}
	writeJSON(w, http.StatusOK, settingsResponse{
		DisableFollowedTopics:   h.settings.DisableFollowedTopics,
		AutofillGroups:          h.settings.AutofillGroups,
		DisableGroupMentions:    groups,
		OverrideIgnores:         h.settings.OverrideIgnores,
		Display:                 string(h.settings.Display),
		PrivilegedDirectReplies: h.settings.PrivilegedDirectReplies,
	})
}
