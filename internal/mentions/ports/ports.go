// Package ports defines the collaborator interfaces the mentions module
// depends on. Interfaces live here because they are consumed by the parser,
// the notifier service, and the HTTP handler alike.
package ports

//go:generate go run go.uber.org/mock/mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"mentiond/internal/mentions/models"
)

// Users exposes the host user store. Lookups that miss return zero values,
// not errors: an unknown slug is an expected outcome.
type Users interface {
	// ExistsBySlug reports whether a user with the given slug exists.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// IDBySlug returns the user id for a slug, zero when no user matches.
	IDBySlug(ctx context.Context, slug string) (models.UserID, error)

	// ByID returns the user record, nil when the id is unknown or zero.
	ByID(ctx context.Context, uid models.UserID) (*models.User, error)

	// Search finds users by username or fullname for the composer endpoint.
	// searchBy is "username" or "fullname".
	Search(ctx context.Context, query, searchBy string) ([]*models.User, error)

	// IsAdministrator reports global administrator privilege.
	IsAdministrator(ctx context.Context, uid models.UserID) (bool, error)

	// IsModerator reports moderator privilege over a category, including
	// global moderators.
	IsModerator(ctx context.Context, uid models.UserID, categoryID int64) (bool, error)
}

// Groups exposes the host group store.
type Groups interface {
	// ExistsBySlug reports whether a group with the given slug exists.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// NameBySlug returns the canonical group name, empty when absent.
	NameBySlug(ctx context.Context, slug string) (string, error)

	// Members returns the full member id list of a group.
	Members(ctx context.Context, name string) ([]models.UserID, error)

	// Visible lists group names eligible for composer autofill.
	Visible(ctx context.Context) ([]string, error)
}

// Topics exposes topic data and follower/ignore state.
type Topics interface {
	// ByID returns the topic record, nil when unknown.
	ByID(ctx context.Context, topicID int64) (*models.Topic, error)

	// Followers returns the ids of users following a topic.
	Followers(ctx context.Context, topicID int64) ([]models.UserID, error)

	// FilterIgnoring removes uids that ignore the topic.
	FilterIgnoring(ctx context.Context, topicID int64, uids []models.UserID) ([]models.UserID, error)
}

// Posts exposes the post fields consulted during dispatch.
type Posts interface {
	// ReplyTarget returns the id of the post the given post replies to,
	// zero when it is not a reply.
	ReplyTarget(ctx context.Context, postID int64) (int64, error)

	// AuthorID returns the author of a post, zero when unknown.
	AuthorID(ctx context.Context, postID int64) (models.UserID, error)
}

// Privileges exposes read-privilege filtering.
type Privileges interface {
	// FilterReadable keeps only uids privileged to read the topic.
	FilterReadable(ctx context.Context, topicID int64, uids []models.UserID) ([]models.UserID, error)
}

// Notifications is the host notification subsystem contract.
type Notifications interface {
	// Create persists a notification record. Creation is idempotent on the
	// record id; a nil result means the record was suppressed and dispatch
	// should stop silently.
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)

	// Push delivers an already-created notification to the given uids.
	Push(ctx context.Context, n *models.Notification, uids []models.UserID) error
}

// SentStore is the durable per-post record of already-notified user ids.
// Additions are idempotent; the set never shrinks.
type SentStore interface {
	// Contains reports, positionally, which of uids are already recorded
	// for the post.
	Contains(ctx context.Context, postID int64, uids []models.UserID) ([]bool, error)

	// Add records uids as notified for the post, scored with the given time.
	Add(ctx context.Context, postID int64, uids []models.UserID, at time.Time) error
}

// DeliveryHook is the extensibility point fired after every successful push.
// Implementations must not block dispatch; failures are theirs to log.
type DeliveryHook interface {
	Delivered(ctx context.Context, event models.DeliveryEvent)
}
