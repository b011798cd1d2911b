package forum

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"mentiond/internal/mentions/models"
)

// PostgresStore backs the Topics, Posts, Privileges and Notifications ports
// with the forum's tables. Expected schema:
//
//	topics(id, title, category_id)
//	topic_followers(topic_id, user_id)
//	topic_ignorers(topic_id, user_id)
//	posts(id, topic_id, category_id, author_id, reply_to, content)
//	category_read_revocations(category_id, user_id)
//	notifications(id, type, body_short, body_long, post_id, topic_id,
//	              from_uid, path, topic_title, importance)
//	notification_recipients(notification_id, user_id)
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed forum store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ByID(ctx context.Context, topicID int64) (*models.Topic, error) {
	t := models.Topic{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, category_id FROM topics WHERE id = $1`, topicID).
		Scan(&t.ID, &t.Title, &t.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("topic by id: %w", err)
	}
	return &t, nil
}

func (s *PostgresStore) Followers(ctx context.Context, topicID int64) ([]models.UserID, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM topic_followers WHERE topic_id = $1`, topicID)
	if err != nil {
		return nil, fmt.Errorf("topic followers: %w", err)
	}
	defer rows.Close()
	return scanUserIDs(rows)
}

func (s *PostgresStore) FilterIgnoring(ctx context.Context, topicID int64, uids []models.UserID) ([]models.UserID, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM topic_ignorers WHERE topic_id = $1 AND user_id = ANY($2)`,
		topicID, pq.Array(toInt64s(uids)))
	if err != nil {
		return nil, fmt.Errorf("topic ignorers: %w", err)
	}
	defer rows.Close()
	ignoring, err := scanUserIDSet(rows)
	if err != nil {
		return nil, err
	}
	return exclude(uids, ignoring), nil
}

func (s *PostgresStore) ReplyTarget(ctx context.Context, postID int64) (int64, error) {
	var toPid int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(reply_to, 0) FROM posts WHERE id = $1`, postID).Scan(&toPid)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("post reply target: %w", err)
	}
	return toPid, nil
}

func (s *PostgresStore) AuthorID(ctx context.Context, postID int64) (models.UserID, error) {
	var uid int64
	err := s.db.QueryRowContext(ctx,
		`SELECT author_id FROM posts WHERE id = $1`, postID).Scan(&uid)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("post author: %w", err)
	}
	return models.UserID(uid), nil
}

func (s *PostgresStore) FilterReadable(ctx context.Context, topicID int64, uids []models.UserID) ([]models.UserID, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM category_read_revocations
		 WHERE category_id = (SELECT category_id FROM topics WHERE id = $1)
		   AND user_id = ANY($2)`,
		topicID, pq.Array(toInt64s(uids)))
	if err != nil {
		return nil, fmt.Errorf("read revocations: %w", err)
	}
	defer rows.Close()
	revoked, err := scanUserIDSet(rows)
	if err != nil {
		return nil, err
	}
	return exclude(uids, revoked), nil
}

// Create upserts the notification record on its composite id so repeated
// dispatches for a post collapse into one row.
func (s *PostgresStore) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if n == nil || n.ID == "" {
		return nil, nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications
		   (id, type, body_short, body_long, post_id, topic_id, from_uid, path, topic_title, importance)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET
		   body_short = EXCLUDED.body_short,
		   body_long  = EXCLUDED.body_long,
		   topic_title = EXCLUDED.topic_title`,
		n.ID, n.Type, n.BodyShort, n.BodyLong, n.PostID, n.TopicID, int64(n.From), n.Path, n.TopicTitle, n.Importance)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Push(ctx context.Context, n *models.Notification, uids []models.UserID) error {
	if len(uids) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notification_recipients (notification_id, user_id)
		 SELECT $1, unnest($2::bigint[])
		 ON CONFLICT DO NOTHING`,
		n.ID, pq.Array(toInt64s(uids)))
	if err != nil {
		return fmt.Errorf("push notification: %w", err)
	}
	return nil
}

func toInt64s(uids []models.UserID) []int64 {
	out := make([]int64, len(uids))
	for i, uid := range uids {
		out[i] = int64(uid)
	}
	return out
}

func scanUserIDs(rows *sql.Rows) ([]models.UserID, error) {
	var out []models.UserID
	for rows.Next() {
		var uid int64
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		out = append(out, models.UserID(uid))
	}
	return out, rows.Err()
}

func scanUserIDSet(rows *sql.Rows) (map[models.UserID]struct{}, error) {
	ids, err := scanUserIDs(rows)
	if err != nil {
		return nil, err
	}
	set := make(map[models.UserID]struct{}, len(ids))
	for _, uid := range ids {
		set[uid] = struct{}{}
	}
	return set, nil
}

func exclude(uids []models.UserID, drop map[models.UserID]struct{}) []models.UserID {
	out := make([]models.UserID, 0, len(uids))
	for _, uid := range uids {
		if _, ok := drop[uid]; !ok {
			out = append(out, uid)
		}
	}
	return out
}
