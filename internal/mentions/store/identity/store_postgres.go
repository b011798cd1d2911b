package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"mentiond/internal/mentions/models"
)

// PostgresStore backs the Users and Groups ports with the forum's identity
// tables. Expected schema:
//
//	users(id, username, userslug, fullname, show_fullname, is_admin, is_global_mod)
//	groups(id, name, slug, hidden)
//	group_members(group_id, user_id)
//	category_moderators(category_id, user_id)
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed identity store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE userslug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user exists by slug: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) IDBySlug(ctx context.Context, slug string) (models.UserID, error) {
	var uid int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE userslug = $1`, slug).Scan(&uid)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("user id by slug: %w", err)
	}
	return models.UserID(uid), nil
}

func (s *PostgresStore) ByID(ctx context.Context, uid models.UserID) (*models.User, error) {
	if uid.IsZero() {
		return nil, nil
	}
	u := models.User{}
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, userslug, COALESCE(fullname, ''), show_fullname
		 FROM users WHERE id = $1`, int64(uid)).
		Scan(&id, &u.Username, &u.Userslug, &u.Fullname, &u.ShowFullname)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user by id: %w", err)
	}
	u.ID = models.UserID(id)
	return &u, nil
}

func (s *PostgresStore) Search(ctx context.Context, query, searchBy string) ([]*models.User, error) {
	column := "username"
	if searchBy == "fullname" {
		column = "fullname"
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, userslug, COALESCE(fullname, ''), show_fullname
		 FROM users WHERE `+column+` ILIKE '%' || $1 || '%'
		 ORDER BY id LIMIT 50`, query)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u := models.User{}
		var id int64
		if err := rows.Scan(&id, &u.Username, &u.Userslug, &u.Fullname, &u.ShowFullname); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		u.ID = models.UserID(id)
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) IsAdministrator(ctx context.Context, uid models.UserID) (bool, error) {
	var isAdmin bool
	err := s.db.QueryRowContext(ctx,
		`SELECT is_admin FROM users WHERE id = $1`, int64(uid)).Scan(&isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("is administrator: %w", err)
	}
	return isAdmin, nil
}

func (s *PostgresStore) IsModerator(ctx context.Context, uid models.UserID, categoryID int64) (bool, error) {
	var isMod bool
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE((SELECT is_global_mod FROM users WHERE id = $1), FALSE)
		     OR EXISTS (SELECT 1 FROM category_moderators WHERE category_id = $2 AND user_id = $1)`,
		int64(uid), categoryID).Scan(&isMod)
	if err != nil {
		return false, fmt.Errorf("is moderator: %w", err)
	}
	return isMod, nil
}

// PostgresGroups adapts the same database to the Groups port.
type PostgresGroups struct {
	db *sql.DB
}

// NewPostgresGroups constructs a PostgreSQL-backed group store.
func NewPostgresGroups(db *sql.DB) *PostgresGroups {
	return &PostgresGroups{db: db}
}

func (s *PostgresGroups) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM groups WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("group exists by slug: %w", err)
	}
	return exists, nil
}

func (s *PostgresGroups) NameBySlug(ctx context.Context, slug string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM groups WHERE slug = $1`, slug).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("group name by slug: %w", err)
	}
	return name, nil
}

func (s *PostgresGroups) Members(ctx context.Context, name string) ([]models.UserID, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT gm.user_id FROM group_members gm
		 JOIN groups g ON g.id = gm.group_id
		 WHERE g.name = $1 ORDER BY gm.user_id`, name)
	if err != nil {
		return nil, fmt.Errorf("group members: %w", err)
	}
	defer rows.Close()

	var out []models.UserID
	for rows.Next() {
		var uid int64
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("scan member row: %w", err)
		}
		out = append(out, models.UserID(uid))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate member rows: %w", err)
	}
	return out, nil
}

func (s *PostgresGroups) Visible(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM groups WHERE NOT hidden ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("visible groups: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan group row: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group rows: %w", err)
	}
	return out, nil
}
