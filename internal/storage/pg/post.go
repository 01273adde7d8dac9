package pg

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"

	"github.com/hanzawa-dev/gobbs/internal/domain"
	internal_errors "github.com/hanzawa-dev/gobbs/internal/errors"
)

// position() instead of LIKE keeps user-supplied % and _ literal while
// preserving the case-sensitive substring semantics.
const recentWhere = `
	board_id = $1
	AND created >= $2
	AND ($3 = '' OR position($3 in message) > 0 OR position($3 in name) > 0)`

const historyWhere = `
	board_id = $1
	AND created < $2
	AND ($3 = '' OR position($3 in message) > 0 OR position($3 in name) > 0)`

// RecentPosts returns one page of posts created at or after the border,
// newest first, plus the total page count for the filtered set.
func (s *Storage) RecentPosts(q domain.PostQuery) ([]domain.Post, int, error) {
	return s.postPage(recentWhere, q)
}

// HistoryPosts is the counterpart for posts created strictly before the border.
func (s *Storage) HistoryPosts(q domain.PostQuery) ([]domain.Post, int, error) {
	return s.postPage(historyWhere, q)
}

func (s *Storage) postPage(where string, q domain.PostQuery) ([]domain.Post, int, error) {
	var total int
	err := s.db.QueryRow(`SELECT count(*) FROM posts WHERE`+where,
		q.BoardId, q.Border, q.Keyword).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(`
	SELECT id, board_id, name, message, good_count, bad_count, created, updated
	FROM posts
	WHERE`+where+`
	ORDER BY created DESC
	LIMIT $4 OFFSET $5`,
		q.BoardId, q.Border, q.Keyword, q.Limit, q.Page*q.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.Id, &p.BoardId, &p.Name, &p.Message,
			&p.GoodCount, &p.BadCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	totalPages := 0
	if q.Limit > 0 {
		totalPages = (total + q.Limit - 1) / q.Limit
	}
	return posts, totalPages, nil
}

// HasOlderPosts reports whether any post on the board predates the border.
func (s *Storage) HasOlderPosts(boardId domain.BoardId, border time.Time) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
	SELECT EXISTS (SELECT 1 FROM posts WHERE board_id = $1 AND created < $2)`,
		boardId, border).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CreatePost inserts a new post with zeroed counters and returns the
// store-assigned id.
func (s *Storage) CreatePost(boardId domain.BoardId, name, message string) (domain.PostId, error) {
	createdTs := time.Now().UTC().Round(time.Microsecond) // database anyway round to microsecond

	var id domain.PostId
	err := s.db.QueryRow(`
	INSERT INTO posts(board_id, name, message, good_count, bad_count, created)
	VALUES($1, $2, $3, 0, 0, $4)
	RETURNING id`,
		boardId, name, message, createdTs).Scan(&id)
	if err != nil {
		return -1, err
	}
	return id, nil
}

// IncrementGood bumps the good counter by one in a single statement, so
// concurrent votes never lose updates. Unknown ids are a silent no-op.
func (s *Storage) IncrementGood(id domain.PostId) error {
	return s.incrementCounter(`
	UPDATE posts SET good_count = good_count + 1, updated = $2 WHERE id = $1`, id)
}

// IncrementBad is the counterpart for the bad counter.
func (s *Storage) IncrementBad(id domain.PostId) error {
	return s.incrementCounter(`
	UPDATE posts SET bad_count = bad_count + 1, updated = $2 WHERE id = $1`, id)
}

func (s *Storage) incrementCounter(query string, id domain.PostId) error {
	updatedTs := time.Now().UTC().Round(time.Microsecond)
	result, err := s.db.Exec(query, id, updatedTs)
	if err != nil {
		return err
	}
	// zero rows affected means the post does not exist, which is not an error
	if _, err := result.RowsAffected(); err != nil {
		return err
	}
	return nil
}

// GetPost is a point lookup, mainly used by tests and tooling.
func (s *Storage) GetPost(id domain.PostId) (*domain.Post, error) {
	var p domain.Post
	err := s.db.QueryRow(`
	SELECT id, board_id, name, message, good_count, bad_count, created, updated
	FROM posts
	WHERE id = $1`, id).Scan(&p.Id, &p.BoardId, &p.Name, &p.Message,
		&p.GoodCount, &p.BadCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound
		}
		return nil, err
	}
	return &p, nil
}
