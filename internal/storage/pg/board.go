package pg

import (
	"database/sql"
	"errors"

	"github.com/hanzawa-dev/gobbs/internal/domain"
	internal_errors "github.com/hanzawa-dev/gobbs/internal/errors"
)

func (s *Storage) GetBoard(id domain.BoardId) (*domain.Board, error) {
	var b domain.Board
	err := s.db.QueryRow(`
	SELECT id, title, administrator, created, updated
	FROM boards
	WHERE id = $1`, id).Scan(&b.Id, &b.Title, &b.Administrator, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound
		}
		return nil, err
	}
	return &b, nil
}
