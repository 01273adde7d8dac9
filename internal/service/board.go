package service

import (
	"errors"

	"github.com/hanzawa-dev/gobbs/internal/domain"
	internal_errors "github.com/hanzawa-dev/gobbs/internal/errors"
)

type BoardService interface {
	Get(id domain.BoardId) (*domain.Board, error)
}

type BoardStorage interface {
	GetBoard(id domain.BoardId) (*domain.Board, error)
}

type Board struct {
	storage BoardStorage
}

func NewBoard(storage BoardStorage) *Board {
	return &Board{storage}
}

// Get returns nil without error for unknown boards; the pages render their
// generic title in that case.
func (b *Board) Get(id domain.BoardId) (*domain.Board, error) {
	board, err := b.storage.GetBoard(id)
	if err != nil {
		if errors.Is(err, internal_errors.NotFound) {
			return nil, nil
		}
		return nil, err
	}
	return board, nil
}
