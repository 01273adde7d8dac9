package domain

import (
	"time"
)

type BoardId = int64

// DefaultBoardId is the board every submission is attached to.
const DefaultBoardId BoardId = 1

type Board struct {
	Id            BoardId
	Title         string
	Administrator string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
