package domain

import (
	"time"
)

type PostId = int64

const (
	NameMaxLen    = 32
	MessageMaxLen = 1000
)

type Post struct {
	Id        PostId
	BoardId   BoardId
	Name      string
	Message   string
	GoodCount int
	BadCount  int
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// PostQuery describes one page of a windowed post listing.
// Border splits the rolling window: recent queries take rows created at or
// after it, history queries take rows created strictly before it.
type PostQuery struct {
	BoardId BoardId
	Border  time.Time
	Keyword string // empty matches everything
	Page    int    // zero-based
	Limit   int
}

// to iterate thru layers: storage -> service -> handler
type PostFeed struct {
	Posts         []Post
	CurrentPage   int
	TotalPages    int
	HasOlderPosts bool // recent flow only
}
