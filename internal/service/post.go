package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/hanzawa-dev/gobbs/internal/domain"
	internal_errors "github.com/hanzawa-dev/gobbs/internal/errors"
	"github.com/hanzawa-dev/gobbs/internal/logger"
)

// borderYears is the rolling window: posts younger than this show on the
// main list, older ones move to the history view.
const borderYears = 3

// historyPageLimit is fixed, the settings table only drives the main list.
const historyPageLimit = 10

type PostService interface {
	Recent(boardId domain.BoardId, page int, keyword string) (*domain.PostFeed, error)
	History(boardId domain.BoardId, page int, keyword string) (*domain.PostFeed, error)
	Create(name, message string) (domain.PostId, error)
	Good(id domain.PostId) error
	Bad(id domain.PostId) error
}

type PostStorage interface {
	RecentPosts(q domain.PostQuery) ([]domain.Post, int, error)
	HistoryPosts(q domain.PostQuery) ([]domain.Post, int, error)
	HasOlderPosts(boardId domain.BoardId, border time.Time) (bool, error)
	CreatePost(boardId domain.BoardId, name, message string) (domain.PostId, error)
	IncrementGood(id domain.PostId) error
	IncrementBad(id domain.PostId) error
}

type SettingsStorage interface {
	ActiveSetting(key string) (string, error)
}

type Post struct {
	storage  PostStorage
	settings SettingsStorage
	now      func() time.Time // swappable in tests
}

func NewPost(storage PostStorage, settings SettingsStorage) *Post {
	return &Post{storage: storage, settings: settings, now: time.Now}
}

// Recent assembles one page of the windowed list: posts created within the
// last borderYears, newest first, optionally filtered by keyword.
func (p *Post) Recent(boardId domain.BoardId, page int, keyword string) (*domain.PostFeed, error) {
	page = clampPage(page)
	border := p.border()

	posts, totalPages, err := p.storage.RecentPosts(domain.PostQuery{
		BoardId: boardId,
		Border:  border,
		Keyword: keyword,
		Page:    page,
		Limit:   p.listLimit(),
	})
	if err != nil {
		return nil, err
	}

	hasOlder, err := p.storage.HasOlderPosts(boardId, border)
	if err != nil {
		return nil, err
	}

	return &domain.PostFeed{
		Posts:         posts,
		CurrentPage:   page,
		TotalPages:    totalPages,
		HasOlderPosts: hasOlder,
	}, nil
}

// History assembles one page of posts that fell out of the rolling window.
func (p *Post) History(boardId domain.BoardId, page int, keyword string) (*domain.PostFeed, error) {
	page = clampPage(page)

	posts, totalPages, err := p.storage.HistoryPosts(domain.PostQuery{
		BoardId: boardId,
		Border:  p.border(),
		Keyword: keyword,
		Page:    page,
		Limit:   historyPageLimit,
	})
	if err != nil {
		return nil, err
	}

	return &domain.PostFeed{
		Posts:       posts,
		CurrentPage: page,
		TotalPages:  totalPages,
	}, nil
}

// Create persists a validated submission. The board is always the default
// one and the counters start at zero; the store stamps the creation time.
func (p *Post) Create(name, message string) (domain.PostId, error) {
	return p.storage.CreatePost(domain.DefaultBoardId, name, message)
}

func (p *Post) Good(id domain.PostId) error {
	return p.storage.IncrementGood(id)
}

func (p *Post) Bad(id domain.PostId) error {
	return p.storage.IncrementBad(id)
}

func (p *Post) border() time.Time {
	return p.now().AddDate(-borderYears, 0, 0)
}

func clampPage(page int) int {
	if page < 0 {
		return 0
	}
	return page
}

// listLimit resolves the page size from the settings store, falling back to
// the hardcoded default when the row is absent, inactive or unparsable.
func (p *Post) listLimit() int {
	value, err := p.settings.ActiveSetting(domain.SettingListViewLimit)
	if err != nil {
		if !errors.Is(err, internal_errors.NotFound) {
			logger.Log.Warn("settings lookup failed", "key", domain.SettingListViewLimit, "error", err)
		}
		return domain.DefaultListViewLimit
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit <= 0 {
		logger.Log.Warn("unusable setting value", "key", domain.SettingListViewLimit, "value", value)
		return domain.DefaultListViewLimit
	}
	return limit
}
