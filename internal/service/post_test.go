package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzawa-dev/gobbs/internal/domain"
	internal_errors "github.com/hanzawa-dev/gobbs/internal/errors"
)

// MockPostStorage mocks the PostStorage interface.
type MockPostStorage struct {
	recentFunc   func(q domain.PostQuery) ([]domain.Post, int, error)
	historyFunc  func(q domain.PostQuery) ([]domain.Post, int, error)
	hasOlderFunc func(boardId domain.BoardId, border time.Time) (bool, error)
	createFunc   func(boardId domain.BoardId, name, message string) (domain.PostId, error)
	goodFunc     func(id domain.PostId) error
	badFunc      func(id domain.PostId) error
}

func (m *MockPostStorage) RecentPosts(q domain.PostQuery) ([]domain.Post, int, error) {
	if m.recentFunc != nil {
		return m.recentFunc(q)
	}
	return nil, 0, nil
}

func (m *MockPostStorage) HistoryPosts(q domain.PostQuery) ([]domain.Post, int, error) {
	if m.historyFunc != nil {
		return m.historyFunc(q)
	}
	return nil, 0, nil
}

func (m *MockPostStorage) HasOlderPosts(boardId domain.BoardId, border time.Time) (bool, error) {
	if m.hasOlderFunc != nil {
		return m.hasOlderFunc(boardId, border)
	}
	return false, nil
}

func (m *MockPostStorage) CreatePost(boardId domain.BoardId, name, message string) (domain.PostId, error) {
	if m.createFunc != nil {
		return m.createFunc(boardId, name, message)
	}
	return 1, nil
}

func (m *MockPostStorage) IncrementGood(id domain.PostId) error {
	if m.goodFunc != nil {
		return m.goodFunc(id)
	}
	return nil
}

func (m *MockPostStorage) IncrementBad(id domain.PostId) error {
	if m.badFunc != nil {
		return m.badFunc(id)
	}
	return nil
}

// MockSettingsStorage mocks the SettingsStorage interface.
type MockSettingsStorage struct {
	activeFunc func(key string) (string, error)
}

func (m *MockSettingsStorage) ActiveSetting(key string) (string, error) {
	if m.activeFunc != nil {
		return m.activeFunc(key)
	}
	return "", internal_errors.NotFound
}

func fixedNow() time.Time {
	return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestPost(storage *MockPostStorage, settings *MockSettingsStorage) *Post {
	p := NewPost(storage, settings)
	p.now = fixedNow
	return p
}

func TestRecent_QueryShape(t *testing.T) {
	var captured domain.PostQuery
	storage := &MockPostStorage{
		recentFunc: func(q domain.PostQuery) ([]domain.Post, int, error) {
			captured = q
			return []domain.Post{{Id: 1, Name: "anon"}}, 2, nil
		},
		hasOlderFunc: func(boardId domain.BoardId, border time.Time) (bool, error) {
			return true, nil
		},
	}
	p := newTestPost(storage, &MockSettingsStorage{})

	feed, err := p.Recent(1, 0, "hello")
	require.NoError(t, err)

	assert.Equal(t, domain.BoardId(1), captured.BoardId)
	assert.Equal(t, "hello", captured.Keyword)
	assert.Equal(t, 0, captured.Page)
	assert.Equal(t, domain.DefaultListViewLimit, captured.Limit)
	assert.Equal(t, fixedNow().AddDate(-3, 0, 0), captured.Border)

	assert.Len(t, feed.Posts, 1)
	assert.Equal(t, 2, feed.TotalPages)
	assert.True(t, feed.HasOlderPosts)
	assert.Equal(t, 0, feed.CurrentPage)
}

func TestRecent_ClampsNegativePage(t *testing.T) {
	var captured domain.PostQuery
	storage := &MockPostStorage{
		recentFunc: func(q domain.PostQuery) ([]domain.Post, int, error) {
			captured = q
			return nil, 0, nil
		},
	}
	p := newTestPost(storage, &MockSettingsStorage{})

	feed, err := p.Recent(1, -5, "")
	require.NoError(t, err)
	assert.Equal(t, 0, captured.Page)
	assert.Equal(t, 0, feed.CurrentPage)
}

func TestRecent_PageSizeFromSettings(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		err       error
		wantLimit int
	}{
		{name: "configured", value: "25", wantLimit: 25},
		{name: "absent row", err: internal_errors.NotFound, wantLimit: domain.DefaultListViewLimit},
		{name: "unparsable", value: "lots", wantLimit: domain.DefaultListViewLimit},
		{name: "non-positive", value: "0", wantLimit: domain.DefaultListViewLimit},
		{name: "lookup failure", err: errors.New("db down"), wantLimit: domain.DefaultListViewLimit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured domain.PostQuery
			storage := &MockPostStorage{
				recentFunc: func(q domain.PostQuery) ([]domain.Post, int, error) {
					captured = q
					return nil, 0, nil
				},
			}
			settings := &MockSettingsStorage{
				activeFunc: func(key string) (string, error) {
					assert.Equal(t, domain.SettingListViewLimit, key)
					return tc.value, tc.err
				},
			}
			p := newTestPost(storage, settings)

			_, err := p.Recent(1, 0, "")
			require.NoError(t, err)
			assert.Equal(t, tc.wantLimit, captured.Limit)
		})
	}
}

func TestRecent_StorageError(t *testing.T) {
	storage := &MockPostStorage{
		recentFunc: func(q domain.PostQuery) ([]domain.Post, int, error) {
			return nil, 0, errors.New("boom")
		},
	}
	p := newTestPost(storage, &MockSettingsStorage{})

	_, err := p.Recent(1, 0, "")
	assert.Error(t, err)
}

func TestHistory_QueryShape(t *testing.T) {
	var captured domain.PostQuery
	storage := &MockPostStorage{
		historyFunc: func(q domain.PostQuery) ([]domain.Post, int, error) {
			captured = q
			return []domain.Post{{Id: 9}}, 3, nil
		},
	}
	// settings must not drive the history page size
	settings := &MockSettingsStorage{
		activeFunc: func(key string) (string, error) { return "50", nil },
	}
	p := newTestPost(storage, settings)

	feed, err := p.History(2, -1, "old")
	require.NoError(t, err)

	assert.Equal(t, domain.BoardId(2), captured.BoardId)
	assert.Equal(t, 0, captured.Page)
	assert.Equal(t, historyPageLimit, captured.Limit)
	assert.Equal(t, "old", captured.Keyword)
	assert.Equal(t, fixedNow().AddDate(-3, 0, 0), captured.Border)

	assert.Equal(t, 3, feed.TotalPages)
	assert.False(t, feed.HasOlderPosts)
}

func TestCreate_ForcesDefaultBoard(t *testing.T) {
	var gotBoard domain.BoardId
	var gotName, gotMessage string
	storage := &MockPostStorage{
		createFunc: func(boardId domain.BoardId, name, message string) (domain.PostId, error) {
			gotBoard, gotName, gotMessage = boardId, name, message
			return 42, nil
		},
	}
	p := newTestPost(storage, &MockSettingsStorage{})

	id, err := p.Create("anon", "hi")
	require.NoError(t, err)
	assert.Equal(t, domain.PostId(42), id)
	assert.Equal(t, domain.DefaultBoardId, gotBoard)
	assert.Equal(t, "anon", gotName)
	assert.Equal(t, "hi", gotMessage)
}

func TestVote_Delegates(t *testing.T) {
	var goodId, badId domain.PostId
	storage := &MockPostStorage{
		goodFunc: func(id domain.PostId) error { goodId = id; return nil },
		badFunc:  func(id domain.PostId) error { badId = id; return nil },
	}
	p := newTestPost(storage, &MockSettingsStorage{})

	require.NoError(t, p.Good(7))
	require.NoError(t, p.Bad(8))
	assert.Equal(t, domain.PostId(7), goodId)
	assert.Equal(t, domain.PostId(8), badId)
}
