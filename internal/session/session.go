package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hanzawa-dev/gobbs/internal/logger"
)

const CookieName = "bbs_session"

type contextKey string

const sessionContextKey contextKey = "session"

// Session is a per-user key-value association, scoped to one browser session.
type Session struct {
	mu       sync.RWMutex
	values   map[string]string
	lastSeen time.Time
}

func newSession() *Session {
	return &Session{values: make(map[string]string), lastSeen: time.Now()}
}

func (s *Session) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen.Before(cutoff)
}

// Store keeps all live sessions in memory, keyed by the cookie id.
type Store struct {
	mu            sync.RWMutex
	sessions      map[string]*Session
	secureCookies bool
}

func NewStore(secureCookies bool) *Store {
	return &Store{sessions: make(map[string]*Session), secureCookies: secureCookies}
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *Store) lookup(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *Store) create() (string, *Session) {
	id := uuid.NewString()
	s := newSession()
	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()
	return id, s
}

// getOrCreate resolves the session for the request, issuing a new cookie when
// the request carries none or an unknown/malformed id.
func (st *Store) getOrCreate(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			if s, ok := st.lookup(cookie.Value); ok {
				s.touch()
				return s
			}
		}
	}

	id, s := st.create()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   st.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// Middleware attaches the request's session to the context.
func (st *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := st.getOrCreate(w, r)
		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext retrieves the session placed by Middleware. Nil outside of it.
func FromContext(r *http.Request) *Session {
	sess, _ := r.Context().Value(sessionContextKey).(*Session)
	return sess
}

// StartGC evicts sessions idle longer than ttl, checking every interval,
// until ctx is cancelled.
func (st *Store) StartGC(ctx context.Context, interval, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n := st.evictIdle(time.Now().Add(-ttl))
				if n > 0 {
					logger.Log.Debug("evicted idle sessions", "count", n)
				}
			}
		}
	}()
}

func (st *Store) evictIdle(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if s.idleSince(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}
