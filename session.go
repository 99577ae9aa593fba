package main

import (
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/pivolan/customer_dashboard/domain/models"
)

// DashboardSession is one uploaded dataset plus its identity. A re-upload
// replaces the whole session value; the Dataset inside is immutable.
type DashboardSession struct {
	ID         string
	ChatID     int64 // telegram chat bound to the session, 0 for web-only
	FileName   string
	UploadedAt time.Time
	LastSeen   time.Time
	Dataset    models.Dataset
}

type reservedLink struct {
	chatID  int64
	created time.Time
}

// SessionStore owns every live session. The "current dataset" of a user
// lives here and nowhere else.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*DashboardSession
	byChat   map[int64]string
	reserved map[string]reservedLink
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: map[string]*DashboardSession{},
		byChat:   map[int64]string{},
		reserved: map[string]reservedLink{},
		now:      time.Now,
	}
}

// Put stores an uploaded dataset. An empty id mints a fresh one; a known id
// atomically replaces that session's dataset. Ids reserved for a chat bind
// the session to the chat.
func (s *SessionStore) Put(id string, chatID int64, dataset models.Dataset) *DashboardSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.NewV4().String()
	}
	if chatID == 0 {
		if r, ok := s.reserved[id]; ok {
			chatID = r.chatID
		}
	}

	now := s.now()
	sess := &DashboardSession{
		ID:         id,
		ChatID:     chatID,
		FileName:   dataset.Source,
		UploadedAt: now,
		LastSeen:   now,
		Dataset:    dataset,
	}
	s.sessions[id] = sess
	if chatID != 0 {
		s.byChat[chatID] = id
	}
	return sess
}

// PutForChat replaces the chat's current session with a new dataset.
func (s *SessionStore) PutForChat(chatID int64, dataset models.Dataset) *DashboardSession {
	s.mu.RLock()
	id := s.byChat[chatID]
	s.mu.RUnlock()
	return s.Put(id, chatID, dataset)
}

// Get returns a session by id and marks it as used.
func (s *SessionStore) Get(id string) (*DashboardSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		sess.LastSeen = s.now()
	}
	return sess, ok
}

// GetByChat returns the chat's current session, if a file was uploaded.
func (s *SessionStore) GetByChat(chatID int64) (*DashboardSession, bool) {
	s.mu.RLock()
	id, ok := s.byChat[chatID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return s.Get(id)
}

// Reserve binds a fresh upload id to a telegram chat so a browser upload
// under that id lands in the chat's session.
func (s *SessionStore) Reserve(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewV4().String()
	s.reserved[id] = reservedLink{chatID: chatID, created: s.now()}
	return id
}

// Sweep drops sessions unused for longer than ttl and stale reserved links.
// Returns the number of sessions removed.
func (s *SessionStore) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeen) <= ttl {
			continue
		}
		delete(s.sessions, id)
		if sess.ChatID != 0 && s.byChat[sess.ChatID] == id {
			delete(s.byChat, sess.ChatID)
		}
		removed++
	}
	for id, r := range s.reserved {
		if now.Sub(r.created) > ttl {
			delete(s.reserved, id)
		}
	}
	return removed
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
