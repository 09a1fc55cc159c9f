package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kozaktomas/passport-photo/internal/passport"
)

// StoredPhoto is a generated passport photo kept for follow-up downloads.
type StoredPhoto struct {
	ID        string
	Data      []byte
	MIMEType  string
	Options   passport.Options
	CreatedAt time.Time
	ExpiresAt time.Time
}

// PhotoStore keeps generated photos in memory for a limited time.
// Nothing is ever written to disk.
type PhotoStore struct {
	mu       sync.RWMutex
	photos   map[string]*StoredPhoto
	ttl      time.Duration
	max      int
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewPhotoStore creates a store holding at most max photos for ttl each.
func NewPhotoStore(ttl time.Duration, max int) *PhotoStore {
	if max < 1 {
		max = 1
	}
	return &PhotoStore{
		photos: make(map[string]*StoredPhoto),
		ttl:    ttl,
		max:    max,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
}

// Add stores a photo under a fresh id, evicting the oldest entry when full.
func (s *PhotoStore) Add(data []byte, mimeType string, opts passport.Options) *StoredPhoto {
	now := s.now()
	photo := &StoredPhoto{
		ID:        uuid.NewString(),
		Data:      data,
		MIMEType:  mimeType,
		Options:   opts,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeExpiredLocked(now)
	for len(s.photos) >= s.max {
		s.evictOldestLocked()
	}
	s.photos[photo.ID] = photo
	return photo
}

// Get returns a photo that has not expired yet.
func (s *PhotoStore) Get(id string) (*StoredPhoto, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	photo, ok := s.photos[id]
	if !ok || !s.now().Before(photo.ExpiresAt) {
		return nil, false
	}
	return photo, true
}

// Delete removes a photo and reports whether it existed.
func (s *PhotoStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.photos[id]
	delete(s.photos, id)
	return ok
}

// Len returns the number of stored photos, including expired ones not yet cleaned up.
func (s *PhotoStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.photos)
}

// Cleanup removes expired photos and returns how many were removed.
func (s *PhotoStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeExpiredLocked(s.now())
}

// StartCleanup runs Cleanup every interval until Stop is called.
func (s *PhotoStore) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Cleanup()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop ends the cleanup goroutine and drops every stored photo.
func (s *PhotoStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.mu.Lock()
		s.photos = make(map[string]*StoredPhoto)
		s.mu.Unlock()
	})
}

func (s *PhotoStore) removeExpiredLocked(now time.Time) int {
	removed := 0
	for id, photo := range s.photos {
		if !now.Before(photo.ExpiresAt) {
			delete(s.photos, id)
			removed++
		}
	}
	return removed
}

func (s *PhotoStore) evictOldestLocked() {
	var oldest *StoredPhoto
	for _, photo := range s.photos {
		if oldest == nil || photo.CreatedAt.Before(oldest.CreatedAt) {
			oldest = photo
		}
	}
	if oldest != nil {
		delete(s.photos, oldest.ID)
	}
}
