package content

import (
	"sync"
	"time"

	"docit/internal/domain/models"
)

// draft is unsaved editor content. version increases on every edit so a
// flush only clears the draft it actually wrote.
type draft struct {
	html      string
	updatedAt time.Time
	version   uint64
}

// draftStore holds dirty drafts keyed by item path
type draftStore struct {
	mu     sync.Mutex
	drafts map[models.ItemPath]draft
	next   uint64
}

func newDraftStore() *draftStore {
	return &draftStore{drafts: make(map[models.ItemPath]draft)}
}

func (s *draftStore) put(path models.ItemPath, html string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.drafts[path] = draft{html: html, updatedAt: now, version: s.next}
}

func (s *draftStore) get(path models.ItemPath) (draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[path]
	return d, ok
}

func (s *draftStore) drop(path models.ItemPath) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, path)
}

// dropIfVersion removes the draft unless it was edited again meanwhile
func (s *draftStore) dropIfVersion(path models.ItemPath, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.drafts[path]; ok && d.version == version {
		delete(s.drafts, path)
	}
}

// snapshot copies the dirty set so flushing does not hold the lock
func (s *draftStore) snapshot() map[models.ItemPath]draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[models.ItemPath]draft, len(s.drafts))
	for path, d := range s.drafts {
		out[path] = d
	}
	return out
}
