// Package session keeps encoded blobs in memory for the lifetime of the
// process. Records refer to blobs by handle instead of carrying the bytes.
package session

import (
	"bytes"
	"strconv"
	"strings"
	"sync"

	"github.com/AnyUserName/imgfit-cli/internal/hasher"
)

// Handle identifies a stored blob. It starts with the blob's content hash,
// so storing identical bytes twice yields the same handle. Different bytes
// that share a hash get a "-N" suffix.
type Handle string

// Hash returns the content hash part of h.
func (h Handle) Hash() string {
	s := string(h)
	if i := strings.IndexByte(s, '-'); i >= 0 {
		return s[:i]
	}
	return s
}

// Store is an in-memory blob store, safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	blobs map[Handle][]byte
	bytes int64
	hash  func([]byte) string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		blobs: make(map[Handle][]byte),
		hash:  func(b []byte) string { return hasher.ContentHash(b, 0) },
	}
}

// Put stores data and returns its handle. The store keeps data as given;
// callers must not modify it afterwards.
func (s *Store) Put(data []byte) Handle {
	sum := s.hash(data)
	s.mu.Lock()
	defer s.mu.Unlock()

	h := Handle(sum)
	for n := 1; ; n++ {
		existing, ok := s.blobs[h]
		if !ok {
			s.blobs[h] = data
			s.bytes += int64(len(data))
			return h
		}
		if bytes.Equal(existing, data) {
			return h
		}
		h = Handle(sum + "-" + strconv.Itoa(n))
	}
}

// Get returns the blob for h.
func (s *Store) Get(h Handle) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[h]
	return b, ok
}

// Len returns the number of stored blobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// Bytes returns the total size of stored blobs.
func (s *Store) Bytes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bytes
}

// Clear drops every blob. Handles issued before become invalid.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs = make(map[Handle][]byte)
	s.bytes = 0
}
