package biz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// CollectionStore keeps the user's named collections in memory and mirrors
// the full list to the repository after every mutation.
type CollectionStore struct {
	mu          sync.RWMutex
	repo        CollectionRepo
	collections []*MovieCollection
	now         func() time.Time
	log         *log.Helper
}

// NewCollectionStore creates a CollectionStore and loads persisted collections.
// Corrupt data is logged and replaced by an empty list; a failed read is returned
// so the existing list is never overwritten.
func NewCollectionStore(repo CollectionRepo, logger log.Logger) (*CollectionStore, error) {
	s := &CollectionStore{
		repo: repo,
		now:  time.Now,
		log:  log.NewHelper(logger),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collections, err := repo.Load(ctx)
	switch {
	case errors.Is(err, ErrCorruptCollections):
		s.log.Errorf("discarding stored collections: %v", err)
		collections = nil
	case err != nil:
		return nil, fmt.Errorf("failed to load collections: %w", err)
	}
	s.collections = collections

	return s, nil
}

// ListCollections returns every collection in creation order
func (s *CollectionStore) ListCollections() []*MovieCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*MovieCollection, 0, len(s.collections))
	for _, c := range s.collections {
		out = append(out, cloneCollection(c))
	}
	return out
}

// CreateCollection appends a new empty collection
func (s *CollectionStore) CreateCollection(ctx context.Context, title, description string) (*MovieCollection, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate collection ID: %w", err)
	}

	now := s.now().UTC()
	collection := &MovieCollection{
		ID:          id.String(),
		Title:       title,
		Description: description,
		Movies:      []Movie{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*MovieCollection, 0, len(s.collections)+1)
	next = append(next, s.collections...)
	next = append(next, collection)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	return cloneCollection(collection), nil
}

// GetCollection looks a collection up by ID
func (s *CollectionStore) GetCollection(id string) (*MovieCollection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return cloneCollection(s.collections[i]), true
	}
	return nil, false
}

// UpdateCollection merges the supplied fields and refreshes UpdatedAt.
// It returns ErrCollectionNotFound for unknown IDs.
func (s *CollectionStore) UpdateCollection(ctx context.Context, id string, update CollectionUpdate) (*MovieCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrCollectionNotFound
	}

	updated := cloneCollection(s.collections[i])
	if update.Title != nil {
		updated.Title = *update.Title
	}
	if update.Description != nil {
		updated.Description = *update.Description
	}
	updated.UpdatedAt = s.now().UTC()

	if err := s.commit(ctx, s.replaced(i, updated)); err != nil {
		return nil, err
	}
	return cloneCollection(updated), nil
}

// DeleteCollection removes a collection and reports whether one was removed
func (s *CollectionStore) DeleteCollection(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := make([]*MovieCollection, 0, len(s.collections)-1)
	next = append(next, s.collections[:i]...)
	next = append(next, s.collections[i+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// AddMoviesToCollection appends the movies not already present.
// A request made only of duplicates succeeds without writing anything.
func (s *CollectionStore) AddMoviesToCollection(ctx context.Context, id string, movies []Movie) (bool, error) {
	_, found, err := s.AddMovies(ctx, id, movies)
	return found, err
}

// AddMovies is AddMoviesToCollection that also reports how many movies were
// actually appended.
func (s *CollectionStore) AddMovies(ctx context.Context, id string, movies []Movie) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return 0, false, nil
	}

	existing := make(map[int]struct{}, len(s.collections[i].Movies)+len(movies))
	for _, m := range s.collections[i].Movies {
		existing[m.ID] = struct{}{}
	}

	var added []Movie
	for _, m := range movies {
		if _, ok := existing[m.ID]; ok {
			continue
		}
		existing[m.ID] = struct{}{}
		added = append(added, m)
	}

	if len(added) == 0 {
		return 0, true, nil
	}

	updated := cloneCollection(s.collections[i])
	updated.Movies = append(updated.Movies, added...)
	updated.UpdatedAt = s.now().UTC()

	if err := s.commit(ctx, s.replaced(i, updated)); err != nil {
		return 0, false, err
	}
	s.log.Debugf("added %d movies to collection %s", len(added), id)
	return len(added), true, nil
}

// RemoveMovieFromCollection filters out the movie with the given ID
func (s *CollectionStore) RemoveMovieFromCollection(ctx context.Context, id string, movieID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	updated := cloneCollection(s.collections[i])
	movies := make([]Movie, 0, len(updated.Movies))
	for _, m := range updated.Movies {
		if m.ID != movieID {
			movies = append(movies, m)
		}
	}
	if len(movies) == len(updated.Movies) {
		return true, nil
	}
	updated.Movies = movies
	updated.UpdatedAt = s.now().UTC()

	if err := s.commit(ctx, s.replaced(i, updated)); err != nil {
		return false, err
	}
	return true, nil
}

// IsMovieInCollection reports whether the collection holds the movie
func (s *CollectionStore) IsMovieInCollection(id string, movieID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	for _, m := range s.collections[i].Movies {
		if m.ID == movieID {
			return true
		}
	}
	return false
}

// commit persists next and swaps it in. Callers hold mu.
func (s *CollectionStore) commit(ctx context.Context, next []*MovieCollection) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save collections: %w", err)
	}
	s.collections = next
	return nil
}

func (s *CollectionStore) replaced(i int, c *MovieCollection) []*MovieCollection {
	next := make([]*MovieCollection, len(s.collections))
	copy(next, s.collections)
	next[i] = c
	return next
}

func (s *CollectionStore) indexOf(id string) int {
	for i, c := range s.collections {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func cloneCollection(c *MovieCollection) *MovieCollection {
	out := *c
	out.Movies = append(make([]Movie, 0, len(c.Movies)), c.Movies...)
	return &out
}
