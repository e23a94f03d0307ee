package service

import (
	"context"
	"strings"

	"cinelist/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
)

// CollectionService implements the collection endpoints
type CollectionService struct {
	store   *biz.CollectionStore
	movieUC *biz.MovieUseCase
	log     *log.Helper
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(store *biz.CollectionStore, movieUC *biz.MovieUseCase, logger log.Logger) *CollectionService {
	return &CollectionService{
		store:   store,
		movieUC: movieUC,
		log:     log.NewHelper(logger),
	}
}

func (s *CollectionService) ListCollections(_ context.Context, _ *ListCollectionsRequest) (*ListCollectionsReply, error) {
	collections := s.store.ListCollections()

	reply := &ListCollectionsReply{
		Collections: make([]*Collection, 0, len(collections)),
	}
	for _, c := range collections {
		reply.Collections = append(reply.Collections, s.collectionToReply(c))
	}
	return reply, nil
}

func (s *CollectionService) CreateCollection(ctx context.Context, req *CreateCollectionRequest) (*CreateCollectionReply, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	collection, err := s.store.CreateCollection(ctx, req.Title, req.Description)
	if err != nil {
		s.log.Errorf("failed to create collection %q: %v", req.Title, err)
		return nil, fromBiz(err)
	}

	return &CreateCollectionReply{Collection: s.collectionToReply(collection)}, nil
}

func (s *CollectionService) GetCollection(_ context.Context, req *GetCollectionRequest) (*Collection, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	collection, ok := s.store.GetCollection(req.ID)
	if !ok {
		return nil, fromBiz(biz.ErrCollectionNotFound)
	}
	return s.collectionToReply(collection), nil
}

func (s *CollectionService) UpdateCollection(ctx context.Context, req *UpdateCollectionRequest) (*Collection, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	collection, err := s.store.UpdateCollection(ctx, req.ID, biz.CollectionUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return nil, fromBiz(err)
	}
	return s.collectionToReply(collection), nil
}

func (s *CollectionService) DeleteCollection(ctx context.Context, req *DeleteCollectionRequest) (*EmptyReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	deleted, err := s.store.DeleteCollection(ctx, req.ID)
	if err != nil {
		return nil, fromBiz(err)
	}
	if !deleted {
		return nil, fromBiz(biz.ErrCollectionNotFound)
	}
	return &EmptyReply{}, nil
}

// AddMovies adds movies to a collection, skipping those already present
func (s *CollectionService) AddMovies(ctx context.Context, req *AddMoviesRequest) (*AddMoviesReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	movies := make([]biz.Movie, 0, len(req.Movies))
	for _, m := range req.Movies {
		movies = append(movies, movieFromRequest(m))
	}
	return s.addMovies(ctx, req.ID, movies)
}

func (s *CollectionService) addMovies(ctx context.Context, id string, movies []biz.Movie) (*AddMoviesReply, error) {
	added, found, err := s.store.AddMovies(ctx, id, movies)
	if err != nil {
		return nil, fromBiz(err)
	}
	if !found {
		return nil, fromBiz(biz.ErrCollectionNotFound)
	}

	after, ok := s.store.GetCollection(id)
	if !ok {
		return nil, fromBiz(biz.ErrCollectionNotFound)
	}
	return &AddMoviesReply{
		Collection: s.collectionToReply(after),
		Added:      added,
	}, nil
}

func (s *CollectionService) RemoveMovie(ctx context.Context, req *CollectionMovieRequest) (*Collection, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	removed, err := s.store.RemoveMovieFromCollection(ctx, req.ID, req.MovieID)
	if err != nil {
		return nil, fromBiz(err)
	}
	if !removed {
		return nil, fromBiz(biz.ErrCollectionNotFound)
	}

	collection, ok := s.store.GetCollection(req.ID)
	if !ok {
		return nil, fromBiz(biz.ErrCollectionNotFound)
	}
	return s.collectionToReply(collection), nil
}

func (s *CollectionService) IsMovieInCollection(_ context.Context, req *CollectionMovieRequest) (*MembershipReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if _, ok := s.store.GetCollection(req.ID); !ok {
		return nil, fromBiz(biz.ErrCollectionNotFound)
	}
	return &MembershipReply{
		InCollection: s.store.IsMovieInCollection(req.ID, req.MovieID),
	}, nil
}

func (s *CollectionService) collectionToReply(c *biz.MovieCollection) *Collection {
	reply := &Collection{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Movies:      make([]Movie, 0, len(c.Movies)),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for _, m := range c.Movies {
		reply.Movies = append(reply.Movies, movieToReply(s.movieUC, m, biz.PosterSizeList))
	}
	return reply
}
