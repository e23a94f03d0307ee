package service

import (
	"context"
	"strings"

	"cinelist/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MovieService implements the movie lookup, rating and pagination endpoints
type MovieService struct {
	movieUC  *biz.MovieUseCase
	ratingUC *biz.RatingUseCase
	log      *log.Helper
}

// NewMovieService creates a new MovieService
func NewMovieService(movieUC *biz.MovieUseCase, ratingUC *biz.RatingUseCase, logger log.Logger) *MovieService {
	return &MovieService{
		movieUC:  movieUC,
		ratingUC: ratingUC,
		log:      log.NewHelper(logger),
	}
}

// SearchMovies returns one page of results with the page window to render
func (s *MovieService) SearchMovies(ctx context.Context, req *SearchMoviesRequest) (*SearchMoviesReply, error) {
	req.Query = strings.TrimSpace(req.Query)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.movieUC.SearchMovies(ctx, req.Query, req.Page)
	if err != nil {
		return nil, fromBiz(err)
	}

	reply := &SearchMoviesReply{
		Page:         result.Page,
		TotalPages:   result.TotalPages,
		TotalResults: result.TotalResults,
		Pages:        biz.PaginationPages(result.Page, result.TotalPages),
		Results:      make([]Movie, 0, len(result.Results)),
	}
	for _, m := range result.Results {
		reply.Results = append(reply.Results, movieToReply(s.movieUC, m, biz.PosterSizeList))
	}
	return reply, nil
}

// GetMovie returns a movie with its display-ready details
func (s *MovieService) GetMovie(ctx context.Context, req *GetMovieRequest) (*GetMovieReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	details, err := s.movieUC.GetMovieDetails(ctx, req.ID)
	if err != nil {
		return nil, fromBiz(err)
	}

	reply := &GetMovieReply{
		Movie:           movieToReply(s.movieUC, details.Movie, biz.PosterSizeDetail),
		SpokenLanguages: make([]SpokenLanguage, 0, len(details.SpokenLanguages)),
		BudgetDisplay:   formatUSD(details.Budget),
		RevenueDisplay:  formatUSD(details.Revenue),
	}
	names := make([]string, 0, len(details.SpokenLanguages))
	for _, l := range details.SpokenLanguages {
		reply.SpokenLanguages = append(reply.SpokenLanguages, SpokenLanguage{
			ISO639_1:    l.ISO639_1,
			Name:        l.Name,
			EnglishName: l.EnglishName,
		})
		if l.EnglishName != "" {
			names = append(names, l.EnglishName)
		}
	}
	reply.Languages = "N/A"
	if len(names) > 0 {
		reply.Languages = strings.Join(names, ", ")
	}
	return reply, nil
}

// RateMovie submits a rating through the cached guest session
func (s *MovieService) RateMovie(ctx context.Context, req *RateMovieRequest) (*RateMovieReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.ratingUC.RateMovie(ctx, req.ID, req.Value)
	if err != nil {
		return nil, fromBiz(err)
	}

	return &RateMovieReply{
		Success:       result.Success,
		StatusCode:    result.StatusCode,
		StatusMessage: result.StatusMessage,
	}, nil
}

// ClearSession forgets the guest session
func (s *MovieService) ClearSession(ctx context.Context, _ *ClearSessionRequest) (*EmptyReply, error) {
	s.ratingUC.ClearSession(ctx)
	return &EmptyReply{}, nil
}

// Pagination exposes the page window helper to clients
func (s *MovieService) Pagination(_ context.Context, req *PaginationRequest) (*PaginationReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	return &PaginationReply{
		Pages:       biz.PaginationPages(req.Current, req.Total),
		Ellipsis:    biz.Ellipsis,
		TargetValid: biz.IsValidPageChange(req.Target, req.Current, req.Total),
	}, nil
}

// HealthCheck implements health check
func (s *MovieService) HealthCheck(_ context.Context, _ *HealthCheckRequest) (*HealthCheckReply, error) {
	return &HealthCheckReply{
		Status: "ok",
	}, nil
}

func movieToReply(uc *biz.MovieUseCase, m biz.Movie, posterSize string) Movie {
	return Movie{
		ID:          m.ID,
		Title:       m.Title,
		PosterPath:  m.PosterPath,
		PosterURL:   uc.ImageURL(m.PosterPath, posterSize),
		VoteAverage: m.VoteAverage,
		Overview:    m.Overview,
		ReleaseDate: m.ReleaseDate,
		Budget:      m.Budget,
		Revenue:     m.Revenue,
		VoteCount:   m.VoteCount,
	}
}

func movieFromRequest(m Movie) biz.Movie {
	return biz.Movie{
		ID:          m.ID,
		Title:       m.Title,
		PosterPath:  m.PosterPath,
		VoteAverage: m.VoteAverage,
		Overview:    m.Overview,
		ReleaseDate: m.ReleaseDate,
		Budget:      m.Budget,
		Revenue:     m.Revenue,
		VoteCount:   m.VoteCount,
	}
}

var usdPrinter = message.NewPrinter(language.English)

// formatUSD renders whole dollars with thousands separators, "N/A" when unknown
func formatUSD(amount int64) string {
	if amount <= 0 {
		return "N/A"
	}
	return usdPrinter.Sprintf("$%d", amount)
}
