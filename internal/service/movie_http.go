package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationMovieServiceHealthCheck  = "/cinelist.v1.MovieService/HealthCheck"
	OperationMovieServiceSearchMovies = "/cinelist.v1.MovieService/SearchMovies"
	OperationMovieServiceGetMovie     = "/cinelist.v1.MovieService/GetMovie"
	OperationMovieServiceRateMovie    = "/cinelist.v1.MovieService/RateMovie"
	OperationMovieServiceClearSession = "/cinelist.v1.MovieService/ClearSession"
	OperationMovieServicePagination   = "/cinelist.v1.MovieService/Pagination"
)

// RegisterMovieServiceHTTPServer binds the movie routes to s
func RegisterMovieServiceHTTPServer(s *http.Server, srv *MovieService) {
	r := s.Route("/")
	r.GET("/healthz", _MovieService_HealthCheck0_HTTP_Handler(srv))
	r.GET("/v1/movies/search", _MovieService_SearchMovies0_HTTP_Handler(srv))
	r.GET("/v1/movies/{id}", _MovieService_GetMovie0_HTTP_Handler(srv))
	r.POST("/v1/movies/{id}/rating", _MovieService_RateMovie0_HTTP_Handler(srv))
	r.DELETE("/v1/session", _MovieService_ClearSession0_HTTP_Handler(srv))
	r.GET("/v1/pagination", _MovieService_Pagination0_HTTP_Handler(srv))
}

func _MovieService_HealthCheck0_HTTP_Handler(srv *MovieService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in HealthCheckRequest
		http.SetOperation(ctx, OperationMovieServiceHealthCheck)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.HealthCheck(ctx, req.(*HealthCheckRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _MovieService_SearchMovies0_HTTP_Handler(srv *MovieService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in SearchMoviesRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMovieServiceSearchMovies)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.SearchMovies(ctx, req.(*SearchMoviesRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _MovieService_GetMovie0_HTTP_Handler(srv *MovieService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GetMovieRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMovieServiceGetMovie)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetMovie(ctx, req.(*GetMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _MovieService_RateMovie0_HTTP_Handler(srv *MovieService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in RateMovieRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMovieServiceRateMovie)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.RateMovie(ctx, req.(*RateMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _MovieService_ClearSession0_HTTP_Handler(srv *MovieService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ClearSessionRequest
		http.SetOperation(ctx, OperationMovieServiceClearSession)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ClearSession(ctx, req.(*ClearSessionRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _MovieService_Pagination0_HTTP_Handler(srv *MovieService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in PaginationRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationMovieServicePagination)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Pagination(ctx, req.(*PaginationRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}
