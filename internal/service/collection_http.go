package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationCollectionServiceListCollections     = "/cinelist.v1.CollectionService/ListCollections"
	OperationCollectionServiceCreateCollection    = "/cinelist.v1.CollectionService/CreateCollection"
	OperationCollectionServiceGetCollection       = "/cinelist.v1.CollectionService/GetCollection"
	OperationCollectionServiceUpdateCollection    = "/cinelist.v1.CollectionService/UpdateCollection"
	OperationCollectionServiceDeleteCollection    = "/cinelist.v1.CollectionService/DeleteCollection"
	OperationCollectionServiceAddMovies           = "/cinelist.v1.CollectionService/AddMovies"
	OperationCollectionServiceRemoveMovie         = "/cinelist.v1.CollectionService/RemoveMovie"
	OperationCollectionServiceIsMovieInCollection = "/cinelist.v1.CollectionService/IsMovieInCollection"
)

// RegisterCollectionServiceHTTPServer binds the collection routes to s
func RegisterCollectionServiceHTTPServer(s *http.Server, srv *CollectionService) {
	r := s.Route("/")
	r.GET("/v1/collections", _CollectionService_ListCollections0_HTTP_Handler(srv))
	r.POST("/v1/collections", _CollectionService_CreateCollection0_HTTP_Handler(srv))
	r.GET("/v1/collections/{id}", _CollectionService_GetCollection0_HTTP_Handler(srv))
	r.PATCH("/v1/collections/{id}", _CollectionService_UpdateCollection0_HTTP_Handler(srv))
	r.DELETE("/v1/collections/{id}", _CollectionService_DeleteCollection0_HTTP_Handler(srv))
	r.POST("/v1/collections/{id}/movies", _CollectionService_AddMovies0_HTTP_Handler(srv))
	r.DELETE("/v1/collections/{id}/movies/{movie_id}", _CollectionService_RemoveMovie0_HTTP_Handler(srv))
	r.GET("/v1/collections/{id}/movies/{movie_id}", _CollectionService_IsMovieInCollection0_HTTP_Handler(srv))
}

func _CollectionService_ListCollections0_HTTP_Handler(srv *CollectionService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListCollectionsRequest
		http.SetOperation(ctx, OperationCollectionServiceListCollections)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListCollections(ctx, req.(*ListCollectionsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _CollectionService_CreateCollection0_HTTP_Handler(srv *CollectionService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in CreateCollectionRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCollectionServiceCreateCollection)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.CreateCollection(ctx, req.(*CreateCollectionRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _CollectionService_GetCollection0_HTTP_Handler(srv *CollectionService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GetCollectionRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCollectionServiceGetCollection)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetCollection(ctx, req.(*GetCollectionRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _CollectionService_UpdateCollection0_HTTP_Handler(srv *CollectionService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in UpdateCollectionRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCollectionServiceUpdateCollection)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.UpdateCollection(ctx, req.(*UpdateCollectionRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _CollectionService_DeleteCollection0_HTTP_Handler(srv *CollectionService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in DeleteCollectionRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCollectionServiceDeleteCollection)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.DeleteCollection(ctx, req.(*DeleteCollectionRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _CollectionService_AddMovies0_HTTP_Handler(srv *CollectionService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in AddMoviesRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCollectionServiceAddMovies)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.AddMovies(ctx, req.(*AddMoviesRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _CollectionService_RemoveMovie0_HTTP_Handler(srv *CollectionService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in CollectionMovieRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCollectionServiceRemoveMovie)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.RemoveMovie(ctx, req.(*CollectionMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _CollectionService_IsMovieInCollection0_HTTP_Handler(srv *CollectionService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in CollectionMovieRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCollectionServiceIsMovieInCollection)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.IsMovieInCollection(ctx, req.(*CollectionMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}
