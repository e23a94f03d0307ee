package server

import (
	"context"

	"cinelist/internal/service"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
)

// guardedOperations mutate collections and require the bearer token
var guardedOperations = map[string]bool{
	service.OperationCollectionServiceCreateCollection: true,
	service.OperationCollectionServiceUpdateCollection: true,
	service.OperationCollectionServiceDeleteCollection: true,
	service.OperationCollectionServiceAddMovies:        true,
	service.OperationCollectionServiceRemoveMovie:      true,
}

// AuthMiddleware validates Bearer token for write operations.
// An empty token leaves every operation open.
func AuthMiddleware(token string) middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			if token == "" {
				return handler(ctx, req)
			}

			// Get transport info
			tr, ok := transport.FromServerContext(ctx)
			if !ok {
				return nil, errors.Unauthorized("UNAUTHORIZED", "missing transport info")
			}

			if guardedOperations[tr.Operation()] {
				if err := service.CheckBearer(tr.RequestHeader().Get("Authorization"), token); err != nil {
					return nil, err
				}
			}

			return handler(ctx, req)
		}
	}
}
