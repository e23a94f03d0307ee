package server

import (
	"net/http"

	"cinelist/internal/conf"
	"cinelist/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(NewHTTPServer)

// LiveSearchPath is where the websocket live search is served
const LiveSearchPath = "/v1/search/live"

// Custom response encoder to handle 201 status for resource creation
func customResponseEncoder(w http.ResponseWriter, r *http.Request, v interface{}) error {
	type StatusResponse interface {
		HTTPStatus() int
	}

	if sr, ok := v.(StatusResponse); ok {
		w.WriteHeader(sr.HTTPStatus())
	}

	// Use default encoder for the response body
	return khttp.DefaultResponseEncoder(w, r, v)
}

// NewHTTPServer new an HTTP server.
func NewHTTPServer(
	c *conf.Server,
	auth *conf.Auth,
	movieSvc *service.MovieService,
	collectionSvc *service.CollectionService,
	liveSvc *service.LiveSearchService,
	logger log.Logger,
) *khttp.Server {
	var token string
	if auth != nil {
		token = auth.Token
	}

	var opts = []khttp.ServerOption{
		khttp.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
			AuthMiddleware(token),
		),
		khttp.ResponseEncoder(customResponseEncoder),
	}
	if c != nil && c.Http != nil {
		if c.Http.Network != "" {
			opts = append(opts, khttp.Network(c.Http.Network))
		}
		if c.Http.Addr != "" {
			opts = append(opts, khttp.Address(c.Http.Addr))
		}
		if d := c.Http.Timeout.AsDuration(); d > 0 {
			opts = append(opts, khttp.Timeout(d))
		}
	}
	srv := khttp.NewServer(opts...)
	service.RegisterMovieServiceHTTPServer(srv, movieSvc)
	service.RegisterCollectionServiceHTTPServer(srv, collectionSvc)
	srv.Handle(LiveSearchPath, liveSvc)
	return srv
}
