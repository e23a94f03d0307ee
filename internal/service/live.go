package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"cinelist/internal/biz"
	"cinelist/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Live search message types
const (
	MsgSearchQuery     = "search.query"
	MsgSearchPage      = "search.page"
	MsgSelectionChange = "selection.change"
	MsgCollectionAdd   = "collection.add"

	MsgSearchState     = "search.state"
	MsgCollectionAdded = "collection.added"
	MsgError           = "error"
)

// ClientMessage is a command sent by a live search client
type ClientMessage struct {
	Type         string `json:"type"`
	Query        string `json:"query,omitempty"`
	Page         int    `json:"page,omitempty"`
	MovieID      int    `json:"movie_id,omitempty"`
	Selected     bool   `json:"selected,omitempty"`
	CollectionID string `json:"collection_id,omitempty"`
}

// ServerMessage is pushed to live search clients
type ServerMessage struct {
	Type         string       `json:"type"`
	State        *SearchState `json:"state,omitempty"`
	CollectionID string       `json:"collection_id,omitempty"`
	Count        int          `json:"count,omitempty"`
	Message      string       `json:"message,omitempty"`
}

// SearchState is the wire form of a search controller snapshot
type SearchState struct {
	Status       string  `json:"status"`
	Query        string  `json:"query"`
	Movies       []Movie `json:"movies"`
	CurrentPage  int     `json:"current_page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Pages        []int   `json:"pages"`
	Loading      bool    `json:"loading"`
	Error        string  `json:"error,omitempty"`
	Selected     []int   `json:"selected"`
}

// LiveSearchService serves debounced search over websocket connections.
// Every connection drives its own search controller.
type LiveSearchService struct {
	movieUC        *biz.MovieUseCase
	store          *biz.CollectionStore
	debounce       time.Duration
	minQueryLength int
	token          string
	upgrader       websocket.Upgrader
	logger         log.Logger
	log            *log.Helper
}

// NewLiveSearchService creates a new LiveSearchService
func NewLiveSearchService(c *conf.Search, auth *conf.Auth, movieUC *biz.MovieUseCase, store *biz.CollectionStore, logger log.Logger) *LiveSearchService {
	s := &LiveSearchService{
		movieUC:        movieUC,
		store:          store,
		debounce:       biz.DefaultSearchDebounce,
		minQueryLength: biz.DefaultMinQueryLength,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
		log:    log.NewHelper(logger),
	}
	if c != nil {
		if d := c.Debounce.AsDuration(); d > 0 {
			s.debounce = d
		}
		if c.MinQueryLength > 0 {
			s.minQueryLength = int(c.MinQueryLength)
		}
	}
	if auth != nil {
		s.token = auth.Token
	}
	return s
}

// ServeHTTP upgrades the request and runs the connection until it closes.
// The request context carries the server timeout, so connection work runs on
// its own contexts.
func (s *LiveSearchService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// access_token stands in for the Authorization header
	header := r.Header.Get("Authorization")
	if header == "" && r.URL.Query().Get("access_token") != "" {
		header = "Bearer " + r.URL.Query().Get("access_token")
	}
	canWrite := CheckBearer(header, s.token) == nil

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("websocket upgrade failed: %v", err)
		return
	}

	c := &liveClient{
		svc:      s,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
		canWrite: canWrite,
		controller: biz.NewSearchController(s.movieUC,
			biz.WithDebounce(s.debounce),
			biz.WithMinQueryLength(s.minQueryLength),
			biz.WithSearchLogger(s.logger),
		),
	}
	unsubscribe := c.controller.Subscribe(func(st biz.SearchState) {
		c.push(ServerMessage{Type: MsgSearchState, State: s.stateToWire(st)})
	})
	defer unsubscribe()

	go c.writePump()
	c.push(ServerMessage{Type: MsgSearchState, State: s.stateToWire(c.controller.State())})
	c.readPump()
}

func (s *LiveSearchService) stateToWire(st biz.SearchState) *SearchState {
	out := &SearchState{
		Status:       string(st.Status),
		Query:        st.Query,
		Movies:       make([]Movie, 0, len(st.Movies)),
		CurrentPage:  st.CurrentPage,
		TotalPages:   st.TotalPages,
		TotalResults: st.TotalResults,
		Pages:        st.Pages,
		Loading:      st.Loading,
		Error:        st.Error,
		Selected:     st.Selected,
	}
	if out.Pages == nil {
		out.Pages = []int{}
	}
	for _, m := range st.Movies {
		out.Movies = append(out.Movies, movieToReply(s.movieUC, m, biz.PosterSizeList))
	}
	return out
}

type liveClient struct {
	svc        *LiveSearchService
	conn       *websocket.Conn
	controller *biz.SearchController
	send       chan []byte
	done       chan struct{}
	closeOnce  sync.Once
	canWrite   bool
}

// push queues msg for the writer. It blocks while the queue is full and gives
// up once the connection is gone.
func (c *liveClient) push(msg ServerMessage) {
	b, err := json.Marshal(msg)
	if err != nil {
		c.svc.log.Errorf("failed to marshal %s message: %v", msg.Type, err)
		return
	}
	select {
	case c.send <- b:
	case <-c.done:
	}
}

func (c *liveClient) fail(message string) {
	c.push(ServerMessage{Type: MsgError, Message: message})
}

func (c *liveClient) shutdown() {
	c.closeOnce.Do(func() {
		c.controller.Close()
		close(c.done)
	})
}

// readPump applies client commands until the connection drops
func (c *liveClient) readPump() {
	defer func() {
		c.shutdown()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.svc.log.Warnf("websocket error: %v", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.fail("invalid message format")
			continue
		}
		c.handle(msg)
	}
}

func (c *liveClient) handle(msg ClientMessage) {
	switch msg.Type {
	case MsgSearchQuery:
		if !alphanumSpace.MatchString(msg.Query) {
			c.fail("query may only contain letters, numbers and spaces")
			return
		}
		c.controller.SetQuery(msg.Query)
	case MsgSearchPage:
		if !c.controller.ChangePage(msg.Page) {
			c.fail("invalid page")
		}
	case MsgSelectionChange:
		c.controller.SetSelected(msg.MovieID, msg.Selected)
	case MsgCollectionAdd:
		c.addSelection(msg.CollectionID)
	default:
		c.fail("unknown message type " + msg.Type)
	}
}

func (c *liveClient) addSelection(collectionID string) {
	if !c.canWrite {
		c.fail("unauthorized")
		return
	}

	movies := c.controller.SelectedMovies()
	if len(movies) == 0 {
		c.fail("no movies selected")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	added, found, err := c.svc.store.AddMovies(ctx, collectionID, movies)
	if err != nil {
		c.svc.log.Errorf("failed to add movies to collection %s: %v", collectionID, err)
		c.fail("failed to add movies to collection")
		return
	}
	if !found {
		c.fail("collection not found")
		return
	}
	c.push(ServerMessage{Type: MsgCollectionAdded, CollectionID: collectionID, Count: added})
}

// writePump drains the queue to the connection and keeps it alive with pings
func (c *liveClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.shutdown()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.shutdown()
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
