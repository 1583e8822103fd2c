package devserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server is the assembled fixture: router, store and signing secret.
type Server struct {
	store  *Store
	engine *gin.Engine
	log    *slog.Logger

	// Now is the clock used for clock-ins, breaks and acknowledgements.
	// Tests pin it to get deterministic durations.
	Now func() time.Time
}

// New wires every endpoint group behind the bearer-token middleware.
// The secret must be the same base64 HS256 secret tokens were minted with.
func New(store *Store, base64Secret string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		store: store,
		log:   log,
		Now:   time.Now,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api/v1")
	api.Use(authentication(base64Secret))

	now := func() time.Time { return s.Now() }
	(&timeclockEndpoint{store: store, now: now}).Register(api)
	(&reservationEndpoint{store: store}).Register(api)
	(&absenceEndpoint{store: store}).Register(api)
	(&shiftEndpoint{store: store}).Register(api)
	(&documentEndpoint{store: store, now: now}).Register(api)
	(&eventEndpoint{store: store}).Register(api)
	(&importEndpoint{store: store}).Register(api)
	(&backupEndpoint{store: store}).Register(api)

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "not_found", "no such route")
	})

	s.engine = r
	return s
}

// Handler exposes the router for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info("fixture server listening", "addr", addr)
	return s.engine.Run(addr)
}
