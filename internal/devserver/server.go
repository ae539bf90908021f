// Package devserver is an in-memory stand-in for the fitlog REST API.
// It backs local development (cmd/devserver) and end-to-end tests of the
// client. Nothing is persisted; restarting it forgets every account.
package devserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/logging"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Kinds served under /api/{kind}.
var Kinds = []string{"meals", "exercises", "blogs", "profiles"}

type account struct {
	id           string
	name         string
	email        string
	profileID    string
	passwordHash []byte
}

type Server struct {
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
	log        logging.Logger

	mu          sync.Mutex
	accounts    map[string]*account // by email
	collections map[string]*collection
}

type Option func(*Server)

func WithTokenTTL(d time.Duration) Option { return func(s *Server) { s.tokenTTL = d } }

func WithBcryptCost(cost int) Option { return func(s *Server) { s.bcryptCost = cost } }

func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

func WithLogger(l logging.Logger) Option { return func(s *Server) { s.log = l } }

func New(secret []byte, opts ...Option) *Server {
	s := &Server{
		secret:      secret,
		tokenTTL:    24 * time.Hour,
		bcryptCost:  bcrypt.DefaultCost,
		now:         time.Now,
		log:         logging.Discard(),
		accounts:    make(map[string]*account),
		collections: make(map[string]*collection),
	}
	for _, o := range opts {
		o(s)
	}
	for _, k := range Kinds {
		s.collections[k] = newCollection()
	}
	return s
}

// Handler returns the gin engine serving the API.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	auth := r.Group("/api/auth")
	auth.POST("/signup", s.signup)
	auth.POST("/login", s.login)
	auth.POST("/change-password", s.requireUser(), s.changePassword)

	api := r.Group("/api", s.requireUser())
	for _, kind := range Kinds {
		g := api.Group("/"+kind, withKind(kind))
		g.GET("", s.index)
		g.POST("", s.create)
		g.GET("/:id", s.show)
		g.PUT("/:id", s.update)
		g.DELETE("/:id", s.remove)
		g.POST("/:id/comments", s.createComment)
		g.PUT("/:id/comments/:commentId", s.updateComment)
		g.DELETE("/:id/comments/:commentId", s.deleteComment)
	}
	api.PUT("/profiles/:id/add-photo", s.addPhoto)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.log.Info(c.Request.Context(), "api request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.GetHeader("X-Request-ID"),
			"took", time.Since(started))
	}
}

const kindKey = "kind"

func withKind(kind string) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set(kindKey, kind) }
}

func kindOf(c *gin.Context) string { return c.GetString(kindKey) }

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"err": msg})
}
