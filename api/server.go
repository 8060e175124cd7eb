package api

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"cliplabel/annotations"
	"cliplabel/queue"
	"cliplabel/timestamps"
	"cliplabel/videocache"
)

// Deps carries the storage backends and settings the controllers bind
// to. Backends are selected once at process start; nothing here switches
// at request time.
type Deps struct {
	Queue      *queue.Store
	Timestamps timestamps.Store
	// TimestampRows is non-nil only when the hosted relational backend
	// is active; it serves the raw-row import endpoint.
	TimestampRows *timestamps.PostgresStore
	Annotations   annotations.Store
	Cache         *videocache.Cache
	// TimestampsSource labels queue responses: "postgres" or "local".
	TimestampsSource string
	TmpDir           string
	StrictUpdate     bool
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	RegisterQueueRoutes(r, deps)
	RegisterVideoRoutes(r, deps)
	RegisterTimestampRoutes(r, deps)
	RegisterAnnotationRoutes(r, deps)
	RegisterExportRoutes(r, deps)
	return r
}

// requestLogger logs method, path, status, and elapsed time per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %d %dms",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start).Milliseconds())
	}
}
