package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cliplabel/queue"
	"cliplabel/types"
)

// RegisterQueueRoutes registers queue endpoints.
func RegisterQueueRoutes(r *gin.Engine, deps Deps) {
	g := r.Group("/api/queue")
	g.GET("", handleGetQueue(deps))
	g.POST("", handleSetQueue(deps))
	g.PUT("/current", handleSetCurrent(deps))
	g.PUT("/:index/complete", handleComplete(deps))
	g.DELETE("", handleClearQueue(deps))
}

type enrichedVideo struct {
	types.VideoDescriptor
	HasTimestamps bool    `json:"hasTimestamps"`
	Downloaded    bool    `json:"downloaded"`
	LocalURL      *string `json:"localUrl"`
}

type queueResponse struct {
	CurrentIndex     int             `json:"currentIndex"`
	Videos           []enrichedVideo `json:"videos"`
	TimestampsSource string          `json:"timestampsSource"`
}

// enrichQueue decorates descriptors with timestamp and cache state.
func enrichQueue(c *gin.Context, deps Deps, q types.Queue) queueResponse {
	videos := make([]enrichedVideo, 0, len(q.Videos))
	for _, v := range q.Videos {
		ev := enrichedVideo{
			VideoDescriptor: v,
			HasTimestamps:   deps.Timestamps.Has(c.Request.Context(), v.Name),
			Downloaded:      deps.Cache.Downloaded(v.Name),
		}
		if ev.Downloaded {
			u := "/api/video/" + v.Name
			ev.LocalURL = &u
		}
		videos = append(videos, ev)
	}
	return queueResponse{
		CurrentIndex:     q.CurrentIndex,
		Videos:           videos,
		TimestampsSource: deps.TimestampsSource,
	}
}

func handleGetQueue(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := deps.Queue.Get(c.Request.Context())
		if err != nil {
			log.Printf("queue get failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load queue"})
			return
		}
		c.JSON(http.StatusOK, enrichQueue(c, deps, q))
	}
}

type setQueueRequest struct {
	Videos []string `json:"videos"`
}

func handleSetQueue(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQueueRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Videos) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "videos must be a non-empty array of URLs"})
			return
		}
		q, err := deps.Queue.Set(c.Request.Context(), req.Videos)
		if errors.Is(err, queue.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "videos must be a non-empty array of URLs"})
			return
		}
		if err != nil {
			log.Printf("queue set failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save queue"})
			return
		}
		c.JSON(http.StatusOK, enrichQueue(c, deps, q))
	}
}

type setCurrentRequest struct {
	Index *int `json:"index"`
}

func handleSetCurrent(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setCurrentRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "index is required"})
			return
		}
		q, err := deps.Queue.SetCurrent(c.Request.Context(), *req.Index)
		if errors.Is(err, queue.ErrOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
			return
		}
		if err != nil {
			log.Printf("queue set current failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update queue"})
			return
		}
		c.JSON(http.StatusOK, enrichQueue(c, deps, q))
	}
}

func handleComplete(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
			return
		}
		q, err := deps.Queue.CompleteCurrent(c.Request.Context(), idx)
		if errors.Is(err, queue.ErrOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
			return
		}
		if err != nil {
			log.Printf("queue complete failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update queue"})
			return
		}
		c.JSON(http.StatusOK, enrichQueue(c, deps, q))
	}
}

func handleClearQueue(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := deps.Queue.Clear(c.Request.Context())
		if err != nil {
			log.Printf("queue clear failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear queue"})
			return
		}
		c.JSON(http.StatusOK, enrichQueue(c, deps, q))
	}
}
