package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cliplabel/videocache"
)

// RegisterVideoRoutes registers cached-video streaming and status.
func RegisterVideoRoutes(r *gin.Engine, deps Deps) {
	r.GET("/api/video/:folder/:file", handleStreamVideo(deps))
	r.GET("/api/video-status", handleVideoStatus(deps))
}

// handleStreamVideo serves cached video bytes. http.ServeContent via
// ServeFile handles Range requests, so partial-content semantics come
// for free: 206 with Content-Range when a Range header is present, 200
// with the whole file otherwise.
func handleStreamVideo(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoName := c.Param("folder") + "/" + c.Param("file")
		if !deps.Cache.Downloaded(videoName) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not downloaded yet: " + videoName})
			return
		}
		c.Header("Content-Type", "video/mp4")
		http.ServeFile(c.Writer, c.Request, deps.Cache.LocalPath(videoName))
	}
}

type videoStatus struct {
	Name       string  `json:"name"`
	Downloaded bool    `json:"downloaded"`
	Size       int64   `json:"size"`
	Duration   float64 `json:"duration"`
}

func handleVideoStatus(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := deps.Queue.Get(c.Request.Context())
		if err != nil {
			log.Printf("video status failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load video status"})
			return
		}
		status := make([]videoStatus, 0, len(q.Videos))
		for _, v := range q.Videos {
			vs := videoStatus{Name: v.Name}
			if deps.Cache.Downloaded(v.Name) {
				vs.Downloaded = true
				vs.Size = deps.Cache.Size(v.Name)
				vs.Duration = videocache.Duration(deps.Cache.LocalPath(v.Name))
			}
			status = append(status, vs)
		}
		c.JSON(http.StatusOK, gin.H{"videos": status})
	}
}
