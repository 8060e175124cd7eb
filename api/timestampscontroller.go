package api

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cliplabel/timestamps"
)

// RegisterTimestampRoutes registers timestamp listing, lookup, and
// import endpoints.
func RegisterTimestampRoutes(r *gin.Engine, deps Deps) {
	g := r.Group("/api/timestamps")
	g.GET("", handleListTimestamps(deps))
	g.GET("/:folder/:file", handleGetTimestamps(deps))
	g.POST("/upload", handleUploadTimestamps(deps))
	g.POST("/bulk", handleBulkTimestamps(deps))
	g.POST("/rows", handleTimestampRows(deps))
}

func handleListTimestamps(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := deps.Timestamps.List(c.Request.Context())
		if err != nil {
			log.Printf("timestamps list failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list timestamps"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"files": names})
	}
}

func handleGetTimestamps(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoName := c.Param("folder") + "/" + c.Param("file")
		segments, err := deps.Timestamps.Get(c.Request.Context(), videoName)
		if err != nil {
			log.Printf("timestamps get failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get timestamps"})
			return
		}
		if len(segments) == 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"error":    "No timestamps for " + videoName,
				"segments": segments,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"videoName": videoName, "segments": segments})
	}
}

// handleUploadTimestamps accepts a multipart form with a videoName field
// and a csv file. The upload is staged to the tmp directory before
// parsing; parsed segments fully replace any stored list.
func handleUploadTimestamps(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("csv")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No CSV file provided"})
			return
		}
		videoName := c.PostForm("videoName")
		if videoName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "videoName is required"})
			return
		}
		tmpDir := deps.TmpDir
		if tmpDir == "" {
			tmpDir = os.TempDir()
		}
		staged := filepath.Join(tmpDir, "upload-"+uuid.NewString()+".csv")
		if err := c.SaveUploadedFile(fileHeader, staged); err != nil {
			log.Printf("timestamps upload stage failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload timestamps"})
			return
		}
		defer os.Remove(staged)
		content, err := os.ReadFile(staged)
		if err != nil {
			log.Printf("timestamps upload read failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload timestamps"})
			return
		}

		segments := timestamps.ParseAny(string(content))
		if len(segments) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid segments found in uploaded file"})
			return
		}
		if err := deps.Timestamps.Upsert(c.Request.Context(), videoName, segments); err != nil {
			log.Printf("timestamps upsert failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload timestamps"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"videoName": videoName, "segments": segments, "count": len(segments)})
	}
}

type bulkFile struct {
	VideoName string `json:"videoName"`
	Content   string `json:"content"`
}

type bulkRequest struct {
	CSVFiles []bulkFile `json:"csvFiles"`
}

func handleBulkTimestamps(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bulkRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.CSVFiles == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "csvFiles array required"})
			return
		}
		entries := make([]timestamps.Entry, 0, len(req.CSVFiles))
		for _, f := range req.CSVFiles {
			if f.VideoName == "" || f.Content == "" {
				continue
			}
			entries = append(entries, timestamps.Entry{
				VideoName: f.VideoName,
				Segments:  timestamps.ParseAny(f.Content),
			})
		}
		results, err := deps.Timestamps.BulkUpsert(c.Request.Context(), entries)
		if err != nil {
			log.Printf("timestamps bulk upsert failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to bulk upload timestamps"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uploaded": len(results), "results": results})
	}
}

type rowsRequest struct {
	Rows []timestamps.Row `json:"rows"`
}

// handleTimestampRows imports raw time-string rows. Available only when
// the hosted relational backend is active.
func handleTimestampRows(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.TimestampRows == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Row-based timestamps require the hosted backend"})
			return
		}
		var req rowsRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Rows == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rows must be an array of { video_name, start, end }"})
			return
		}
		inserted, err := deps.TimestampRows.AddRows(c.Request.Context(), req.Rows)
		if err != nil {
			log.Printf("timestamp rows insert failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add timestamp rows"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"inserted": inserted})
	}
}
