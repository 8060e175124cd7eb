package api

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterExportRoutes registers the annotation export endpoint.
func RegisterExportRoutes(r *gin.Engine, deps Deps) {
	r.GET("/api/export/:format", handleExport(deps))
}

func handleExport(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := c.Param("format")
		if format != "json" && format != "csv" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Use json or csv"})
			return
		}
		anns, err := deps.Annotations.GetForExport(c.Request.Context(), c.Query("videoId"))
		if err != nil {
			log.Printf("export failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
			return
		}

		if format == "json" {
			c.Header("Content-Disposition", "attachment; filename=annotations.json")
			c.JSON(http.StatusOK, anns)
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment; filename=annotations.csv")
		w := csv.NewWriter(c.Writer)
		_ = w.Write([]string{"id", "videoId", "startTime", "endTime", "intent", "text", "createdAt"})
		for _, a := range anns {
			_ = w.Write([]string{
				a.ID,
				a.VideoID,
				fmt.Sprintf("%g", a.StartTime),
				fmt.Sprintf("%g", a.EndTime),
				a.Intent,
				a.Text,
				a.CreatedAt,
			})
		}
		w.Flush()
	}
}
