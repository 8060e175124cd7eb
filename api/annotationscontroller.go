package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cliplabel/annotations"
	"cliplabel/types"
)

// RegisterAnnotationRoutes registers annotation CRUD endpoints.
func RegisterAnnotationRoutes(r *gin.Engine, deps Deps) {
	g := r.Group("/api/annotations")
	g.GET("", handleListAnnotations(deps))
	g.GET("/:id", handleGetAnnotation(deps))
	g.POST("", handleCreateAnnotation(deps))
	g.PUT("/:id", handleUpdateAnnotation(deps))
	g.DELETE("/:id", handleDeleteAnnotation(deps))
}

func handleListAnnotations(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := annotations.Filter{
			VideoID: c.Query("videoId"),
			Intent:  c.Query("intent"),
			Search:  c.Query("search"),
			Sort:    c.Query("sort"),
		}
		results, err := deps.Annotations.GetAll(c.Request.Context(), f)
		if err != nil {
			log.Printf("annotations list failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch annotations"})
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func handleGetAnnotation(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ann, err := deps.Annotations.GetByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, annotations.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			log.Printf("annotation fetch failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch annotation"})
			return
		}
		c.JSON(http.StatusOK, ann)
	}
}

func handleCreateAnnotation(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in types.AnnotationInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid JSON payload"}})
			return
		}
		if errs := annotations.Validate(in); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}
		ann, err := deps.Annotations.Create(c.Request.Context(), in)
		if err != nil {
			log.Printf("annotation create failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create annotation"})
			return
		}
		c.JSON(http.StatusCreated, ann)
	}
}

func handleUpdateAnnotation(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in types.AnnotationInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid JSON payload"}})
			return
		}
		if deps.StrictUpdate {
			// Preview the merge before persisting anything.
			existing, err := deps.Annotations.GetByID(c.Request.Context(), c.Param("id"))
			if errors.Is(err, annotations.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			if err != nil {
				log.Printf("annotation fetch failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update annotation"})
				return
			}
			if errs := annotations.ValidateMerged(existing, in); len(errs) > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
				return
			}
		}
		ann, err := deps.Annotations.Update(c.Request.Context(), c.Param("id"), in)
		if errors.Is(err, annotations.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			log.Printf("annotation update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update annotation"})
			return
		}
		c.JSON(http.StatusOK, ann)
	}
}

func handleDeleteAnnotation(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := deps.Annotations.Remove(c.Request.Context(), c.Param("id"))
		if err != nil {
			log.Printf("annotation delete failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete annotation"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
