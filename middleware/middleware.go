package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentalops/clinic-api/repository"
)

const repositoryKey = "repository"

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Content-Type", "application/json")

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RepositoryMiddleware injects the entity repository into the request
// context. Handlers never touch the store directly; the repository is the
// only gate to it.
func RepositoryMiddleware(repo *repository.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(repositoryKey, repo)
		c.Next()
	}
}

// GetRepository returns the repository injected by RepositoryMiddleware, or
// nil when the middleware did not run.
func GetRepository(c *gin.Context) *repository.Repository {
	value, ok := c.Get(repositoryKey)
	if !ok {
		return nil
	}
	repo, ok := value.(*repository.Repository)
	if !ok {
		return nil
	}
	return repo
}
