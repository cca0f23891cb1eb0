package middleware

import (
	"net/http"
	"time"

	"github.com/ariebrainware/basis-data-dental/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by the middlewares of this package.
const (
	DBKey     = "db"
	UserIDKey = "user_id"
	RoleIDKey = "role_id"
	ScopeKey  = "scope"
	EmailKey  = "email"

	ServicesKey = "services"
)

// DatabaseMiddleware injects the database handle into every request.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(DBKey, db)
		c.Next()
	}
}

// GetDB returns the handle set by DatabaseMiddleware, or nil.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(DBKey)
	if !ok {
		return nil
	}
	db, _ := v.(*gorm.DB)
	return db
}

// CORSMiddleware configures CORS headers for incoming requests. An empty
// list or "*" allows every origin.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "X-Requested-With", "Content-Type", "Authorization", "session-token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// ServicesMiddleware injects the domain services into every request.
func ServicesMiddleware(svc *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ServicesKey, svc)
		c.Next()
	}
}

// GetServices returns the services set by ServicesMiddleware, or nil.
func GetServices(c *gin.Context) *service.Services {
	v, ok := c.Get(ServicesKey)
	if !ok {
		return nil
	}
	svc, _ := v.(*service.Services)
	return svc
}
