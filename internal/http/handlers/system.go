package handlers

import (
	"net/http"
	"sync"

	intconfig "tourops/internal/config"
	"tourops/internal/db"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "tour operator backend running"})
}

// DBCheck pings the shared connection (reconnecting if needed) and probes
// the schema before counting, so operators get a precise failure reason.
func DBCheck(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := intconfig.EnsureDB(env); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database unreachable: " + err.Error()})
			return
		}
		if !db.HasTable(intconfig.DB, "tours") {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "schema missing: tours table not found"})
			return
		}
		var count int
		if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM tours").Scan(&count); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "tours_in_db": count})
	}
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
