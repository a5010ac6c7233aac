package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists the origins allowed to call the API.  A single
	// "*" allows any origin.  Entries may use a subdomain wildcard such as
	// "https://*.example.com".
	AllowedOrigins []string

	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string

	// AllowCredentials is ignored when every origin is allowed.
	AllowCredentials bool

	MaxAge time.Duration
}

// DefaultCORSConfig returns the configuration used by the API server.  The
// API is read-mostly, so only GET, POST and OPTIONS are offered.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         12 * time.Hour,
	}
}

// CORS returns a gin-contrib/cors handler for config.  An empty origin list
// disables cross-origin access entirely.
func CORS(config CORSConfig) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     config.AllowedMethods,
		AllowHeaders:     config.AllowedHeaders,
		ExposeHeaders:    config.ExposedHeaders,
		AllowCredentials: config.AllowCredentials,
		MaxAge:           config.MaxAge,
	}

	origins := make([]string, 0, len(config.AllowedOrigins))
	for _, o := range config.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	switch {
	case len(origins) == 0:
		cc.AllowOriginFunc = func(string) bool { return false }
	case len(origins) == 1 && origins[0] == "*":
		cc.AllowAllOrigins = true
		cc.AllowCredentials = false
	default:
		cc.AllowOrigins = origins
		for _, o := range origins {
			if strings.Contains(o, "*") {
				cc.AllowWildcard = true
				break
			}
		}
	}
	return cors.New(cc)
}

//Personal.AI order the ending
