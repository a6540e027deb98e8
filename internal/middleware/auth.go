package middleware

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/skillup-edu/school-service/internal/config"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/services"
	"github.com/skillup-edu/school-service/internal/utils"
)

// AuthMiddleware verifies bearer tokens against the identity provider and
// resolves the external identity to a local user account. Login and session
// semantics belong to the provider; this layer only maps identities.
type AuthMiddleware struct {
	client *casdoorsdk.Client
	users  repositories.UserRepository
	logger utils.Logger
}

func NewAuthMiddleware(cfg *config.Config, users repositories.UserRepository, logger utils.Logger) *AuthMiddleware {
	client := casdoorsdk.NewClient(
		cfg.AuthEndpoint,
		cfg.AuthClientID,
		cfg.AuthClientSecret,
		cfg.AuthCertificate,
		cfg.AuthOrganization,
		cfg.AuthApplication,
	)
	return &AuthMiddleware{
		client: client,
		users:  users,
		logger: logger,
	}
}

// RequireAuth rejects requests without a valid token or without a matching
// user document, and stores the actor info for handlers and audit entries.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		claims, err := m.client.ParseJwtToken(token)
		if err != nil {
			m.logger.Warn("token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		user, err := m.users.GetByExternalUID(c.Request.Context(), claims.User.Id)
		if err != nil {
			m.logger.LogError(err, "failed to resolve user for token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "failed to resolve user"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "no account for this identity"})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_name", user.Username)
		c.Set("user_role", string(user.Role))
		c.Next()
	}
}

// RequireRole gates a route group to specific roles; RequireAuth must run
// first.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := c.GetString("user_role")
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient role"})
			return
		}
		c.Next()
	}
}

// ActorFromContext extracts the acting user for audit entries.
func ActorFromContext(c *gin.Context) services.Actor {
	return services.Actor{
		ID:   c.GetString("user_id"),
		Name: c.GetString("user_name"),
	}
}
