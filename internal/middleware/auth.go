package middleware

import (
	"net/http"
	"strings"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
)

// BranchRole is a (branch, role) pair embedded in the token so branch-scoped
// permission checks don't hit the database on every request.
type BranchRole struct {
	BranchID string `json:"branch_id"`
	Role     string `json:"role"`
}

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	WorkerID string       `json:"worker_id"`
	Username string       `json:"username"`
	IsOwner  bool         `json:"is_owner"`
	IsAdmin  bool         `json:"is_admin"`
	Branches []BranchRole `json:"branches"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentication required"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose token holds none of the allowed roles at
// any branch. Admins and owners always pass.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
			return
		}
		if claims.IsAdmin || claims.IsOwner {
			c.Next()
			return
		}
		for _, br := range claims.Branches {
			if allowed[br.Role] {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
	}
}

// RequireAdmin allows only admin/owner accounts.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || (!claims.IsAdmin && !claims.IsOwner) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// HasBranchRole reports whether the token grants one of the roles at the
// given branch. Admins and owners always qualify.
func HasBranchRole(claims *JWTClaims, branchID string, roles ...string) bool {
	if claims == nil {
		return false
	}
	if claims.IsAdmin || claims.IsOwner {
		return true
	}
	for _, br := range claims.Branches {
		if br.BranchID != branchID {
			continue
		}
		for _, r := range roles {
			if br.Role == r {
				return true
			}
		}
	}
	return false
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}
