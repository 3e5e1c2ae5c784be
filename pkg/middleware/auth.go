package middleware

import (
	"errors"
	"net/http"
	"strings"

	"watchhub/internal/data/entity"
	"watchhub/internal/data/repository"
	"watchhub/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// tokenClaims covers both locally issued tokens and identity-provider
// tokens, which keep the username inside user_metadata.
type tokenClaims struct {
	jwt.RegisteredClaims
	Username     string `json:"username"`
	Email        string `json:"email"`
	UserMetadata struct {
		Username string `json:"username"`
	} `json:"user_metadata"`
}

func (c *tokenClaims) displayName() string {
	switch {
	case c.Username != "":
		return c.Username
	case c.UserMetadata.Username != "":
		return c.UserMetadata.Username
	default:
		return c.Email
	}
}

// AuthJWT validates the bearer token, upserts the caller and stores id and
// username in the request context.
func AuthJWT(cfg utils.JWTConfig, users repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.With(zap.String("middleware", "auth"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			tokenString, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || strings.TrimSpace(tokenString) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := parseToken(cfg, strings.TrimSpace(tokenString))
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					utils.ResponseUnauthorized(w, "Token has expired")
					return
				}
				logger.Warn("Invalid token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Warn("Token subject is not a user id", zap.String("sub", claims.Subject))
				utils.ResponseUnauthorized(w, "Invalid token subject")
				return
			}

			user := &entity.User{ID: userID, Username: claims.displayName()}
			if claims.Email != "" {
				user.Email = &claims.Email
			}

			stored, err := users.Upsert(r.Context(), user)
			if err != nil {
				logger.Error("Failed to upsert user", zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetUserContext(r.Context(), stored.ID, stored.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseToken picks the verification key from the unverified issuer, then
// verifies signature, expiry and, for local tokens, issuer and audience.
func parseToken(cfg utils.JWTConfig, tokenString string) (*tokenClaims, error) {
	var peek tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &peek); err != nil {
		return nil, err
	}

	secret := cfg.Secret
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}

	if strings.Contains(strings.ToLower(peek.Issuer), "supabase") {
		secret = cfg.SupabaseSecret
	} else {
		if cfg.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(cfg.Issuer))
		}
		if cfg.Audience != "" {
			opts = append(opts, jwt.WithAudience(cfg.Audience))
		}
	}

	if secret == "" {
		return nil, errors.New("no signing secret configured for token issuer")
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	return claims, nil
}
