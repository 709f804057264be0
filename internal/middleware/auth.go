package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/config"
)

const (
	AccountIDKey = "account_id"
	SessionKey   = "session"
)

// SessionClaims is the session token minted by the OAuth boundary after a
// successful Google/Discord login. The subject is the account id.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	AvatarURL   string `json:"avatar,omitempty"`
}

// SessionAuth verifies the bearer session token and stores the authenticated
// account id on the request context. Websocket upgrades may carry the token
// as a query parameter instead of a header.
func SessionAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if strings.HasPrefix(token, "Bearer ") {
			token = strings.TrimPrefix(token, "Bearer ")
		}
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing session token",
			})
		}

		claims, err := ParseSessionToken(token, cfg.Server.JWTSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid session token",
			})
		}

		accountID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid session subject",
			})
		}

		c.Locals(AccountIDKey, accountID)
		c.Locals(SessionKey, claims)

		return c.Next()
	}
}

func ParseSessionToken(token, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func GetAccountID(c *fiber.Ctx) uuid.UUID {
	accountID, ok := c.Locals(AccountIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return accountID
}

func GetSession(c *fiber.Ctx) *SessionClaims {
	claims, ok := c.Locals(SessionKey).(*SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
