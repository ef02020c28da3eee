package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbancart-backend/internal/models"
)

// ErrInvalidToken covers malformed, tampered and expired tokens alike.
var ErrInvalidToken = errors.New("invalid token")

// TokenTTL is how long an issued access token stays valid.
const TokenTTL = 24 * time.Hour

// Claims bind a principal id and role to a signed expiry.
type Claims struct {
	ID   string      `json:"id"`
	Role models.Role `json:"role"`
	jwt.StandardClaims
}

// TokenService issues and verifies HS256 access tokens. The signing secret is
// set once at startup and never changes.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue encodes the principal's id and role into a token expiring in TokenTTL.
func (t *TokenService) Issue(id primitive.ObjectID, role models.Role) (string, error) {
	claims := Claims{
		ID:   id.Hex(),
		Role: role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(TokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry and returns the decoded claims.
func (t *TokenService) Verify(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
