package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gradtrack/projects/internal/model"
)

type Claims struct {
	UserID    string  `json:"user_id"`
	Role      string  `json:"role"`
	TeacherID *string `json:"teacher_id,omitempty"`
	StudentID *string `json:"student_id,omitempty"`
	jwt.RegisteredClaims
}

// NewAccessToken issues the signed capability a login hands out. It is
// valid for ttl (one hour by default), after which the caller must
// re-authenticate.
func NewAccessToken(secret, issuer string, ttl time.Duration, user model.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:    user.ID,
		Role:      user.Role,
		TeacherID: user.TeacherID,
		StudentID: user.StudentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, issuer, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
