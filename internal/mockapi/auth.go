package mockapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdobak/go-xerrors"
)

type userClaim struct {
	Username string `json:"username"`
	Email    string `json:"email"`

	jwt.RegisteredClaims
}

func (s *Server) issueToken(u *user, duration time.Duration) (string, error) {
	claim := userClaim{
		Username: u.Username,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claim)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", xerrors.New(err)
	}
	return signed, nil
}

func (s *Server) verifyToken(tokenString string) (*userClaim, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &userClaim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, xerrors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, xerrors.New(err)
	}
	if !parsed.Valid {
		return nil, xerrors.New("invalid token")
	}

	claim, ok := parsed.Claims.(*userClaim)
	if !ok {
		return nil, xerrors.New("could not parse claims")
	}
	return claim, nil
}
