package session

import (
	"errors"
	"time"

	"authms/internal/core/domain/account"

	"github.com/golang-jwt/jwt/v5"
)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 tokens binding account id and role. Verification
// is stateless, only the shared secret is needed.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration, now func() time.Time) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: now}
}

func (i *JWTIssuer) Issue(accountID account.ID, role account.Role) (account.SessionToken, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}
	return account.SessionToken(signed), nil
}

func (i *JWTIssuer) Verify(token account.SessionToken) (accountID account.ID, role account.Role, err error) {
	parsedClaims := claims{}
	parsed, err := jwt.ParseWithClaims(
		string(token),
		&parsedClaims,
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return accountID, role, account.ErrSessionTokenExpired
	}
	if err != nil || !parsed.Valid {
		return accountID, role, account.ErrInvalidSessionToken
	}

	accountID, err = account.ParseID(parsedClaims.Subject)
	if err != nil {
		return accountID, role, account.ErrInvalidSessionToken
	}
	role, err = account.ParseRole(parsedClaims.Role)
	if err != nil {
		return accountID, role, account.ErrInvalidSessionToken
	}
	return accountID, role, nil
}
