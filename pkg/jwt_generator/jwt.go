package jwt_generator

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"generic-api/pkg/config"
)

var (
	ErrTokenExpired = errors.New("expired jwt token")
	ErrInvalidToken = errors.New("invalid jwt token")
)

type JwtGenerator interface {
	GenerateAccessToken(expirationTime time.Time, userId string) (string, error)
	GenerateRefreshToken(expirationTime time.Time, userId string) (string, error)
	VerifyToken(rawJwtToken string) (*Claims, error)
}

type jwtGenerator struct {
	secretKey []byte
}

func NewJwtGenerator(jwtConfig *config.JwtConfig) (JwtGenerator, error) {
	if len(jwtConfig.SecretKey) == 0 {
		return nil, errors.New("jwt secret key is empty")
	}

	return &jwtGenerator{
		secretKey: jwtConfig.SecretKey,
	}, nil
}

func (jwtGenerator *jwtGenerator) GenerateAccessToken(
	expirationTime time.Time,
	userId string,
) (string, error) {
	return jwtGenerator.generateToken(TokenTypeAccess, expirationTime, userId)
}

func (jwtGenerator *jwtGenerator) GenerateRefreshToken(
	expirationTime time.Time,
	userId string,
) (string, error) {
	return jwtGenerator.generateToken(TokenTypeRefresh, expirationTime, userId)
}

func (jwtGenerator *jwtGenerator) generateToken(
	tokenType string,
	expirationTime time.Time,
	userId string,
) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userId,
			Issuer:    IssuerDefault,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(jwtGenerator.secretKey)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

func (jwtGenerator *jwtGenerator) VerifyToken(rawJwtToken string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(rawJwtToken, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("jwt token is not valid signature")
		}

		return jwtGenerator.secretKey, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, ErrInvalidToken
	}

	isValidIssuer := claims.VerifyIssuer(IssuerDefault, true)
	if !isValidIssuer {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	now := time.Now().UTC()
	isJwtTokenNotExpired := claims.VerifyExpiresAt(now, true)
	if !isJwtTokenNotExpired {
		return nil, ErrTokenExpired
	}

	isTokenStarted := claims.VerifyNotBefore(now, true)
	if !isTokenStarted {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
