package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"

	"generic-api/internal/document"
	"generic-api/pkg/cerror"
	"generic-api/pkg/config"
	"generic-api/pkg/denylist"
	"generic-api/pkg/jwt_generator"
)

type Service interface {
	Authenticate(ctx context.Context, credentials *LoginPayload) (*LoginResult, error)
	VerifyToken(ctx context.Context, rawJwtToken string) (*jwt_generator.Claims, error)
	ResolveCurrentUser(ctx context.Context, rawJwtToken string) (*UserProfile, error)
	Logout(ctx context.Context, rawJwtToken string) error
}

type service struct {
	documentRepository document.Repository
	jwtGenerator       jwt_generator.JwtGenerator
	tokenDenylist      denylist.Denylist
	userCollection     string
	accessTokenTtl     time.Duration
	refreshTokenTtl    time.Duration
}

// NewService wires the authenticator onto the document accessor's repository;
// user records live in an ordinary collection and are read and updated
// through the same store primitives as any other entity. The token denylist
// is optional: pass nil to keep the purely expiry-based token lifecycle.
func NewService(
	documentRepository document.Repository,
	jwtGenerator jwt_generator.JwtGenerator,
	tokenDenylist denylist.Denylist,
	cfg *config.Config,
) Service {
	userCollection := cfg.Mongodb.Collections[config.MongodbUserCollection]
	if userCollection == "" {
		userCollection = config.DefaultUserCollection
	}

	return &service{
		documentRepository: documentRepository,
		jwtGenerator:       jwtGenerator,
		tokenDenylist:      tokenDenylist,
		userCollection:     userCollection,
		accessTokenTtl:     cfg.Jwt.AccessTokenTtl,
		refreshTokenTtl:    cfg.Jwt.RefreshTokenTtl,
	}
}

func (s *service) Authenticate(ctx context.Context, credentials *LoginPayload) (*LoginResult, error) {
	filter := bson.M{
		"$or": []bson.M{
			{FieldEmail: credentials.Email},
			{FieldUsername: credentials.Email},
		},
	}
	user, err := s.documentRepository.FindOne(ctx, s.userCollection, filter)
	if err != nil {
		if isNotFound(err) {
			return nil, invalidCredentialsError("user not found with given identifier")
		}

		return nil, err
	}

	hashedPassword, _ := user[FieldPassword].(string)
	err = bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(credentials.Password))
	if err != nil {
		return nil, invalidCredentialsError("claimed password does not match")
	}

	if isActive, isSet := user[FieldIsActive].(bool); isSet && !isActive {
		// distinct condition in the logs, generic denial on the wire
		return nil, invalidCredentialsError("account is disabled")
	}

	userId, ok := user[document.IdentifierField].(primitive.ObjectID)
	if !ok {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while type casting for user id",
		)
	}

	err = s.documentRepository.UpdateOne(ctx, s.userCollection, userId, bson.M{
		FieldLastLogin: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(userId.Hex())
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:   profileFromDocument(document.SerializeDocument(user), false),
		Tokens: tokens,
	}, nil
}

func (s *service) VerifyToken(ctx context.Context, rawJwtToken string) (*jwt_generator.Claims, error) {
	claims, err := s.jwtGenerator.VerifyToken(rawJwtToken)
	if err != nil {
		if errors.Is(err, jwt_generator.ErrTokenExpired) {
			return nil, cerror.
				NewError(fiber.StatusUnauthorized, "expired jwt token").
				SetCode(cerror.CodeTokenExpired).
				SetPublicMessage("token expired").
				SetSeverity(zapcore.WarnLevel)
		}

		return nil, invalidTokenError("invalid jwt token", zap.Error(err))
	}

	if s.tokenDenylist != nil {
		isDenylisted, err := s.tokenDenylist.Contains(ctx, claims.ID)
		if err != nil {
			return nil, cerror.NewError(
				fiber.StatusInternalServerError,
				"error occurred while check token denylist",
				zap.Error(err),
			)
		}

		if isDenylisted {
			return nil, invalidTokenError("jwt token is denylisted", zap.String("tokenId", claims.ID))
		}
	}

	return claims, nil
}

func (s *service) ResolveCurrentUser(ctx context.Context, rawJwtToken string) (*UserProfile, error) {
	claims, err := s.VerifyToken(ctx, rawJwtToken)
	if err != nil {
		return nil, err
	}

	userId, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, invalidTokenError("jwt token subject is not a valid identifier", zap.Error(err))
	}

	user, err := s.documentRepository.FindOne(ctx, s.userCollection, bson.M{
		document.IdentifierField: userId,
	})
	if err != nil {
		// a valid signature does not guarantee a live account
		if isNotFound(err) {
			return nil, invalidTokenError(
				"jwt token subject no longer exists",
				zap.String("userId", claims.Subject),
			)
		}

		return nil, err
	}

	return profileFromDocument(document.SerializeDocument(user), true), nil
}

func (s *service) Logout(ctx context.Context, rawJwtToken string) error {
	claims, err := s.VerifyToken(ctx, rawJwtToken)
	if err != nil {
		return err
	}

	if s.tokenDenylist == nil || claims.ExpiresAt == nil {
		return nil
	}

	timeToLive := time.Until(claims.ExpiresAt.Time)
	err = s.tokenDenylist.Add(ctx, claims.ID, timeToLive)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while add token to denylist",
			zap.Error(err),
		)
	}

	return nil
}

func (s *service) generateTokens(userId string) (*jwt_generator.Tokens, error) {
	now := time.Now().UTC()

	accessToken, err := s.jwtGenerator.GenerateAccessToken(now.Add(s.accessTokenTtl), userId)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate access token",
			zap.Error(err),
		)
	}

	refreshToken, err := s.jwtGenerator.GenerateRefreshToken(now.Add(s.refreshTokenTtl), userId)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate refresh token",
			zap.Error(err),
		)
	}

	return &jwt_generator.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTokenTtl.Seconds()),
	}, nil
}

func profileFromDocument(user document.Document, withTimestamps bool) *UserProfile {
	profile := &UserProfile{
		Id:       stringField(user, document.IdentifierField),
		Email:    stringField(user, FieldEmail),
		Username: stringField(user, FieldUsername),
		Name:     stringField(user, FieldName),
		Role:     stringField(user, FieldRole),
	}
	if profile.Role == "" {
		profile.Role = RoleDefault
	}

	if withTimestamps {
		profile.CreatedAt = stringField(user, document.CreatedAtField)
		profile.UpdatedAt = stringField(user, document.UpdatedAtField)
		profile.LastLogin = stringField(user, FieldLastLogin)
	}

	return profile
}

func stringField(user document.Document, fieldName string) string {
	fieldValue, _ := user[fieldName].(string)
	return fieldValue
}

func isNotFound(err error) bool {
	var customError *cerror.CustomError
	return errors.As(err, &customError) && customError.HttpStatusCode == fiber.StatusNotFound
}

func invalidCredentialsError(logMessage string) *cerror.CustomError {
	return cerror.
		NewError(fiber.StatusUnauthorized, logMessage).
		SetCode(cerror.CodeInvalidCredentials).
		SetPublicMessage("invalid credentials").
		SetSeverity(zapcore.WarnLevel)
}

func invalidTokenError(logMessage string, logFields ...zapcore.Field) *cerror.CustomError {
	return cerror.
		NewError(fiber.StatusUnauthorized, logMessage, logFields...).
		SetCode(cerror.CodeInvalidToken).
		SetPublicMessage("invalid token").
		SetSeverity(zapcore.WarnLevel)
}
