//go:build unit

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"generic-api/internal/document"
	"generic-api/pkg/cerror"
	"generic-api/pkg/config"
	"generic-api/pkg/denylist"
	"generic-api/pkg/jwt_generator"
)

const (
	TestUserCollection = "users"
	TestEmail          = "test@test.com"
	TestPassword       = "Asdf12345_"
	TestSecretKey      = "test-secret-key"
)

func buildTestConfig() *config.Config {
	return &config.Config{
		Mongodb: config.MongodbConfig{
			Collections: map[string]string{
				config.MongodbUserCollection: TestUserCollection,
			},
		},
		Jwt: config.JwtConfig{
			SecretKey:       []byte(TestSecretKey),
			AccessTokenTtl:  time.Hour,
			RefreshTokenTtl: 30 * 24 * time.Hour,
		},
	}
}

func buildTestJwtGenerator(t *testing.T) jwt_generator.JwtGenerator {
	jwtGenerator, err := jwt_generator.NewJwtGenerator(&config.JwtConfig{
		SecretKey: []byte(TestSecretKey),
	})
	require.NoError(t, err)

	return jwtGenerator
}

func buildTestUserDocument(t *testing.T, userId primitive.ObjectID) bson.M {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return bson.M{
		document.IdentifierField: userId,
		FieldEmail:               TestEmail,
		FieldName:                "Test User",
		FieldPassword:            string(hashedPassword),
	}
}

func TestNewService(t *testing.T) {
	authService := NewService(nil, nil, nil, buildTestConfig())

	assert.Implements(t, (*Service)(nil), authService)
}

func TestService_Authenticate(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	t.Run("happy path", func(t *testing.T) {
		userId := primitive.NewObjectID()
		userDocument := buildTestUserDocument(t, userId)

		mockDocumentRepository := document.NewMockRepository(mockController)
		mockDocumentRepository.
			EXPECT().
			FindOne(gomock.Any(), TestUserCollection, bson.M{
				"$or": []bson.M{
					{FieldEmail: TestEmail},
					{FieldUsername: TestEmail},
				},
			}).
			Return(userDocument, nil)
		mockDocumentRepository.
			EXPECT().
			UpdateOne(gomock.Any(), TestUserCollection, userId, gomock.Any()).
			Return(nil)

		authService := NewService(mockDocumentRepository, buildTestJwtGenerator(t), nil, buildTestConfig())
		loginResult, err := authService.Authenticate(context.Background(), &LoginPayload{
			Email:    TestEmail,
			Password: TestPassword,
		})

		require.NoError(t, err)
		assert.Equal(t, userId.Hex(), loginResult.User.Id)
		assert.Equal(t, TestEmail, loginResult.User.Email)
		assert.Equal(t, RoleDefault, loginResult.User.Role)
		assert.NotEmpty(t, loginResult.Tokens.AccessToken)
		assert.NotEmpty(t, loginResult.Tokens.RefreshToken)
		assert.Equal(t, int64(3600), loginResult.Tokens.ExpiresIn)
	})

	t.Run("when user not found should return invalid credentials", func(t *testing.T) {
		mockDocumentRepository := document.NewMockRepository(mockController)
		mockDocumentRepository.
			EXPECT().
			FindOne(gomock.Any(), TestUserCollection, gomock.Any()).
			Return(nil, cerror.
				NewError(fiber.StatusNotFound, "document not found").
				SetCode(cerror.CodeNotFound))

		authService := NewService(mockDocumentRepository, buildTestJwtGenerator(t), nil, buildTestConfig())
		loginResult, err := authService.Authenticate(context.Background(), &LoginPayload{
			Email:    TestEmail,
			Password: TestPassword,
		})

		assert.Nil(t, loginResult)

		var customError *cerror.CustomError
		require.ErrorAs(t, err, &customError)
		assert.Equal(t, fiber.StatusUnauthorized, customError.HttpStatusCode)
		assert.Equal(t, cerror.CodeInvalidCredentials, customError.Code)
		assert.Equal(t, "invalid credentials", customError.PublicMessage)
	})

	t.Run("when password does not match should return invalid credentials", func(t *testing.T) {
		userId := primitive.NewObjectID()
		userDocument := buildTestUserDocument(t, userId)

		mockDocumentRepository := document.NewMockRepository(mockController)
		mockDocumentRepository.
			EXPECT().
			FindOne(gomock.Any(), TestUserCollection, gomock.Any()).
			Return(userDocument, nil)

		authService := NewService(mockDocumentRepository, buildTestJwtGenerator(t), nil, buildTestConfig())
		loginResult, err := authService.Authenticate(context.Background(), &LoginPayload{
			Email:    TestEmail,
			Password: "wrong-password",
		})

		assert.Nil(t, loginResult)

		var customError *cerror.CustomError
		require.ErrorAs(t, err, &customError)
		assert.Equal(t, fiber.StatusUnauthorized, customError.HttpStatusCode)
		assert.Equal(t, cerror.CodeInvalidCredentials, customError.Code)
	})

	t.Run("when account is disabled should return the same public error", func(t *testing.T) {
		userId := primitive.NewObjectID()
		userDocument := buildTestUserDocument(t, userId)
		userDocument[FieldIsActive] = false

		mockDocumentRepository := document.NewMockRepository(mockController)
		mockDocumentRepository.
			EXPECT().
			FindOne(gomock.Any(), TestUserCollection, gomock.Any()).
			Return(userDocument, nil)

		authService := NewService(mockDocumentRepository, buildTestJwtGenerator(t), nil, buildTestConfig())
		loginResult, err := authService.Authenticate(context.Background(), &LoginPayload{
			Email:    TestEmail,
			Password: TestPassword,
		})

		assert.Nil(t, loginResult)

		var customError *cerror.CustomError
		require.ErrorAs(t, err, &customError)
		assert.Equal(t, cerror.CodeInvalidCredentials, customError.Code)
		assert.Equal(t, "invalid credentials", customError.PublicMessage)
	})
}

func TestService_VerifyToken(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	t.Run("happy path", func(t *testing.T) {
		userId := primitive.NewObjectID()
		jwtGenerator := buildTestJwtGenerator(t)

		accessToken, err := jwtGenerator.GenerateAccessToken(
			time.Now().UTC().Add(time.Hour),
			userId.Hex(),
		)
		require.NoError(t, err)

		authService := NewService(nil, jwtGenerator, nil, buildTestConfig())
		claims, err := authService.VerifyToken(context.Background(), accessToken)

		require.NoError(t, err)
		assert.Equal(t, userId.Hex(), claims.Subject)
		assert.Equal(t, jwt_generator.TokenTypeAccess, claims.TokenType)
	})

	t.Run("refresh tokens carry their own type tag", func(t *testing.T) {
		jwtGenerator := buildTestJwtGenerator(t)

		refreshToken, err := jwtGenerator.GenerateRefreshToken(
			time.Now().UTC().Add(time.Hour),
			primitive.NewObjectID().Hex(),
		)
		require.NoError(t, err)

		authService := NewService(nil, jwtGenerator, nil, buildTestConfig())
		claims, err := authService.VerifyToken(context.Background(), refreshToken)

		require.NoError(t, err)
		assert.Equal(t, jwt_generator.TokenTypeRefresh, claims.TokenType)
	})

	t.Run("when token is expired should return token expired", func(t *testing.T) {
		jwtGenerator := buildTestJwtGenerator(t)

		accessToken, err := jwtGenerator.GenerateAccessToken(
			time.Now().UTC().Add(-time.Hour),
			primitive.NewObjectID().Hex(),
		)
		require.NoError(t, err)

		authService := NewService(nil, jwtGenerator, nil, buildTestConfig())
		claims, err := authService.VerifyToken(context.Background(), accessToken)

		assert.Nil(t, claims)

		var customError *cerror.CustomError
		require.ErrorAs(t, err, &customError)
		assert.Equal(t, fiber.StatusUnauthorized, customError.HttpStatusCode)
		assert.Equal(t, cerror.CodeTokenExpired, customError.Code)
	})

	t.Run("when token is garbage should return invalid token", func(t *testing.T) {
		authService := NewService(nil, buildTestJwtGenerator(t), nil, buildTestConfig())
		claims, err := authService.VerifyToken(context.Background(), "not.a.token")

		assert.Nil(t, claims)

		var customError *cerror.CustomError
		require.ErrorAs(t, err, &customError)
		assert.Equal(t, fiber.StatusUnauthorized, customError.HttpStatusCode)
		assert.Equal(t, cerror.CodeInvalidToken, customError.Code)
	})

	t.Run("when token is denylisted should return invalid token", func(t *testing.T) {
		redisServer := miniredis.RunT(t)
		redisClient := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
		tokenDenylist := denylist.NewRedisDenylist(redisClient)

		jwtGenerator := buildTestJwtGenerator(t)
		accessToken, err := jwtGenerator.GenerateAccessToken(
			time.Now().UTC().Add(time.Hour),
			primitive.NewObjectID().Hex(),
		)
		require.NoError(t, err)

		authService := NewService(nil, jwtGenerator, tokenDenylist, buildTestConfig())

		err = authService.Logout(context.Background(), accessToken)
		require.NoError(t, err)

		claims, err := authService.VerifyToken(context.Background(), accessToken)

		assert.Nil(t, claims)

		var customError *cerror.CustomError
		require.ErrorAs(t, err, &customError)
		assert.Equal(t, cerror.CodeInvalidToken, customError.Code)
	})
}

func TestService_ResolveCurrentUser(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	t.Run("happy path", func(t *testing.T) {
		userId := primitive.NewObjectID()
		userDocument := buildTestUserDocument(t, userId)

		jwtGenerator := buildTestJwtGenerator(t)
		accessToken, err := jwtGenerator.GenerateAccessToken(
			time.Now().UTC().Add(time.Hour),
			userId.Hex(),
		)
		require.NoError(t, err)

		mockDocumentRepository := document.NewMockRepository(mockController)
		mockDocumentRepository.
			EXPECT().
			FindOne(gomock.Any(), TestUserCollection, bson.M{document.IdentifierField: userId}).
			Return(userDocument, nil)

		authService := NewService(mockDocumentRepository, jwtGenerator, nil, buildTestConfig())
		userProfile, err := authService.ResolveCurrentUser(context.Background(), accessToken)

		require.NoError(t, err)
		assert.Equal(t, userId.Hex(), userProfile.Id)
		assert.Equal(t, TestEmail, userProfile.Email)
	})

	t.Run("when token subject no longer exists should return invalid token", func(t *testing.T) {
		userId := primitive.NewObjectID()

		jwtGenerator := buildTestJwtGenerator(t)
		accessToken, err := jwtGenerator.GenerateAccessToken(
			time.Now().UTC().Add(time.Hour),
			userId.Hex(),
		)
		require.NoError(t, err)

		mockDocumentRepository := document.NewMockRepository(mockController)
		mockDocumentRepository.
			EXPECT().
			FindOne(gomock.Any(), TestUserCollection, bson.M{document.IdentifierField: userId}).
			Return(nil, cerror.
				NewError(fiber.StatusNotFound, "document not found").
				SetCode(cerror.CodeNotFound))

		authService := NewService(mockDocumentRepository, jwtGenerator, nil, buildTestConfig())
		userProfile, err := authService.ResolveCurrentUser(context.Background(), accessToken)

		assert.Nil(t, userProfile)

		var customError *cerror.CustomError
		require.ErrorAs(t, err, &customError)
		assert.Equal(t, fiber.StatusUnauthorized, customError.HttpStatusCode)
		assert.Equal(t, cerror.CodeInvalidToken, customError.Code)
	})
}

func TestService_Logout(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		redisServer := miniredis.RunT(t)
		redisClient := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
		tokenDenylist := denylist.NewRedisDenylist(redisClient)

		jwtGenerator := buildTestJwtGenerator(t)
		accessToken, err := jwtGenerator.GenerateAccessToken(
			time.Now().UTC().Add(time.Hour),
			primitive.NewObjectID().Hex(),
		)
		require.NoError(t, err)

		authService := NewService(nil, jwtGenerator, tokenDenylist, buildTestConfig())
		err = authService.Logout(context.Background(), accessToken)

		assert.NoError(t, err)
	})

	t.Run("when denylist is not configured logout is a no-op", func(t *testing.T) {
		jwtGenerator := buildTestJwtGenerator(t)
		accessToken, err := jwtGenerator.GenerateAccessToken(
			time.Now().UTC().Add(time.Hour),
			primitive.NewObjectID().Hex(),
		)
		require.NoError(t, err)

		authService := NewService(nil, jwtGenerator, nil, buildTestConfig())

		err = authService.Logout(context.Background(), accessToken)
		assert.NoError(t, err)

		_, err = authService.VerifyToken(context.Background(), accessToken)
		assert.NoError(t, err)
	})

	t.Run("when token is invalid should return error", func(t *testing.T) {
		authService := NewService(nil, buildTestJwtGenerator(t), nil, buildTestConfig())

		err := authService.Logout(context.Background(), "not.a.token")

		assert.Error(t, err)
	})
}
