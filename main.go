package main

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"generic-api/internal/auth"
	"generic-api/internal/document"
	"generic-api/pkg/config"
	"generic-api/pkg/denylist"
	"generic-api/pkg/jwt_generator"
	"generic-api/pkg/logger"
	"generic-api/pkg/server"
)

func main() {
	logWithProductionConfig, _ := zap.NewProduction()
	log := logWithProductionConfig.Sugar()
	defer func(l *zap.Logger) {
		err := l.Sync()
		if err != nil {
			panic(err)
		}
	}(logWithProductionConfig)

	isAtRemote := os.Getenv(config.IsAtRemote)
	if isAtRemote == "" {
		err := godotenv.Load()
		if err != nil {
			log.Warnw(
				"failed to load .env file",
				zap.Error(err),
			)
		}
	}

	cfg, err := config.ReadConfig()
	if err != nil {
		panic(err)
	}
	cfg.Print()

	var jwtGenerator jwt_generator.JwtGenerator
	jwtGenerator, err = jwt_generator.NewJwtGenerator(&cfg.Jwt)
	if err != nil {
		log.Fatalw(
			"failed to create jwt generator",
			zap.Error(err),
		)
	}

	ctx := context.Background()
	mongodbClient, err := setupMongodbClient(ctx, cfg)
	if err != nil {
		log.Fatalw(
			"failed to setup mongodb client",
			zap.Error(err),
		)
	}

	defer func(client *mongo.Client, ctx context.Context) {
		err := client.Disconnect(ctx)
		if err != nil {
			log.Fatalw(
				"failed to disconnect mongodb client",
				zap.Error(err),
			)
		}
	}(mongodbClient, ctx)

	var tokenDenylist denylist.Denylist
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
		})
		err = redisClient.Ping(ctx).Err()
		if err != nil {
			log.Fatalw(
				"failed to connect to redis",
				zap.Error(err),
			)
		}

		tokenDenylist = denylist.NewRedisDenylist(redisClient)
		log.Info("token denylist enabled")
	}

	database := mongodbClient.Database(cfg.Mongodb.Database)
	documentRepository := document.NewRepository(database)
	documentService := document.NewService(documentRepository)
	documentHandler := document.NewHandler(documentService)

	authService := auth.NewService(documentRepository, jwtGenerator, tokenDenylist, cfg)
	authHandler := auth.NewHandler(authService)

	// auth routes must be registered before the :entity wildcards
	handlers := []server.Handler{authHandler, documentHandler}
	srv := server.NewServer(cfg, handlers)

	logMiddleware := logger.Middleware(log)
	app := srv.GetFiberInstance()
	app.Use(cors.New())
	app.Use(logMiddleware)
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).SendString("OK")
	})
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "generic document api",
			"endpoints": fiber.Map{
				"authentication": []string{
					"POST /auth/login",
					"POST /auth/logout",
					"GET /auth/profile",
					"POST /auth/validate",
				},
				"dynamic_entities": []string{
					"GET /{entity}",
					"GET /{entity}/id/{id}",
					"GET /{entity}/filter",
					"POST /{entity}",
					"PUT /{entity}/{id}",
					"DELETE /{entity}/{id}",
				},
			},
		})
	})

	srv.RegisterRoutes()

	if isAtRemote == "" {
		err = srv.Start()
		if err != nil {
			panic(err)
		}
	} else {
		lambda.Start(srv.LambdaProxyHandler)
	}
}

func setupMongodbClient(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	mongodbServerAPIOptions := options.ServerAPI(options.ServerAPIVersion1)
	clientOptions := options.Client().
		ApplyURI(cfg.Mongodb.Uri).
		SetServerAPIOptions(mongodbServerAPIOptions)

	if cfg.Mongodb.Username != "" {
		clientOptions = clientOptions.SetAuth(options.Credential{
			Username: cfg.Mongodb.Username,
			Password: cfg.Mongodb.Password,
		})
	}

	mongodbClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	return mongodbClient, nil
}
