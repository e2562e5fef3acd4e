package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kr/pretty"
)

func ReadConfig() (*Config, error) {
	serverPort := os.Getenv(ServerPort)
	if serverPort == "" {
		serverPort = DefaultServerPort
		fmt.Println("server port environment variable is empty its declared 8080 by default")
	}

	mongodbConfig, err := ReadMongodbConfig()
	if err != nil {
		return nil, err
	}

	jwtConfig, err := ReadJwtConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort: serverPort,
		Mongodb:    mongodbConfig,
		Jwt:        jwtConfig,
		Redis:      ReadRedisConfig(),
	}, nil
}

func (c *Config) Print() {
	_, _ = pretty.Println(c)
}

func ReadMongodbConfig() (MongodbConfig, error) {
	mongodbUri := os.Getenv(MongodbUri)
	if mongodbUri == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbUri)
	}

	mongodbDatabase := os.Getenv(MongodbDatabase)
	if mongodbDatabase == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbDatabase)
	}

	mongodbUserCollection := os.Getenv(MongodbUserCollection)
	if mongodbUserCollection == "" {
		mongodbUserCollection = DefaultUserCollection
	}

	return MongodbConfig{
		Uri:      mongodbUri,
		Username: os.Getenv(MongodbUsername),
		Password: os.Getenv(MongodbPassword),
		Database: mongodbDatabase,
		Collections: map[string]string{
			MongodbUserCollection: mongodbUserCollection,
		},
	}, nil
}

func ReadJwtConfig() (JwtConfig, error) {
	secretKey := os.Getenv(JwtSecretKey)
	if secretKey == "" {
		return JwtConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, JwtSecretKey)
	}

	accessTokenTtl, err := readDurationOrDefault(JwtAccessTokenTtl, DefaultAccessTokenTtl)
	if err != nil {
		return JwtConfig{}, err
	}

	refreshTokenTtl, err := readDurationOrDefault(JwtRefreshTokenTtl, DefaultRefreshTokenTtl)
	if err != nil {
		return JwtConfig{}, err
	}

	return JwtConfig{
		SecretKey:       []byte(secretKey),
		AccessTokenTtl:  accessTokenTtl,
		RefreshTokenTtl: refreshTokenTtl,
	}, nil
}

func ReadRedisConfig() RedisConfig {
	return RedisConfig{
		Address:  os.Getenv(RedisAddress),
		Password: os.Getenv(RedisPassword),
	}
}

func readDurationOrDefault(environmentVariable string, defaultValue time.Duration) (time.Duration, error) {
	rawDuration := os.Getenv(environmentVariable)
	if rawDuration == "" {
		return defaultValue, nil
	}

	duration, err := time.ParseDuration(rawDuration)
	if err != nil {
		return 0, fmt.Errorf("%s variable is not a valid duration: %w", environmentVariable, err)
	}

	return duration, nil
}
