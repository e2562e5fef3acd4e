package config

import "time"

// #nosec
const (
	EnvironmentVariableNotDefined = "%s variable is not defined"

	IsAtRemote = "IS_AT_REMOTE"
	ServerPort = "SERVER_PORT"

	MongodbUri            = "MONGODB_URI"
	MongodbUsername       = "MONGODB_USERNAME"
	MongodbPassword       = "MONGODB_PASSWORD"
	MongodbDatabase       = "MONGODB_DATABASE"
	MongodbUserCollection = "MONGODB_USER_COLLECTION"

	JwtSecretKey       = "JWT_SECRET_KEY"
	JwtAccessTokenTtl  = "JWT_ACCESS_TOKEN_TTL"
	JwtRefreshTokenTtl = "JWT_REFRESH_TOKEN_TTL"

	RedisAddress  = "REDIS_ADDRESS"
	RedisPassword = "REDIS_PASSWORD"
)

const (
	DefaultServerPort      = "8080"
	DefaultUserCollection  = "users"
	DefaultAccessTokenTtl  = 60 * time.Minute
	DefaultRefreshTokenTtl = 30 * 24 * time.Hour
)

type Config struct {
	ServerPort string
	Mongodb    MongodbConfig
	Jwt        JwtConfig
	Redis      RedisConfig
}

type MongodbConfig struct {
	Uri         string
	Username    string
	Password    string
	Database    string
	Collections map[string]string
}

type JwtConfig struct {
	SecretKey       []byte
	AccessTokenTtl  time.Duration
	RefreshTokenTtl time.Duration
}

// RedisConfig is optional: an empty address disables the token denylist.
type RedisConfig struct {
	Address  string
	Password string
}
