package cerror

import (
	"go.uber.org/zap/zapcore"
)

type CustomError struct {
	HttpStatusCode int
	Code           string
	PublicMessage  string
	LogMessage     string
	LogSeverity    zapcore.Level
	LogFields      []zapcore.Field
}

func (cerr *CustomError) Error() string {
	return cerr.LogMessage
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"error,omitempty"`
}
