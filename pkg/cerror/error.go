package cerror

import (
	"net/http"

	"go.uber.org/zap/zapcore"
)

func NewError(httpStatusCode int, logMessage string, logFields ...zapcore.Field) *CustomError {
	return &CustomError{
		HttpStatusCode: httpStatusCode,
		LogMessage:     logMessage,
		LogSeverity:    zapcore.ErrorLevel,
		LogFields:      logFields,
	}
}

func (cerr *CustomError) SetSeverity(severity zapcore.Level) *CustomError {
	cerr.LogSeverity = severity
	return cerr
}

func (cerr *CustomError) SetCode(code string) *CustomError {
	cerr.Code = code
	return cerr
}

func (cerr *CustomError) SetPublicMessage(message string) *CustomError {
	cerr.PublicMessage = message
	return cerr
}

func (cerr *CustomError) publicMessageOrDefault() string {
	if cerr.PublicMessage != "" {
		return cerr.PublicMessage
	}

	return http.StatusText(cerr.HttpStatusCode)
}
