package cerror

const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeMalformedIdentifier = "MALFORMED_IDENTIFIER"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeInternalError       = "INTERNAL_ERROR"
)
