package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные и неизвестные ошибки
	CodeInternalError     ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError     ErrorCode = "DATABASE_ERROR"
	CodeEmailDeliveryErr  ErrorCode = "EMAIL_DELIVERY_ERROR"
	CodeDecryptionFailure ErrorCode = "DECRYPTION_FAILURE"

	// Общие ошибки бизнес-логики
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"

	// Аутентификация и токены
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	CodeTokenAlreadyUsed   ErrorCode = "TOKEN_ALREADY_USED"
	CodeTokenNotFound      ErrorCode = "TOKEN_NOT_FOUND"
)
