package errors

// 공통 에러 코드 정의
const (
	// 일반적인 에러 코드
	ErrInternal           = "INTERNAL"
	ErrNotFound           = "NOT_FOUND"
	ErrInvalidArgument    = "INVALID_ARGUMENT"
	ErrFailedPrecondition = "FAILED_PRECONDITION"
	ErrConflict           = "CONFLICT"
	ErrResourceExhausted  = "RESOURCE_EXHAUSTED"
	ErrTimeout            = "TIMEOUT"
	ErrNotImplemented     = "NOT_IMPLEMENTED"
)
