package errors

import "errors"

// InternalErrorMessage는 내부 에러 대신 응답에 노출하는 일반 메시지입니다
const InternalErrorMessage = "Internal server error"

// ErrorResponse는 모든 실패 응답에 사용하는 공통 포맷입니다
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	httpStatus, _ := GetCodeMapping(code)
	return httpStatus
}

// PublicMessage는 클라이언트에게 보여줄 메시지를 반환합니다.
// INTERNAL 코드는 항상 일반 메시지로 대체됩니다.
func PublicMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code() == ErrInternal {
		return InternalErrorMessage
	}
	return appErr.Message()
}

// NewErrorResponse는 에러로부터 HTTP 상태 코드와 응답 본문을 만듭니다
func NewErrorResponse(err error) (int, ErrorResponse) {
	return ToHTTPStatus(CodeOf(err)), ErrorResponse{
		Success: false,
		Error:   PublicMessage(err),
	}
}
