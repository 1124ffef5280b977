package http

import (
	"errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/errors"
	apperrors "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/pkg/errors"
)

// Client-facing messages
const (
	msgPaymentNotFound  = "Payment not found"
	msgAlreadyFinalized = "Payment is already finalized."
	msgPaymentConflict  = "Payment already exists"
	msgInvalidBody      = "Invalid request body"
	msgSimulateStatus   = "Status must be SUCCESS or FAILED for simulation."
	msgInvalidStatus    = "Invalid status"
	msgWebhookStatus    = "Webhook can only mark payments as SUCCESS or FAILED"
)

// SuccessResponse wraps every successful payload
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, SuccessResponse{Success: true, Data: data})
}

// toAppError maps lifecycle failures onto coded errors the echo error handler renders.
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var validationErr *domainErrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, validationErr.Message, err)
	case errors.Is(err, domainErrors.ErrPaymentNotFound):
		return apperrors.NewAppError(apperrors.ErrNotFound, msgPaymentNotFound, err)
	case errors.Is(err, domainErrors.ErrAlreadyFinalized):
		return apperrors.NewAppError(apperrors.ErrFailedPrecondition, msgAlreadyFinalized, err)
	case errors.Is(err, domainErrors.ErrPaymentConflict):
		return apperrors.NewAppError(apperrors.ErrConflict, msgPaymentConflict, err)
	default:
		return apperrors.NewAppError(apperrors.ErrInternal, apperrors.InternalErrorMessage, err)
	}
}

// fail logs err with its mapped code and returns it for the echo error handler
func fail(c echo.Context, logger *zap.Logger, err error, msg string, fields ...zap.Field) error {
	appErr := toAppError(err)
	fields = append(fields,
		zap.String("path", c.Request().URL.Path),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)))
	apperrors.LogError(logger, appErr, msg, fields...)
	return appErr
}

func invalidArgument(message string) *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrInvalidArgument, message, nil)
}

func notFound() *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrNotFound, msgPaymentNotFound, nil)
}
