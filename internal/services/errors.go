package services

import "errors"

// Shared service-level errors. Handlers translate these into HTTP statuses:
// *NotFound -> 404, ErrInsufficientStock and ErrValidation -> 400, the
// rest -> 500.
var (
	ErrValidation        = errors.New("validation error")
	ErrMaterialNotFound  = errors.New("material not found")
	ErrToolNotFound      = errors.New("tool not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrDeliveryNotFound  = errors.New("delivery not found")
	ErrReportNotFound    = errors.New("error report not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUserNameExists    = errors.New("user with this name already exists")
	ErrInvalidPIN        = errors.New("invalid PIN")
)
