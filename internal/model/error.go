package model

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeImageTooLarge    = "IMAGE_TOO_LARGE"
	ErrCodeImageBadType     = "IMAGE_BAD_TYPE"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure that maps to a 4xx response.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. The user-facing messages are kept in Uzbek to match
// the interface language of the rest of the application.
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Mahsulot topilmadi")
	ErrImageTooLarge      = NewDomainError(ErrCodeImageTooLarge, "Rasm hajmi 5MB dan oshmasligi kerak.")
	ErrImageBadType       = NewDomainError(ErrCodeImageBadType, "Faqat jpeg, png, yoki webp rasm yuklang.")
	ErrNameRequired       = NewDomainError(ErrCodeValidationFailed, "Mahsulot nomini kiriting")
	ErrPriceNegative      = NewDomainError(ErrCodeValidationFailed, "Narx manfiy bo‘lishi mumkin emas")
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorised, "Login yoki parol noto‘g‘ri")
)
