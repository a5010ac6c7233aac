package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
// Codes are "<MODULE>_<NNN>"; the module prefix groups them for dashboards.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeMessagingError     ErrorCode = "COMMON_015"

	CodeOK      ErrorCode = "OK"
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Patent Module Error Codes
const (
	ErrCodePatentNotFound      ErrorCode = "PAT_001"
	ErrCodePatentAlreadyExists ErrorCode = "PAT_002"
	ErrCodePatentInvalid       ErrorCode = "PAT_003"
)

// Company Module Error Codes
const (
	ErrCodeCompanyNotFound      ErrorCode = "CMP_001"
	ErrCodeCompanyAlreadyExists ErrorCode = "CMP_002"
)

// Infringement Module Error Codes
const (
	ErrCodeInfringementAnalysisFailed ErrorCode = "INF_001"
	ErrCodeAnalysisNotFound           ErrorCode = "INF_002"
)

// User Module Error Codes
const (
	ErrCodeUserNotFound ErrorCode = "USR_001"
	ErrCodeItemNotFound ErrorCode = "USR_002"
)

// Seed Error Codes
const (
	ErrCodeSeedDocumentInvalid ErrorCode = "SEED_001"
	ErrCodeSeedRecordInvalid   ErrorCode = "SEED_002"
)

// LLM Error Codes
const (
	ErrCodeLLMUnavailable     ErrorCode = "LLM_001"
	ErrCodeLLMResponseInvalid ErrorCode = "LLM_002"
)

var notFoundCodes = map[ErrorCode]bool{
	ErrCodeNotFound:         true,
	ErrCodePatentNotFound:   true,
	ErrCodeCompanyNotFound:  true,
	ErrCodeAnalysisNotFound: true,
	ErrCodeUserNotFound:     true,
	ErrCodeItemNotFound:     true,
}

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeMessagingError:     http.StatusInternalServerError,

	ErrCodePatentNotFound:      http.StatusNotFound,
	ErrCodePatentAlreadyExists: http.StatusConflict,
	ErrCodePatentInvalid:       http.StatusBadRequest,

	ErrCodeCompanyNotFound:      http.StatusNotFound,
	ErrCodeCompanyAlreadyExists: http.StatusConflict,

	ErrCodeInfringementAnalysisFailed: http.StatusInternalServerError,
	ErrCodeAnalysisNotFound:           http.StatusNotFound,

	ErrCodeUserNotFound: http.StatusNotFound,
	ErrCodeItemNotFound: http.StatusNotFound,

	ErrCodeSeedDocumentInvalid: http.StatusUnprocessableEntity,
	ErrCodeSeedRecordInvalid:   http.StatusUnprocessableEntity,

	ErrCodeLLMUnavailable:     http.StatusBadGateway,
	ErrCodeLLMResponseInvalid: http.StatusBadGateway,
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.SplitN(string(code), "_", 2)
	if len(parts) == 2 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
