package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal        ErrorCode = "COMMON_001"
	ErrCodeBadRequest      ErrorCode = "COMMON_002"
	ErrCodeNotFound        ErrorCode = "COMMON_003"
	ErrCodeTimeout         ErrorCode = "COMMON_004"
	ErrCodeValidation      ErrorCode = "COMMON_005"
	ErrCodeSerialization   ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests ErrorCode = "COMMON_007"
)

// Matching module error codes.
const (
	ErrCodeMissingColumn    ErrorCode = "MATCH_001"
	ErrCodeThresholdInvalid ErrorCode = "MATCH_002"
	ErrCodeEmptyQuery       ErrorCode = "MATCH_003"
)

// KEGG client error codes.
const (
	ErrCodeKEGGUnavailable ErrorCode = "KEGG_001"
	ErrCodeKEGGBadStatus   ErrorCode = "KEGG_002"
	ErrCodeKEGGParse       ErrorCode = "KEGG_003"
	ErrCodeKEGGNotFound    ErrorCode = "KEGG_004"
)

// Tabular I/O error codes.
const (
	ErrCodeTableRead   ErrorCode = "TAB_001"
	ErrCodeTableWrite  ErrorCode = "TAB_002"
	ErrCodeTableRagged ErrorCode = "TAB_003"
)

// Aliases kept short at call sites.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// ErrorCodeMessage maps codes to default human-readable messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:        "internal error",
	ErrCodeBadRequest:      "bad request",
	ErrCodeNotFound:        "resource not found",
	ErrCodeTimeout:         "request timeout",
	ErrCodeValidation:      "validation failed",
	ErrCodeSerialization:   "serialization failed",
	ErrCodeTooManyRequests: "too many requests",

	ErrCodeMissingColumn:    "required table column missing",
	ErrCodeThresholdInvalid: "similarity threshold out of range",
	ErrCodeEmptyQuery:       "compound query is empty",

	ErrCodeKEGGUnavailable: "KEGG service unavailable",
	ErrCodeKEGGBadStatus:   "unexpected KEGG response status",
	ErrCodeKEGGParse:       "failed to parse KEGG response",
	ErrCodeKEGGNotFound:    "KEGG entry not found",

	ErrCodeTableRead:   "failed to read table",
	ErrCodeTableWrite:  "failed to write table",
	ErrCodeTableRagged: "table rows have inconsistent widths",
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}
