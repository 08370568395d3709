package errors

import "strconv"

// ErrorCode identifies an application error independently of the HTTP status
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = 0
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1003
	ErrorCode_VALIDATION_FAILED ErrorCode = 1004

	// Meeting sessions
	ErrorCode_SESSION_NOT_FOUND          ErrorCode = 2000
	ErrorCode_SESSION_INVALID_TRANSITION ErrorCode = 2001
	ErrorCode_SESSION_INVALID_STATE      ErrorCode = 2002
	ErrorCode_SESSION_INVALID_EVENT      ErrorCode = 2003

	// Summaries
	ErrorCode_SUMMARY_NOT_FOUND ErrorCode = 3000

	// Storage
	ErrorCode_STORAGE_WRITE_FAILED       ErrorCode = 4000
	ErrorCode_STORAGE_INVALID_COLLECTION ErrorCode = 4002
	ErrorCode_STORAGE_INVALID_RECORD     ErrorCode = 4003
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                    "UNKNOWN",
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_VALIDATION_FAILED:          "VALIDATION_FAILED",
	ErrorCode_SESSION_NOT_FOUND:          "SESSION_NOT_FOUND",
	ErrorCode_SESSION_INVALID_TRANSITION: "SESSION_INVALID_TRANSITION",
	ErrorCode_SESSION_INVALID_STATE:      "SESSION_INVALID_STATE",
	ErrorCode_SESSION_INVALID_EVENT:      "SESSION_INVALID_EVENT",
	ErrorCode_SUMMARY_NOT_FOUND:          "SUMMARY_NOT_FOUND",
	ErrorCode_STORAGE_WRITE_FAILED:       "STORAGE_WRITE_FAILED",
	ErrorCode_STORAGE_INVALID_COLLECTION: "STORAGE_INVALID_COLLECTION",
	ErrorCode_STORAGE_INVALID_RECORD:     "STORAGE_INVALID_RECORD",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}

// MarshalText renders the code by name in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
