package importer

// ImportErrorCode is the closed set of stable, programmatic failure codes.
// Only the code is part of the contract; messages are free-form but must
// never embed raw key material.
type ImportErrorCode string

const (
	ErrCodeInvalidFormat        ImportErrorCode = "INVALID_FORMAT"
	ErrCodeTestnetRejected      ImportErrorCode = "TESTNET_REJECTED"
	ErrCodeInvalidChecksum      ImportErrorCode = "INVALID_CHECKSUM"
	ErrCodeInvalidWord          ImportErrorCode = "INVALID_WORD"
	ErrCodeInvalidWordCount     ImportErrorCode = "INVALID_WORD_COUNT"
	ErrCodeInvalidKeyOnCurve    ImportErrorCode = "INVALID_KEY_ON_CURVE"
	ErrCodeWrongPassword        ImportErrorCode = "WRONG_PASSWORD"
	ErrCodeEncryptedUnsupported ImportErrorCode = "ENCRYPTED_UNSUPPORTED"
	ErrCodeFileTooLarge         ImportErrorCode = "FILE_TOO_LARGE"
	ErrCodeFileParseError       ImportErrorCode = "FILE_PARSE_ERROR"
	ErrCodeNoPrivateKeys        ImportErrorCode = "NO_PRIVATE_KEYS"
	ErrCodeUnsupportedVersion   ImportErrorCode = "UNSUPPORTED_VERSION"
	ErrCodeUnknown              ImportErrorCode = "UNKNOWN"
)

// ImportError is the only error type produced by this package.
type ImportError struct {
	Code    ImportErrorCode
	Message string
}

func (e *ImportError) Error() string {
	return e.Message
}

// NewImportError builds an error for the given code. The message must be a
// format/position description, never the offending input.
func NewImportError(code ImportErrorCode, message string) *ImportError {
	return &ImportError{Code: code, Message: message}
}

// Decode extracts the stable code from an error. Non-ImportError values
// collapse to UNKNOWN.
func Decode(err error) (ImportErrorCode, string) {
	if err == nil {
		return "", ""
	}
	if typed, ok := err.(*ImportError); ok {
		return typed.Code, typed.Message
	}
	return ErrCodeUnknown, err.Error()
}

// Common reusable errors. Parser-specific failures construct their own with
// position details.
var (
	errInvalidFormat   = NewImportError(ErrCodeInvalidFormat, "input does not match any supported key format")
	errTestnetRejected = NewImportError(ErrCodeTestnetRejected, "testnet key material is not supported")
	errNoPrivateKeys   = NewImportError(ErrCodeNoPrivateKeys, "input contains no private keys")
)
