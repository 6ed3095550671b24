package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/Shrey1306/noma/internal/platform/errors/i18n"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Metadata map[string]string // Additional context for templating
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error with metadata for i18n templating.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithMetadata creates a domain error with both metadata and a cause.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
		Cause:    cause,
	}
}

// DataShape reports a dataset that cannot satisfy the chart split.
func DataShape(rows int, detail string) *Error {
	return WithMetadata(CodeDataShape, fmt.Sprintf("dataset shape: %s (%d rows)", detail, rows), map[string]string{
		MetaRows:   strconv.Itoa(rows),
		MetaDetail: detail,
	})
}

// MissingAsset reports a referenced file that is absent or unreadable.
func MissingAsset(path string, cause error) *Error {
	return WrapWithMetadata(CodeMissingAsset, fmt.Sprintf("missing asset %q", path), map[string]string{
		MetaPath: path,
	}, cause)
}

// Render reports a chart or diagram construction failure.
func Render(detail string, cause error) *Error {
	return WrapWithMetadata(CodeRender, "render: "+detail, map[string]string{
		MetaDetail: detail,
	}, cause)
}

// As extracts the first domain error in err's chain.
func As(err error) (*Error, bool) {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first domain error in err's chain.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if domainErr, ok := As(err); ok {
		return domainErr.Code
	}
	return CodeUnknown
}

// IsDataShape reports whether err carries CodeDataShape.
func IsDataShape(err error) bool { return CodeOf(err) == CodeDataShape }

// IsMissingAsset reports whether err carries CodeMissingAsset.
func IsMissingAsset(err error) bool { return CodeOf(err) == CodeMissingAsset }

// IsRender reports whether err carries CodeRender.
func IsRender(err error) bool { return CodeOf(err) == CodeRender }

// HTTPStatus returns the response status for err.
func HTTPStatus(err error) int {
	return CodeOf(err).HTTPStatus()
}

// LocalizedMessage renders the user-facing message for err in locale.
func LocalizedMessage(err error, locale string) string {
	if err == nil {
		return ""
	}
	catalog := i18n.GetCatalog(locale)
	domainErr, ok := As(err)
	if !ok {
		return catalog.Format(string(CodeUnknown), nil)
	}
	return catalog.Format(string(domainErr.Code), domainErr.Metadata)
}
