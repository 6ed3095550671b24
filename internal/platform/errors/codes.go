// Package errors provides coded domain errors with localized user messages.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeDataShape means a dataset is too small or malformed for the fixed
	// chart split.
	CodeDataShape Code = "DATA_SHAPE"

	// CodeMissingAsset means a referenced image or HTML file is absent or
	// unreadable.
	CodeMissingAsset Code = "MISSING_ASSET"

	// CodeRender means chart or diagram construction failed, for example on an
	// invalid color or coordinate.
	CodeRender Code = "RENDER"
)

// Metadata keys used by the message catalog templates.
const (
	MetaPath   = "Path"
	MetaDetail = "Detail"
	MetaRows   = "Rows"
)

// HTTPStatus maps a code to the response status used when it aborts a request.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeMissingAsset:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
