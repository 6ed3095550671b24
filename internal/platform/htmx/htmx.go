// Package htmx renders either a full page or a swap fragment depending on
// whether the request came from HTMX.
package htmx

import (
	"bytes"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// RequestHeaderKey is the header HTMX sets on partial requests.
const RequestHeaderKey = "HX-Request"

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeaderKey), "true")
}

// TitleTag formats an escaped <title> element.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

// RenderPage writes fragment for HTMX requests and full otherwise. Both are
// rendered into a buffer first so a failing component never leaves a partial
// body behind a committed status.
//
// HTMX responses get a <title> prepended when the fragment has none, so the
// browser tab follows the selected dashboard tab.
func RenderPage(w http.ResponseWriter, r *http.Request, status int, fragment, full templ.Component, title string) {
	target := full
	if IsHTMXRequest(r) && fragment != nil {
		target = fragment
	}
	if target == nil {
		target = fragment
	}
	if target == nil {
		w.WriteHeader(status)
		return
	}

	var body bytes.Buffer
	if err := target.Render(r.Context(), &body); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	out := body.Bytes()
	if IsHTMXRequest(r) && !bytes.Contains(bytes.ToLower(out), []byte("<title")) {
		if tag := TitleTag(title); tag != "" {
			out = append([]byte(tag), out...)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if IsHTMXRequest(r) {
		w.Header().Add("Vary", RequestHeaderKey)
	}
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(out)
}
