package utils

import (
	"net/http"
	"strings"
)

const maxFormMemory = 1 << 20

// ParseForm accepts urlencoded and multipart bodies alike.
func ParseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}
