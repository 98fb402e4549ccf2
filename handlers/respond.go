// Package handlers wires HTTP routes to the catalog, tech card and
// pricing services. All handlers speak JSON.
package handlers

import (
	"github.com/pocketbase/pocketbase/core"
)

// apiError sends an operator-facing error message. Callers log the
// underlying cause themselves before calling this.
func apiError(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, map[string]string{"error": message})
}

// fieldErrors reports per-field validation messages so the client can
// attach them to the right inputs.
func fieldErrors(e *core.RequestEvent, statusCode int, errs map[string]string) error {
	return e.JSON(statusCode, map[string]any{"errors": errs})
}
