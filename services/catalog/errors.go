package catalog

import "fmt"

// EntryError reports a malformed inbound catalog entry. It names the
// offending field so the caller can fix its integration.
type EntryError struct {
	Code    string
	Field   string
	Message string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

func NewEntryError(field, msg string) error {
	return &EntryError{
		Code:    "invalidCatalogEntry",
		Field:   field,
		Message: msg,
	}
}
