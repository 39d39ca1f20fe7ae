package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeTransport   = "TRANSPORT_ERROR"
	CodeStructure   = "STRUCTURE_ERROR"
	CodeNoRecords   = "NO_RECORDS_ERROR"
	CodeDateParse   = "DATE_PARSE_ERROR"
	CodePersistence = "PERSISTENCE_ERROR"
)

type ScrapeError struct {
	Message string
	Code    string
	Source  string
	Context map[string]any
	Cause   error
}

func (e *ScrapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ScrapeError) Unwrap() error {
	return e.Cause
}

// TransportError covers network, DNS and HTTP-status failures reaching a source.
type TransportError struct {
	*ScrapeError
	URL string
}

func NewTransportError(message, source, url string, cause error) *TransportError {
	return &TransportError{
		ScrapeError: &ScrapeError{
			Message: message,
			Code:    CodeTransport,
			Source:  source,
			Context: map[string]any{"url": url},
			Cause:   cause,
		},
		URL: url,
	}
}

// StructureError marks an expected container, table or header that was not
// found in the fetched document. Upstream structural drift lands here.
type StructureError struct {
	*ScrapeError
	Missing string
}

func NewStructureError(message, source, missing string) *StructureError {
	return &StructureError{
		ScrapeError: &ScrapeError{
			Message: message,
			Code:    CodeStructure,
			Source:  source,
			Context: map[string]any{"missing": missing},
		},
		Missing: missing,
	}
}

// NoRecordsError means the banner source parsed but produced zero usable records.
type NoRecordsError struct {
	*ScrapeError
}

func NewNoRecordsError(message, source string) *NoRecordsError {
	return &NoRecordsError{
		ScrapeError: &ScrapeError{
			Message: message,
			Code:    CodeNoRecords,
			Source:  source,
		},
	}
}

type DateParseError struct {
	*ScrapeError
	Value string
}

func NewDateParseError(message, source, value string, cause error) *DateParseError {
	return &DateParseError{
		ScrapeError: &ScrapeError{
			Message: message,
			Code:    CodeDateParse,
			Source:  source,
			Context: map[string]any{"value": value},
			Cause:   cause,
		},
		Value: value,
	}
}

type PersistenceError struct {
	*ScrapeError
	Path      string
	Operation string
}

func NewPersistenceError(message, operation, path string, cause error) *PersistenceError {
	return &PersistenceError{
		ScrapeError: &ScrapeError{
			Message: message,
			Code:    CodePersistence,
			Source:  "store",
			Context: map[string]any{
				"operation": operation,
				"path":      path,
			},
			Cause: cause,
		},
		Path:      path,
		Operation: operation,
	}
}

func IsTransportError(err error) bool {
	var te *TransportError
	return stderrors.As(err, &te)
}

func IsStructureError(err error) bool {
	var se *StructureError
	return stderrors.As(err, &se)
}

func IsNoRecordsError(err error) bool {
	var ne *NoRecordsError
	return stderrors.As(err, &ne)
}

func IsDateParseError(err error) bool {
	var de *DateParseError
	return stderrors.As(err, &de)
}
