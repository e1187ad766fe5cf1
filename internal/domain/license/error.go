package license

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("license not found")
	ErrDecryption   = errors.New("cannot read stored data")
	ErrInvalidInput = errors.New("invalid input")
	ErrPartialIssue = errors.New("license issued but not fully recorded")
	ErrAudit        = errors.New("audit append failed")
	ErrKeySpace     = errors.New("could not generate a unique license key")
)

const CodeInvalidInput = "INVALID_INPUT"

type DomainError struct {
	Err     error
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	StepExport = "export"
	StepAudit  = "audit"
)

// PartialIssueError reports a license that was persisted to the database
// while a later step (receipt or audit) failed. Key is authoritative.
type PartialIssueError struct {
	Key  string
	Step string
	Err  error
}

func (e *PartialIssueError) Error() string {
	return fmt.Sprintf("license %s stored, %s step failed: %v", MaskKey(e.Key), e.Step, e.Err)
}

func (e *PartialIssueError) Unwrap() []error {
	return []error{ErrPartialIssue, e.Err}
}
