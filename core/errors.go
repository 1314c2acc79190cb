package core

import (
	"errors"
	"fmt"
	"strings"
)

// kindError is a sentinel error that may belong to a broader kind, so errors.Is matches both
type kindError struct {
	msg    string
	parent error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.parent }

var (
	ErrNotFound = errors.New("not found")
	// ErrConstraintUnsatisfiable is returned when a project has versions, but none match the descriptor.
	// It is also an ErrNotFound.
	ErrConstraintUnsatisfiable error = &kindError{"no version satisfies the constraints", ErrNotFound}
	ErrUnsupportedLoader             = errors.New("loader is not supported")
	ErrUnknownLoader                 = errors.New("unknown loader")
	ErrUnknownChannel                = errors.New("unknown version type")
	ErrHashMismatch                  = errors.New("hash mismatch")
	ErrIO                            = errors.New("i/o error")
	ErrCorruptState                  = errors.New("corrupt pack file")
	ErrIncompatibleFormat            = errors.New("incompatible pack format")
	ErrUnusableVersion               = errors.New("version doesn't have any files attached")
	ErrAlreadyExists                 = errors.New("already exists")
	ErrInvalidPackName               = errors.New("invalid pack name")
	ErrSessionClosed                 = errors.New("modify session is closed")
	ErrSessionBusy                   = errors.New("modify session is busy")
	ErrRenameIncomplete              = errors.New("pack was removed but could not be saved under its new name")
)

// ItemFailure records why a single item of a bulk operation failed
type ItemFailure struct {
	ID  string
	Err error
}

func (f ItemFailure) Error() string {
	return f.ID + ": " + f.Err.Error()
}

func (f ItemFailure) Unwrap() error {
	return f.Err
}

// PartialFailure is returned by bulk operations when some items failed; the others were processed.
type PartialFailure struct {
	Failures []ItemFailure
}

func (p *PartialFailure) Error() string {
	lines := make([]string, 0, len(p.Failures))
	for _, f := range p.Failures {
		lines = append(lines, f.Error())
	}
	return fmt.Sprintf("%d item(s) failed:\n\t%s", len(p.Failures), strings.Join(lines, "\n\t"))
}

func (p *PartialFailure) Unwrap() []error {
	errs := make([]error, 0, len(p.Failures))
	for _, f := range p.Failures {
		errs = append(errs, f)
	}
	return errs
}

// IDs returns the identifiers of the failed items, in the order they failed
func (p *PartialFailure) IDs() []string {
	ids := make([]string, 0, len(p.Failures))
	for _, f := range p.Failures {
		ids = append(ids, f.ID)
	}
	return ids
}

// add records a failure; the receiver may be nil, in which case a new PartialFailure is returned
func (p *PartialFailure) add(id string, err error) *PartialFailure {
	if p == nil {
		p = &PartialFailure{}
	}
	p.Failures = append(p.Failures, ItemFailure{ID: id, Err: err})
	return p
}

// orNil avoids returning a typed nil pointer inside a non-nil error interface
func (p *PartialFailure) orNil() error {
	if p == nil || len(p.Failures) == 0 {
		return nil
	}
	return p
}

// absorb records err for id, flattening a nested PartialFailure into its items
func (p *PartialFailure) absorb(id string, err error) *PartialFailure {
	var nested *PartialFailure
	if errors.As(err, &nested) {
		for _, f := range nested.Failures {
			p = p.add(f.ID, f.Err)
		}
		return p
	}
	return p.add(id, err)
}
