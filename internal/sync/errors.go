package sync

import (
	"errors"
	"fmt"
)

// TransportError wraps a failure talking to the remote store. It fails the
// affected file only; remaining files in the batch continue.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ConflictError reports a blocked transfer for one file.
type ConflictError struct {
	Report ConflictReport
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s: %s", e.Report.Path, e.Report.Message)
}

// ConfigurationError aborts a whole container-level operation before any
// transfer happens (missing credentials, missing sidecar where required).
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// PolicyError rejects an operation before the engine is invoked, e.g. a push
// into a read-only reference root.
type PolicyError struct {
	Path   string
	Reason string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("policy: %s: %s", e.Path, e.Reason)
}

func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func IsPolicyError(err error) bool {
	var pe *PolicyError
	return errors.As(err, &pe)
}
