package contracts

import (
	"errors"
	"fmt"
	"strings"
)

// ErrArtifactMissing marks a schema/model/imputer/scaler artifact that is
// absent at startup. Fatal to the service; the message must name the
// artifact, not dump a stack trace.
var ErrArtifactMissing = errors.New("artifact missing")

// SchemaLoadError reports an absent or malformed schema artifact.
type SchemaLoadError struct {
	Path string
	Err  error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("load feature schema %s: %v", e.Path, e.Err)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError reports a vector whose names do not match the schema.
// Structurally impossible after a correct alignment pass; kept as an
// internal consistency check.
type SchemaMismatchError struct {
	Missing []string
	Extra   []string
}

func (e *SchemaMismatchError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %v", e.Missing))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("extra %v", e.Extra))
	}
	if len(parts) == 0 {
		parts = append(parts, "order mismatch")
	}
	return "feature vector does not match schema: " + strings.Join(parts, ", ")
}

// PredictionError reports a classifier invocation failure (e.g. NaN/Inf
// surviving preprocessing). Surfaced as a request-level failure with no
// partial result.
type PredictionError struct {
	Reason string
	Err    error
}

func (e *PredictionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("prediction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("prediction failed: %s", e.Reason)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
