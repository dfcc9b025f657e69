package panelmethod

import (
	"errors"
	"fmt"
)

// PreconditionError signals a dependent operation was invoked before its
// input was supplied. It is raised before any numerical work and is always
// recoverable: set the missing input and retry.
type PreconditionError struct {
	Missing string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s not set", e.Missing)
}

var (
	// ErrMeshNotSet - no surface mesh supplied before a solve or
	// reference-area computation
	ErrMeshNotSet = &PreconditionError{Missing: "mesh"}
	// ErrFlowNotSet - no flow conditions supplied before a solve
	ErrFlowNotSet = &PreconditionError{Missing: "flow conditions"}

	// ErrIllConditioned - the influence system factorized but its solution
	// does not satisfy the boundary conditions to tolerance, typically from
	// near-coincident or zero-area panels
	ErrIllConditioned = errors.New("ill-conditioned panel geometry: boundary-condition residual exceeds tolerance")
)

// ComputationError wraps any failure inside the panel-method pipeline. The
// invocation that produced it yielded no usable partial result; retrying only
// makes sense after changing the mesh or flow conditions.
type ComputationError struct {
	Stage string
	Err   error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("force calculation failed during %s: %s", e.Stage, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

func computationErr(stage string, err error) error {
	return &ComputationError{Stage: stage, Err: err}
}
