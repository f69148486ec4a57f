package domain

import "fmt"

// EscalationState is a state of the escalation controller's state machine.
type EscalationState string

const (
	// EscalationChecking probes the execution context for required tools.
	EscalationChecking EscalationState = "CHECKING"
	// EscalationReady means all tools are present; proceed directly.
	EscalationReady EscalationState = "READY"
	// EscalationEscalating means a provisioned context is being constructed.
	EscalationEscalating EscalationState = "ESCALATING"
	// EscalationReadyInContext is terminal: the process re-ran inside the
	// provisioned context and its outcome must be forwarded verbatim.
	EscalationReadyInContext EscalationState = "READY_IN_CONTEXT"
	// EscalationFailed is terminal: a tool could not be provisioned.
	EscalationFailed EscalationState = "FAILED"
)

// EscalationResult is the terminal outcome of the escalation gate.
type EscalationResult struct {
	State EscalationState

	// ExitCode is the re-invoked process's exit status. Only meaningful
	// when State is EscalationReadyInContext.
	ExitCode int
}

// EscalatedExitError carries the exit status of a re-invoked process so the
// outer process can terminate with the same code.
type EscalatedExitError struct {
	Code int
}

func (e *EscalatedExitError) Error() string {
	return fmt.Sprintf("escalated run exited with code %d", e.Code)
}
