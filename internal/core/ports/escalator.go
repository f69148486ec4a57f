package ports

import (
	"context"

	"go.trai.ch/deb2nix/internal/core/domain"
)

// Escalator guarantees the external inspection tools are present, re-running
// the process inside a provisioned context when they are not.
//
//go:generate go run go.uber.org/mock/mockgen -source=escalator.go -destination=mocks/mock_escalator.go -package=mocks
type Escalator interface {
	// Ensure probes for the required tools. When all are present it returns
	// EscalationReady and the pipeline proceeds in-process. When any are
	// missing it provisions them and re-invokes the current process exactly
	// once, returning EscalationReadyInContext with the child's exit code.
	//
	// Re-entrant escalation yields domain.ErrEscalationLoop; a tool that
	// cannot be provisioned yields domain.ErrToolUnprovisionable.
	Ensure(ctx context.Context) (domain.EscalationResult, error)
}
