// Package escalate implements the tool-provisioning gate: when the external
// inspection tools are missing, the process re-runs itself once inside a
// nix-shell that provides them.
package escalate

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/deb2nix/internal/core/domain"
	"go.trai.ch/deb2nix/internal/core/ports"
	"go.trai.ch/zerr"
)

// envInContext marks a process already re-invoked inside a provisioned
// context. Its presence with tools still missing means provisioning failed
// and retrying would loop.
const envInContext = "DEB2NIX_IN_NIX_SHELL"

// requiredTools maps each external binary the pipeline shells out to onto
// the nixpkgs attribute that provides it.
var requiredTools = []struct {
	binary string
	attr   string
}{
	{binary: "dpkg-deb", attr: "dpkg"},
	{binary: "nix-locate", attr: "nix-index"},
	{binary: "nix-prefetch-url", attr: "nix"},
}

// ReexecFunc re-invokes the current process inside a shell providing attrs
// and returns the child's exit code.
type ReexecFunc func(ctx context.Context, attrs []string) (int, error)

// Controller implements ports.Escalator.
type Controller struct {
	logger   ports.Logger
	lookPath func(string) (string, error)
	getenv   func(string) string
	reexec   ReexecFunc
}

// NewController creates a Controller probing the real environment.
func NewController(logger ports.Logger) *Controller {
	c := &Controller{
		logger:   logger,
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
	}
	c.reexec = c.nixShellReexec
	return c
}

// SetProbes replaces the environment probes. Used by tests.
func (c *Controller) SetProbes(lookPath func(string) (string, error), getenv func(string) string, reexec ReexecFunc) {
	if lookPath != nil {
		c.lookPath = lookPath
	}
	if getenv != nil {
		c.getenv = getenv
	}
	if reexec != nil {
		c.reexec = reexec
	}
}

// Ensure walks the escalation state machine to a terminal state.
func (c *Controller) Ensure(ctx context.Context) (domain.EscalationResult, error) {
	missing := c.missingTools()
	if len(missing) == 0 {
		if c.getenv(envInContext) != "" {
			c.logger.Info("running inside provisioned context; all tools present")
		}
		return domain.EscalationResult{State: domain.EscalationReady}, nil
	}

	names := make([]string, len(missing))
	attrs := make([]string, len(missing))
	for i, tool := range missing {
		names[i] = tool.binary
		attrs[i] = tool.attr
	}

	if c.getenv(envInContext) != "" {
		return domain.EscalationResult{State: domain.EscalationFailed},
			zerr.With(domain.ErrEscalationLoop, "missing_tools", strings.Join(names, ", "))
	}

	if _, err := c.lookPath("nix-shell"); err != nil {
		return domain.EscalationResult{State: domain.EscalationFailed},
			zerr.With(
				zerr.Wrap(domain.ErrToolUnprovisionable, "nix-shell not found"),
				"missing_tools", strings.Join(names, ", "))
	}

	c.logger.Info("missing tools [" + strings.Join(names, ", ") + "]; re-running inside nix-shell")
	code, err := c.reexec(ctx, attrs)
	if err != nil {
		return domain.EscalationResult{State: domain.EscalationFailed},
			zerr.Wrap(err, "failed to provision tool context")
	}

	return domain.EscalationResult{
		State:    domain.EscalationReadyInContext,
		ExitCode: code,
	}, nil
}

func (c *Controller) missingTools() []struct{ binary, attr string } {
	var missing []struct{ binary, attr string }
	for _, tool := range requiredTools {
		if _, err := c.lookPath(tool.binary); err != nil {
			missing = append(missing, struct{ binary, attr string }{tool.binary, tool.attr})
		}
	}
	return missing
}

// nixShellReexec runs the current invocation again under nix-shell -p with
// the loop sentinel set, forwarding the standard streams and exit code.
func (c *Controller) nixShellReexec(ctx context.Context, attrs []string) (int, error) {
	self, err := os.Executable()
	if err != nil {
		return 0, zerr.Wrap(err, "failed to locate own executable")
	}

	parts := make([]string, 0, len(os.Args))
	parts = append(parts, shellQuote(self))
	for _, arg := range os.Args[1:] {
		parts = append(parts, shellQuote(arg))
	}

	args := []string{}
	for _, attr := range attrs {
		args = append(args, "-p", attr)
	}
	args = append(args, "--run", strings.Join(parts, " "))

	cmd := exec.CommandContext(ctx, "nix-shell", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), envInContext+"=1")

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, zerr.Wrap(err, "nix-shell invocation failed")
	}
	return 0, nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
