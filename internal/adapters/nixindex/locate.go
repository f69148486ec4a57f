package nixindex

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"
)

// locateQuery shells out to nix-locate and parses its tabular output into
// hits. Lines naming non-top-level attributes, which nix-locate wraps in
// parentheses, are dropped.
func locateQuery(ctx context.Context, name string) ([]Hit, error) {
	cmd := exec.CommandContext(ctx, "nix-locate",
		"--top-level", "--at-root", "--whole-name", "/lib/"+name)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stdout.Len() == 0 && stderr.Len() == 0 {
			// nix-locate exits non-zero on zero matches.
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "nix-locate failed"),
			"stderr", strings.TrimSpace(stderr.String()))
	}

	return parseLocateOutput(stdout.Bytes()), nil
}

// parseLocateOutput reads nix-locate's whitespace-aligned columns. The first
// field is the attribute, the last is the store path; size and type in
// between are ignored.
func parseLocateOutput(out []byte) []Hit {
	var hits []Hit
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "(") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		hits = append(hits, Hit{
			Attr: fields[0],
			Path: fields[len(fields)-1],
		})
	}
	return hits
}
