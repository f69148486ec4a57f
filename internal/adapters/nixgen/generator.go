// Package nixgen renders resolution manifests into Nix package expressions.
package nixgen

import (
	_ "embed"
	"strings"
	"text/template"

	"go.trai.ch/deb2nix/internal/core/domain"
	"go.trai.ch/zerr"
)

//go:embed deb.nix.tmpl
var derivationTmpl string

// Generator implements ports.ExpressionGenerator using text/template.
type Generator struct {
	tmpl *template.Template
}

// NewGenerator parses the embedded derivation template.
func NewGenerator() (*Generator, error) {
	tmpl, err := template.New("deb.nix").Parse(derivationTmpl)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to parse derivation template")
	}
	return &Generator{tmpl: tmpl}, nil
}

type templateData struct {
	Name        string
	Version     string
	System      string
	Description string
	URL         string
	SHA256      string
	LocalPath   string
	BuildInputs []string
	Unresolved  []domain.ResolvedDependency
}

// Generate renders the expression. Resolved target references become
// buildInputs; unresolved sonames are kept visible as comments so the gap is
// explicit in the output, not silently dropped.
func (g *Generator) Generate(meta domain.PackageMeta, fetch domain.FetchInfo, manifest *domain.ResolutionManifest) (string, error) {
	data := templateData{
		Name:        meta.Name,
		Version:     meta.Version,
		System:      meta.System(),
		Description: escapeNixString(meta.Description),
		URL:         fetch.URL,
		SHA256:      fetch.SHA256,
		LocalPath:   fetch.LocalPath,
		BuildInputs: manifest.TargetRefs(),
		Unresolved:  manifest.Unresolved(),
	}

	var out strings.Builder
	if err := g.tmpl.Execute(&out, data); err != nil {
		return "", zerr.Wrap(err, "failed to render derivation")
	}
	return out.String(), nil
}

// escapeNixString protects the characters Nix treats specially inside double
// quotes.
func escapeNixString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "${", `\${`)
	return s
}
