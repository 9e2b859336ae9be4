package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

// generate renders specPath into outPath. With check set nothing is written;
// instead an error is returned when outPath differs from what would be
// generated.
func generate(specPath, outPath string, check bool) error {
	spec, raw, err := loadSpec(specPath)
	if err != nil {
		return err
	}
	applyDefaults(&spec)
	if err := validateSpec(&spec); err != nil {
		return err
	}

	src, err := render(spec, filepath.ToSlash(specPath), sha256Hex(raw))
	if err != nil {
		return err
	}

	if check {
		cur, err := os.ReadFile(outPath)
		if err != nil {
			return err
		}
		if !bytes.Equal(cur, src) {
			return specErrorf(filepath.ToSlash(outPath) + " is stale; run go generate")
		}
		return nil
	}
	return os.WriteFile(outPath, src, 0o644)
}

// render executes the template and gofmts the result. Bindings are sorted by
// interface; inject order is kept because it is the wiring order.
func render(spec Spec, specPath, specHash string) ([]byte, error) {
	sort.SliceStable(spec.Bindings, func(i, j int) bool {
		return spec.Bindings[i].Interface < spec.Bindings[j].Interface
	})

	var sb strings.Builder
	data := map[string]any{
		"Spec":     spec,
		"SpecPath": specPath,
		"SpecHash": specHash,
	}
	if err := tableTpl.Execute(&sb, data); err != nil {
		return nil, err
	}

	out, err := format.Source([]byte(sb.String()))
	if err != nil {
		return nil, specErrorf("gofmt/format failed: " + err.Error())
	}
	return out, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

var tableTpl = template.Must(template.New("table").Funcs(template.FuncMap{"quote": strconv.Quote}).Parse(`// Code generated by injectgen; DO NOT EDIT.
// Spec: {{.SpecPath}}
// Spec-SHA256: {{.SpecHash}}

package {{.Spec.Package}}

import (
	di "{{.Spec.Imports.DI}}"
)

// {{.Spec.Func}} returns the binding table of package {{.Spec.Package}}.
func {{.Spec.Func}}() (*di.Table, error) {
	return di.NewTable(
{{- range .Spec.Bindings }}
{{- $impl := .ImplType }}
		di.Bind[{{ .Interface }}](di.{{ if .Fallible }}ProvideE{{ else }}Provide{{ end }}({{ .Constructor }}
{{- range .Inject }},
			di.{{ if .Fallible }}SetterE{{ else }}Setter{{ end }}({{ quote .Name }}, (*{{ $impl }}).{{ .Setter }})
{{- end }}
{{- if .Inject }},
		{{ end }})),
{{- end }}
	)
}
`))
