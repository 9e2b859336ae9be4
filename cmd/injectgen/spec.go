package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

const defaultDIImport = "github.com/sghaida/wired/di"

type Imports struct {
	DI string `json:"di" yaml:"di"`
}

type InjectSpec struct {
	// Name is the dependency name reported in errors, usually the field name.
	Name string `json:"name" yaml:"name"`

	// Setter is a method of *ImplType taking the dependency interface.
	Setter string `json:"setter" yaml:"setter"`

	// Fallible selects di.SetterE: the setter returns an error.
	Fallible bool `json:"fallible" yaml:"fallible"`
}

type BindingSpec struct {
	Interface   string `json:"interface" yaml:"interface"`
	Constructor string `json:"constructor" yaml:"constructor"`

	// ImplType is required when Inject is non-empty. Setters are emitted as
	// method expressions on *ImplType.
	ImplType string `json:"implType" yaml:"implType"`

	// Fallible selects di.ProvideE: the constructor returns (T, error).
	Fallible bool `json:"fallible" yaml:"fallible"`

	Inject []InjectSpec `json:"inject" yaml:"inject"`
}

type Spec struct {
	Package  string        `json:"package" yaml:"package"`
	Func     string        `json:"func" yaml:"func"`
	Imports  Imports       `json:"imports" yaml:"imports"`
	Bindings []BindingSpec `json:"bindings" yaml:"bindings"`
}

type specError struct{ msg string }

func (e *specError) Error() string { return "injectgen: " + e.msg }

func specErrorf(msg string) error { return &specError{msg: msg} }

// loadSpec reads a JSON or YAML spec. Unknown fields are rejected in both.
func loadSpec(path string) (Spec, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, nil, err
	}

	var s Spec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		err = dec.Decode(&s)
	default:
		return Spec{}, nil, specErrorf("unsupported spec extension " + filepath.Ext(path) + " (want .json, .yaml or .yml)")
	}
	if err != nil {
		return Spec{}, nil, errors.Join(specErrorf("cannot decode "+filepath.ToSlash(path)), err)
	}
	return s, raw, nil
}

func applyDefaults(s *Spec) {
	if s == nil {
		return
	}
	if strings.TrimSpace(s.Func) == "" {
		s.Func = "Bindings"
	}
	if strings.TrimSpace(s.Imports.DI) == "" {
		s.Imports.DI = inferDIImport()
	}
}

func validateSpec(s *Spec) error {
	if strings.TrimSpace(s.Package) == "" {
		return specErrorf("spec missing: package")
	}
	if !isIdent(s.Func) {
		return specErrorf("func must be a Go identifier, got " + strconv.Quote(s.Func))
	}
	if len(s.Bindings) == 0 {
		return specErrorf("spec bindings must be non-empty")
	}

	seen := map[string]bool{}
	for _, b := range s.Bindings {
		if b.Interface == "" || b.Constructor == "" {
			return specErrorf("binding must have interface/constructor")
		}
		if seen[b.Interface] {
			return specErrorf("interface " + strconv.Quote(b.Interface) + " bound twice")
		}
		seen[b.Interface] = true

		if len(b.Inject) > 0 && b.ImplType == "" {
			return specErrorf("binding " + strconv.Quote(b.Interface) + " has inject but no implType")
		}
		names := map[string]bool{}
		for _, in := range b.Inject {
			if in.Name == "" || in.Setter == "" {
				return specErrorf("inject of " + strconv.Quote(b.Interface) + " must have name/setter")
			}
			if !isIdent(in.Name) || !isIdent(in.Setter) {
				return specErrorf("inject " + strconv.Quote(in.Name) + " of " + strconv.Quote(b.Interface) + " needs identifier name/setter")
			}
			if names[in.Name] {
				return specErrorf("inject " + strconv.Quote(in.Name) + " of " + strconv.Quote(b.Interface) + " declared twice")
			}
			names[in.Name] = true
		}
	}
	return nil
}

// inferDIImport computes the import path of the di runtime from the go.mod of
// the module that contains this generator.
func inferDIImport() string {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return defaultDIImport
	}
	modRoot, modPath, err := findModule(filepath.Dir(thisFile))
	if err != nil || !dirExists(filepath.Join(modRoot, "di")) {
		return defaultDIImport
	}
	return modPath + "/di"
}

// findModule returns the directory of the nearest go.mod at or above dir and
// the module path it declares.
func findModule(dir string) (string, string, error) {
	for d := dir; ; {
		data, err := os.ReadFile(filepath.Join(d, "go.mod"))
		switch {
		case err == nil:
			if mod := modfile.ModulePath(data); mod != "" {
				return d, mod, nil
			}
			return "", "", specErrorf("go.mod in " + filepath.ToSlash(d) + " declares no module path")
		case !errors.Is(err, fs.ErrNotExist):
			return "", "", err
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", "", specErrorf("no go.mod at or above " + filepath.ToSlash(dir))
		}
		d = parent
	}
}

func dirExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

