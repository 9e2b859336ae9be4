package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type pkgHarness struct {
	t   *testing.T
	dir string
}

func newPkg(t *testing.T) *pkgHarness {
	t.Helper()
	return &pkgHarness{t: t, dir: t.TempDir()}
}

func (p *pkgHarness) write(rel, content string) string {
	p.t.Helper()
	path := filepath.Join(p.dir, rel)
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(p.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (p *pkgHarness) out(rel string) string {
	return filepath.Join(p.dir, rel)
}

func (p *pkgHarness) read(rel string) string {
	p.t.Helper()
	b, err := os.ReadFile(filepath.Join(p.dir, rel))
	require.NoError(p.t, err)
	return string(b)
}

const minimalJSON = `{
  "package": "p",
  "imports": { "di": "example.com/proj/di" },
  "bindings": [
    {
      "interface": "Service",
      "constructor": "NewService",
      "implType": "ServiceImpl",
      "inject": [
        { "name": "Repo", "setter": "SetRepo" },
        { "name": "Clock", "setter": "SetClock" }
      ]
    },
    { "interface": "Clock", "constructor": "NewClock" },
    { "interface": "Repo", "constructor": "NewRepo", "fallible": true }
  ]
}`

const minimalYAML = `package: p
func: Wire
imports:
  di: example.com/proj/di
bindings:
  - interface: Cache
    constructor: NewCache
    implType: CacheImpl
    inject:
      - name: Store
        setter: SetStore
        fallible: true
  - interface: Store
    constructor: NewStore
`
