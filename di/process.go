package di

import (
	"sync"
	"sync/atomic"
)

var (
	installMu sync.Mutex
	installed atomic.Pointer[Container]
)

// Install creates the process-wide container. It succeeds once; every later
// call returns the existing container together with ErrAlreadyInstalled.
// The container lives until the process exits and is never reset.
//
// Prefer passing the returned *Container to the code that needs it. Default
// exists for composition roots that cannot receive it explicitly.
func Install(tbl *Table, opts ...Option) (*Container, error) {
	installMu.Lock()
	defer installMu.Unlock()

	if c := installed.Load(); c != nil {
		return c, ErrAlreadyInstalled
	}
	c, err := New(tbl, opts...)
	if err != nil {
		return nil, err
	}
	installed.Store(c)
	return c, nil
}

// Default returns the process-wide container, or nil before Install.
// Resolving through that nil container returns ErrNilContainer.
func Default() *Container { return installed.Load() }
