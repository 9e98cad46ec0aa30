// Package script hosts the sandboxed Lua interpreter used for every
// script-syntax file krait reads: the repository manifest and per-package
// descriptors. Scripts are pure data producers; the sandbox opens no Lua
// standard libraries, so they cannot touch the filesystem, the network,
// or the host process. The only way for a script to communicate is to
// assign into the globals seeded by the caller.
package script

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
)

// DefaultExecTimeout caps a single script execution. Manifests are
// straight-line assignments, so anything long-running is either broken
// or hostile.
const DefaultExecTimeout = 5 * time.Second

// ErrExecLimit reports a script that was cut off for exceeding its
// execution time budget.
var ErrExecLimit = errors.New("script execution exceeded limit")

// Sandbox is a single-use Lua interpreter. It is not safe for
// concurrent use; one Sandbox belongs to one parse call.
type Sandbox struct {
	L       *lua.LState
	timeout time.Duration
}

// NewSandbox returns a fresh interpreter with no standard libraries
// loaded. A timeout of zero applies DefaultExecTimeout.
func NewSandbox(timeout time.Duration) *Sandbox {
	if timeout == 0 {
		timeout = DefaultExecTimeout
	}
	return &Sandbox{
		L:       lua.NewState(lua.Options{SkipOpenLibs: true}),
		timeout: timeout,
	}
}

// Close releases the interpreter.
func (s *Sandbox) Close() {
	s.L.Close()
}

// NewTable returns a table owned by this interpreter.
func (s *Sandbox) NewTable() *lua.LTable {
	return s.L.NewTable()
}

// SetGlobal seeds a global visible to the script.
func (s *Sandbox) SetGlobal(name string, v lua.LValue) {
	s.L.SetGlobal(name, v)
}

// Global reads a global after the script has run.
func (s *Sandbox) Global(name string) lua.LValue {
	return s.L.GetGlobal(name)
}

// Run executes src under the configured wall-clock budget. A script cut
// off by the budget fails with ErrExecLimit; any other interpreter
// failure is returned as-is.
func (s *Sandbox) Run(src string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)

	if err := s.L.DoString(src); err != nil {
		if ctx.Err() != nil {
			return ErrExecLimit
		}
		return err
	}
	return nil
}

// Unrepresentable reports a Lua value with no counterpart in a plain
// data schema (functions, userdata, coroutines, channels). Callers skip
// these rather than fail, mirroring how loosely typed manifests have
// always been read.
func Unrepresentable(v lua.LValue) bool {
	switch v.Type() {
	case lua.LTFunction, lua.LTUserData, lua.LTThread, lua.LTChannel:
		return true
	}
	return false
}

// AsString coerces v into a string. Numbers convert the way Lua's own
// string coercion does; anything else reports false.
func AsString(v lua.LValue) (string, bool) {
	switch val := v.(type) {
	case lua.LString:
		return string(val), true
	case lua.LNumber:
		return luaNumberString(float64(val)), true
	default:
		return "", false
	}
}

// AsInt coerces v into an integer. Numeric strings are accepted, again
// following Lua's coercion rules.
func AsInt(v lua.LValue) (int64, bool) {
	switch val := v.(type) {
	case lua.LNumber:
		return int64(val), true
	case lua.LString:
		n, err := strconv.ParseInt(string(val), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func luaNumberString(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', 14, 64)
}
