package script

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func TestRunSeededGlobals(t *testing.T) {
	s := NewSandbox(0)
	defer s.Close()

	root := s.NewTable()
	s.SetGlobal("krait", root)

	require.NoError(t, s.Run(`krait.answer = 42`))

	v := root.RawGetString("answer")
	n, ok := AsInt(v)
	require.True(t, ok)
	assert.Equal(t, int64(42), n)
}

func TestRunHasNoStandardLibraries(t *testing.T) {
	s := NewSandbox(0)
	defer s.Close()

	// os, io and even print must be out of reach.
	err := s.Run(`os.exit(1)`)
	require.Error(t, err)

	err = s.Run(`print("hello")`)
	require.Error(t, err)
}

func TestRunCutsOffRunawayScript(t *testing.T) {
	s := NewSandbox(50 * time.Millisecond)
	defer s.Close()

	err := s.Run(`while true do end`)
	require.ErrorIs(t, err, ErrExecLimit)
}

func TestRunSyntaxError(t *testing.T) {
	s := NewSandbox(0)
	defer s.Close()

	err := s.Run(`this is not lua`)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExecLimit)
}

func TestAsStringCoercions(t *testing.T) {
	got, ok := AsString(lua.LString("hello"))
	require.True(t, ok)
	assert.Equal(t, "hello", got)

	got, ok = AsString(lua.LNumber(3))
	require.True(t, ok)
	assert.Equal(t, "3", got)

	_, ok = AsString(lua.LBool(true))
	assert.False(t, ok)
}

func TestAsIntCoercions(t *testing.T) {
	got, ok := AsInt(lua.LNumber(1700000000))
	require.True(t, ok)
	assert.Equal(t, int64(1700000000), got)

	got, ok = AsInt(lua.LString("123"))
	require.True(t, ok)
	assert.Equal(t, int64(123), got)

	_, ok = AsInt(lua.LString("not a number"))
	assert.False(t, ok)
}

func TestUnrepresentable(t *testing.T) {
	s := NewSandbox(0)
	defer s.Close()

	fn := s.L.NewFunction(func(l *lua.LState) int { return 0 })
	assert.True(t, Unrepresentable(fn))
	assert.False(t, Unrepresentable(lua.LString("x")))
	assert.False(t, Unrepresentable(s.NewTable()))
	assert.False(t, Unrepresentable(lua.LNil))
}
