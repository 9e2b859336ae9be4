package di_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/wired/di"
)

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	var n counts
	require.NoError(t, scenarioTable(&n).Validate())
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	var n counts
	tbl := di.MustTable(
		parserBinding(&n),  // Reader unbound
		serviceBinding(&n), // Reader unbound again
		di.Bind[A](di.Provide(func() *AImpl { return &AImpl{} })),
		di.Bind[B](di.Provide(func() *RogueB { return &RogueB{} })),
	)

	err := tbl.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, di.ErrUnboundInterface)
	assert.ErrorIs(t, err, di.ErrNotRegistered)
	assert.NotErrorIs(t, err, di.ErrDependencyCycle)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	require.Len(t, joined.Unwrap(), 3)

	var nr *di.NotRegisteredError
	require.True(t, errors.As(err, &nr))
	assert.Equal(t, di.TypeOf[B](), nr.Interface)

	assert.Contains(t, err.Error(), "di: *di_test.ParserImpl.Reader: di: no binding for di_test.Reader")
	assert.Contains(t, err.Error(), "di: *di_test.ServiceImpl.Reader: di: no binding for di_test.Reader")
}

func TestValidate_Cycle(t *testing.T) {
	t.Parallel()

	err := cycleTable().Validate()
	require.ErrorIs(t, err, di.ErrDependencyCycle)

	var ce *di.CycleError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []reflect.Type{di.TypeOf[A](), di.TypeOf[B](), di.TypeOf[A]()}, ce.Path)
	assert.EqualError(t, ce, "di: dependency cycle: di_test.A -> di_test.B -> di_test.A")
}

func TestValidate_SelfCycle(t *testing.T) {
	t.Parallel()

	tbl := di.MustTable(di.Bind[Reader](di.Provide(func() *SelfReader { return &SelfReader{} },
		di.Setter("Self", (*SelfReader).SetSelf),
	)))

	var ce *di.CycleError
	require.True(t, errors.As(tbl.Validate(), &ce))
	assert.Equal(t, []reflect.Type{di.TypeOf[Reader](), di.TypeOf[Reader]()}, ce.Path)
}

func TestOrder_DependenciesFirst(t *testing.T) {
	t.Parallel()

	var n counts
	order, err := scenarioTable(&n).Order()
	require.NoError(t, err)
	assert.Equal(t, []reflect.Type{di.TypeOf[Reader](), di.TypeOf[Parser](), di.TypeOf[Service]()}, order)
}

func TestOrder_SkipsUnbound(t *testing.T) {
	t.Parallel()

	var n counts
	order, err := di.MustTable(serviceBinding(&n), parserBinding(&n)).Order()
	require.NoError(t, err)
	assert.Equal(t, []reflect.Type{di.TypeOf[Parser](), di.TypeOf[Service]()}, order)
}

func TestOrder_Cycle(t *testing.T) {
	t.Parallel()

	order, err := cycleTable().Order()
	require.ErrorIs(t, err, di.ErrDependencyCycle)
	assert.Nil(t, order)
}

// RogueB implements B without the component marker.
type RogueB struct{}

func (*RogueB) A() A { return nil }

// SelfReader depends on its own interface.
type SelfReader struct {
	di.Managed
	self Reader
}

func (s *SelfReader) SetSelf(r Reader) { s.self = r }
func (s *SelfReader) Read() string     { return "self" }
