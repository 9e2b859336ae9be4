package di_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/wired/di"
)

// The process-wide container can be installed once per test binary, so every
// Install/Default assertion lives in this one test.
func TestInstallAndDefault(t *testing.T) {
	require.Nil(t, di.Default())

	_, err := di.Install(nil)
	require.ErrorIs(t, err, di.ErrNilTable)
	require.Nil(t, di.Default(), "a failed install leaves nothing behind")

	var n counts
	c, err := di.Install(scenarioTable(&n))
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Same(t, c, di.Default())

	var other counts
	again, err := di.Install(scenarioTable(&other))
	require.ErrorIs(t, err, di.ErrAlreadyInstalled)
	assert.Same(t, c, again)
	assert.Same(t, c, di.Default())

	svc := di.MustGet[Service](di.Default())
	assert.Same(t, svc, di.MustGet[Service](c))
	assert.EqualValues(t, 1, n.service.Load())
	assert.EqualValues(t, 0, other.service.Load())
}
