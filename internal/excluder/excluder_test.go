package excluder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsExcluded(t *testing.T) {
	ex, err := New([]string{"test_*", "*_calibration", "{tmp,scratch}"})
	require.NoError(t, err)

	cases := map[string]bool{
		"test_run":              true,
		"202403_calibration":    true,
		"tmp":                   true,
		"scratch":               true,
		"202403_brain_slice_01": false,
		"mytest_run":            false,
	}
	for name, want := range cases {
		assert.Equal(t, want, ex.IsExcluded(name), name)
	}
}

func TestNoPatterns(t *testing.T) {
	ex, err := New(nil)
	require.NoError(t, err)
	assert.False(t, ex.IsExcluded("anything"))

	var none *Excluder
	assert.False(t, none.IsExcluded("anything"))
}

func TestBadPattern(t *testing.T) {
	_, err := New([]string{"[unclosed"})
	assert.Error(t, err)
}
