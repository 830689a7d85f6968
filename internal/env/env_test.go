package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")

	assert.Equal(t, "value", GetString("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", GetString("TEST_STRING_MISSING", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "forty-two")

	assert.Equal(t, 42, GetInt("TEST_INT", 7))
	assert.Equal(t, 7, GetInt("TEST_INT_BAD", 7))
	assert.Equal(t, 7, GetInt("TEST_INT_MISSING", 7))
}

func TestGetBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BOOL_BAD", "yep")

	assert.True(t, GetBool("TEST_BOOL", false))
	assert.False(t, GetBool("TEST_BOOL_BAD", false))
	assert.True(t, GetBool("TEST_BOOL_MISSING", true))
}

func TestGetFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "1.5")

	assert.Equal(t, 1.5, GetFloat("TEST_FLOAT", 2.0))
	assert.Equal(t, 2.0, GetFloat("TEST_FLOAT_MISSING", 2.0))
}

func TestGetFloatSlice(t *testing.T) {
	t.Setenv("TEST_SLICE", "10, 15,20")
	t.Setenv("TEST_SLICE_BAD", "10,abc")
	t.Setenv("TEST_SLICE_EMPTY", "")

	fallback := []float64{5}
	assert.Equal(t, []float64{10, 15, 20}, GetFloatSlice("TEST_SLICE", fallback))
	assert.Equal(t, fallback, GetFloatSlice("TEST_SLICE_BAD", fallback))
	assert.Equal(t, fallback, GetFloatSlice("TEST_SLICE_EMPTY", fallback))
	assert.Equal(t, fallback, GetFloatSlice("TEST_SLICE_MISSING", fallback))
}
