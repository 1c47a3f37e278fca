package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_AddKeepsDuplicates(t *testing.T) {
	// Given: several violations on the same key
	params := NewParams()
	params.Add("propertyPath", "name")
	params.Add("propertyPath", "email")
	params.Add("propertyPath", "age")

	// Then: all entries survive in insertion order
	assert.Equal(t, 3, params.Len())
	assert.Equal(t, []any{"name", "email", "age"}, params.GetAll("propertyPath"))
}

func TestParams_GetReturnsFirst(t *testing.T) {
	params := NewParams()
	params.Add("key", "first")
	params.Add("key", "second")

	value, ok := params.Get("key")
	require.True(t, ok)
	assert.Equal(t, "first", value)
}

func TestParams_GetMissing(t *testing.T) {
	params := NewParams()

	value, ok := params.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestParams_SetReplacesFirstOnly(t *testing.T) {
	params := NewParams()
	params.Add("key", "first")
	params.Add("key", "second")

	params.Set("key", "replaced")

	assert.Equal(t, []any{"replaced", "second"}, params.GetAll("key"))
}

func TestParams_SetAppendsWhenMissing(t *testing.T) {
	params := NewParams()
	params.Add("a", 1)

	params.Set("b", 2)

	assert.Equal(t, 2, params.Len())
	value, ok := params.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, value)
}

func TestParams_EntriesReturnsCopy(t *testing.T) {
	params := NewParams()
	params.Add("a", 1)

	entries := params.Entries()
	entries[0].Value = 99

	value, _ := params.Get("a")
	assert.Equal(t, 1, value)
}

func TestParams_NilSafety(t *testing.T) {
	var params *Params

	assert.Equal(t, 0, params.Len())
	assert.Nil(t, params.Entries())
	assert.Nil(t, params.GetAll("any"))

	_, ok := params.Get("any")
	assert.False(t, ok)

	// clone of nil yields a usable empty set
	cloned := params.clone()
	require.NotNil(t, cloned)
	cloned.Add("a", 1)
	assert.Equal(t, 1, cloned.Len())
}

func TestParams_CloneIsIndependent(t *testing.T) {
	params := NewParams()
	params.Add("a", 1)

	cloned := params.clone()
	cloned.Add("b", 2)

	assert.Equal(t, 1, params.Len())
	assert.Equal(t, 2, cloned.Len())
}
