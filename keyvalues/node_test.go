package keyvalues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_SetKeepsPosition(t *testing.T) {
	n := NewContainer()
	n.Set("appid", NewLeaf("440"))
	n.Set("name", NewLeaf("Team Fortress 2"))
	n.Set("appid", NewLeaf("441"))

	assert.Equal(t, []string{"appid", "name"}, n.Keys())
	assert.Equal(t, 2, n.Len())
	v, ok := n.String("appid")
	assert.True(t, ok)
	assert.Equal(t, "441", v)

	assert.Panics(t, func() { NewLeaf("x").Set("k", NewLeaf("v")) })
}

func TestNode_Lookup(t *testing.T) {
	tree, err := Parse(`"appstate" { "StateFlags" "4" "stateflags" "6" "UserConfig" { "language" "english" } }`)
	require.NoError(t, err)

	_, ok := tree.Get("AppState")
	assert.False(t, ok)
	state, ok := tree.Lookup("AppState")
	require.True(t, ok)

	// exact match wins over a folded one
	v, ok := state.String("stateflags")
	assert.True(t, ok)
	assert.Equal(t, "6", v)
	v, _ = state.String("STATEFLAGS")
	assert.Equal(t, "4", v)

	_, ok = state.String("UserConfig")
	assert.False(t, ok, "containers are not strings")
	_, ok = NewLeaf("x").Get("x")
	assert.False(t, ok)
}

func TestNode_ToMap(t *testing.T) {
	tree, err := Parse(`"a" { "b" "1" "c" { "d" "2" } }`)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"a": map[string]interface{}{
			"b": "1",
			"c": map[string]interface{}{"d": "2"},
		},
	}, tree.ToMap())
}
