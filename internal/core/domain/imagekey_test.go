package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageKey_Constructors(t *testing.T) {
	tests := []struct {
		name string
		key  ImageKey
		kind ImageKeyKind
		str  string
	}{
		{"ref key", RefKey("abc123"), ImageKeyRef, "ref:abc123"},
		{"node key", NodeKey("1:2"), ImageKeyNode, "node:1:2"},
		{"url key", URLKey("https://example.com/a.png"), ImageKeyURL, "url:https://example.com/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.key.Kind)
			assert.Equal(t, tt.str, tt.key.String())
			assert.False(t, tt.key.IsZero())
		})
	}
}

func TestImageKey_DistinctAcrossKinds(t *testing.T) {
	// The same value under different kinds must not collide as map keys.
	m := map[ImageKey]string{
		RefKey("x"):  "by-ref",
		NodeKey("x"): "by-node",
		URLKey("x"):  "by-url",
	}
	assert.Len(t, m, 3)
	assert.Equal(t, "by-ref", m[RefKey("x")])
	assert.Equal(t, "by-node", m[NodeKey("x")])
}

func TestImageKey_IsZero(t *testing.T) {
	var zero ImageKey
	assert.True(t, zero.IsZero())
	assert.False(t, RefKey("r").IsZero())
}
