package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/bridgegen/internal/include"
	"github.com/vk/bridgegen/internal/support"
)

func TestKnownGuards_ExistInDefaultHeader(t *testing.T) {
	declared := support.Default().Guards()
	for _, g := range KnownGuards() {
		assert.Contains(t, declared, g)
	}
	assert.ElementsMatch(t, declared, KnownGuards(), "every declared guard should be extracted")
}

func TestBuiltins_NeedIsTransitive(t *testing.T) {
	b := newBuiltins()
	b.Need(guardVec)

	assert.Equal(t, []string{guardBitcopy, guardPanic, guardSlice, guardVec}, b.Guards())
	assert.Equal(t, []include.Capability{
		include.Array, include.Cstddef, include.Cstdint, include.Exception, include.Utility,
	}, b.Capabilities())
}

func TestBuiltins_MutualDependency(t *testing.T) {
	b := newBuiltins()
	b.Need(guardStr)

	assert.True(t, b.Needed(guardString))
	assert.True(t, b.Needed(guardImpl))
	assert.Equal(t, []string{guardBitcopy, guardImpl, guardString, guardStr}, b.Guards())
}

func TestBuiltins_Require(t *testing.T) {
	b := newBuiltins()
	b.Require(include.Vector, include.Array, include.Vector)

	assert.Empty(t, b.Guards())
	assert.Equal(t, []include.Capability{include.Array, include.Vector}, b.Capabilities())
}

func TestKnownGuards_ReturnsCopy(t *testing.T) {
	guards := KnownGuards()
	guards[0] = "CLOBBERED"
	assert.Equal(t, guardBitcopy, KnownGuards()[0])
}
