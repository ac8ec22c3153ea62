package retime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetime_OutlierScenario(t *testing.T) {
	in := []int{1000, 1020, 1010, 70000, 1045, 1060}
	got := Retime(in, DefaultMaxLeg)

	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i], got[i-1], "output must be strictly increasing at %d", i)
	}

	for _, i := range []int{0, 1, 4, 5} {
		assert.Equal(t, in[i], got[i], "anchor at %d must be unchanged", i)
	}

	assert.Greater(t, got[2], got[1])
	assert.Less(t, got[2], got[4])
	assert.Greater(t, got[3], got[2])
	assert.Less(t, got[3], got[4])
}

func TestRetime_ShortInputUnchanged(t *testing.T) {
	assert.Equal(t, []int{5}, Retime([]int{5}, DefaultMaxLeg))
	assert.Equal(t, []int{5, 3}, Retime([]int{5, 3}, DefaultMaxLeg))
}

func TestRetime_AlreadyMonotonicUnchanged(t *testing.T) {
	in := []int{100, 200, 300, 400}
	got := Retime(in, DefaultMaxLeg)
	assert.Equal(t, in, got)
}

func TestIsAnchor_MatchesRetimeClassification(t *testing.T) {
	in := []int{1000, 1020, 1010, 70000, 1045, 1060}
	anchorIdx := map[int]bool{0: true, 1: true, 4: true, 5: true}
	for i := range in {
		assert.Equal(t, anchorIdx[i], IsAnchor(in, DefaultMaxLeg, i), "index %d", i)
	}
}
