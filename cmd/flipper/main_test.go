package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/Carmen-Shannon/oxy-flipper/engine/input"
	"github.com/stretchr/testify/assert"
)

func TestEdgesRising(t *testing.T) {
	var e edges
	down := input.State{Keys: map[uint32]bool{common.KeyF: true}}
	up := input.State{}

	assert.True(t, e.rising(common.KeyF, down))
	assert.False(t, e.rising(common.KeyF, down))
	assert.False(t, e.rising(common.KeyF, up))
	assert.True(t, e.rising(common.KeyF, down))
	assert.False(t, e.rising(common.KeyR, down))
}
