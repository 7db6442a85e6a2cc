package aiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageHash(t *testing.T) {
	a := ImageHash([]byte("pad thai"))
	b := ImageHash([]byte("pad thai"))
	c := ImageHash([]byte("pad thai "))

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// known vector for the empty input
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ImageHash(nil))
}
