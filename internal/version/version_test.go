package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "dev (none)", String())

	Dirty = "true"
	t.Cleanup(func() { Dirty = "false" })
	assert.Equal(t, "dev (none) dirty", String())
}
