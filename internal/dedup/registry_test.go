package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterIfNew(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.RegisterIfNew("indeed:abc123"))
	assert.False(t, r.RegisterIfNew("indeed:abc123"))
	assert.False(t, r.RegisterIfNew("indeed:abc123"), "repeat calls stay false")

	// same platform id under another source is a different posting
	assert.True(t, r.RegisterIfNew("linkedin:abc123"))
	assert.Equal(t, 2, r.Len())
}

func TestSeed(t *testing.T) {
	r := NewRegistry()
	r.Seed([]string{"indeed:a", "indeed:b"})

	assert.False(t, r.RegisterIfNew("indeed:a"))
	assert.True(t, r.RegisterIfNew("indeed:c"))
	assert.Equal(t, 3, r.Len())
}
