package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("65a1f0c2e4b0a1b2c3d4e5f6"))
	assert.True(t, IsValidID("65A1F0C2E4B0A1B2C3D4E5F6"))

	for _, id := range []string{"", "prod-01", "65a1f0c2e4b0a1b2c3d4e5f", "65a1f0c2e4b0a1b2c3d4e5fz", "65a1f0c2e4b0a1b2c3d4e5f600"} {
		assert.False(t, IsValidID(id), id)
	}
}
