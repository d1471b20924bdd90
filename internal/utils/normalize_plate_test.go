package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "KR12345", NormalizePlate(" kr 123-45 "))
	assert.Equal(t, "WA98765", NormalizePlate("WA98765"))
	assert.Equal(t, "", NormalizePlate("   "))
}

func TestNormalizeVin(t *testing.T) {
	assert.Equal(t, "1HGCM82633A004352", NormalizeVin("1hgcm82633a004352"))
}
