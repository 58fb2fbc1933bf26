package entropy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maciej-vess/business-food-truck/internal/entropy"
)

func TestCryptoSourceInRange(t *testing.T) {
	src := entropy.CryptoSource{}
	for i := 0; i < 1000; i++ {
		v := src.Intn(3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
}

func TestSeededSourceReplays(t *testing.T) {
	a := entropy.NewSeeded(42)
	b := entropy.NewSeeded(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(3), b.Intn(3))
	}
}
