package kernel_test

import (
	"testing"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from centavos", func(t *testing.T) {
		m, err := kernel.NewMoney(1234)
		require.NoError(t, err)
		assert.Equal(t, int64(1234), m.Centavos())
		assert.Equal(t, "12.34", m.String())
	})

	t.Run("should allow zero", func(t *testing.T) {
		m, err := kernel.NewMoney(0)
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	money := func(c int64) kernel.Money {
		m, err := kernel.NewMoney(c)
		require.NoError(t, err)
		return m
	}

	t.Run("Add", func(t *testing.T) {
		assert.Equal(t, int64(300), money(100).Add(money(200)).Centavos())
	})

	t.Run("Sub", func(t *testing.T) {
		result, err := money(300).Sub(money(100))
		require.NoError(t, err)
		assert.Equal(t, int64(200), result.Centavos())
	})

	t.Run("Sub below zero fails", func(t *testing.T) {
		_, err := money(100).Sub(money(300))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("MulInt", func(t *testing.T) {
		result, err := money(250).MulInt(4)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), result.Centavos())
	})

	t.Run("MulInt with negative quantity fails", func(t *testing.T) {
		_, err := money(250).MulInt(-1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("Percent truncates to whole centavos", func(t *testing.T) {
		result, err := money(999).Percent(10)
		require.NoError(t, err)
		assert.Equal(t, int64(99), result.Centavos())
	})

	t.Run("Percent outside 0-100 fails", func(t *testing.T) {
		_, err := money(100).Percent(101)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("comparisons", func(t *testing.T) {
		assert.True(t, money(100).LessThan(money(200)))
		assert.False(t, money(200).LessThan(money(100)))
		assert.True(t, money(150).IsEqual(money(150)))
	})
}
