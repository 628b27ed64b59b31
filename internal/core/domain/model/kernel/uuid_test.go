package kernel_test

import (
	"testing"

	"labos/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	t.Run("NewUUID creates valid identifiers", func(t *testing.T) {
		id := kernel.NewUUID()
		require.NoError(t, id.Validate())
		assert.Len(t, id.String(), 36)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.UUID
		require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("UUIDFromString round-trips", func(t *testing.T) {
		original := kernel.NewUUID()
		parsed, err := kernel.UUIDFromString(original.String())
		require.NoError(t, err)
		assert.True(t, original.IsEqual(parsed))
	})

	t.Run("UUIDFromString rejects malformed input", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.Error(t, err)
	})

	t.Run("UUIDFromBytes rejects the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))
		require.Error(t, err)
	})

	t.Run("IsEqual distinguishes identifiers", func(t *testing.T) {
		a := kernel.NewUUID()
		b := kernel.NewUUID()
		assert.False(t, a.IsEqual(b))
		assert.True(t, a.IsEqual(a))
	})
}

func TestTenantID(t *testing.T) {
	t.Run("NewTenantID creates valid identifiers", func(t *testing.T) {
		tenant := kernel.NewTenantID()
		require.NoError(t, tenant.Validate())
	})

	t.Run("TenantIDFromString round-trips", func(t *testing.T) {
		tenant := kernel.NewTenantID()
		parsed, err := kernel.TenantIDFromString(tenant.String())
		require.NoError(t, err)
		assert.True(t, tenant.IsEqual(parsed.UUID))
	})
}
