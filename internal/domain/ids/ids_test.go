package ids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewULIDIsValid(t *testing.T) {
	id, err := NewULID()

	require.NoError(t, err)
	require.Len(t, id, 26)
	require.NoError(t, ValidateULID(id))
}

func TestNewULIDsAreDistinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := NewULID()
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate ULID %s", id)
		seen[id] = struct{}{}
	}
}

func TestValidateULID(t *testing.T) {
	require.ErrorIs(t, ValidateULID("not-a-ulid"), ErrInvalidULID)
	require.ErrorIs(t, ValidateULID(""), ErrInvalidULID)

	id, err := NewULID()
	require.NoError(t, err)
	require.NoError(t, ValidateULID(id))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "01HVXK3S7M9QZJ4W8Y2B6N0DCE", Normalize("  01hvxk3s7m9qzj4w8y2b6n0dce "))
	require.Equal(t, "", Normalize("   "))
}
