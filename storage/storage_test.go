package storage

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestReadWriteDelete(t *testing.T) {
	tests := []struct {
		name    string
		storage System
	}{
		{
			name:    "memory",
			storage: NewMemoryStorage(),
		},
		{
			name:    "disk",
			storage: NewDiskStorage(t.TempDir()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			key := "calendar/holidays.txt"
			data := []byte("2023-02-23\n2023-05-03\n")

			_, err := tt.storage.Read(ctx, key)
			require.True(t, errors.Is(err, ErrDoesNotExist))

			require.NoError(t, tt.storage.Write(ctx, key, data))

			readData, err := tt.storage.Read(ctx, key)
			require.NoError(t, err)
			require.Equal(t, data, readData)

			keys, err := tt.storage.GetKeysWithPrefix(ctx, "calendar/")
			require.NoError(t, err)
			require.Equal(t, []string{key}, keys)

			keys, err = tt.storage.GetKeysWithPrefix(ctx, "other/")
			require.NoError(t, err)
			require.Empty(t, keys)

			require.NoError(t, tt.storage.Delete(ctx, key))
			_, err = tt.storage.Read(ctx, key)
			require.True(t, errors.Is(err, ErrDoesNotExist))

			// Deleting a missing key is fine.
			require.NoError(t, tt.storage.Delete(ctx, key))
		})
	}
}
