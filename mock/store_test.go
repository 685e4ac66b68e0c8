package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/slackmoji"
	"github.com/fwojciec/slackmoji/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where FileStore is expected
	var _ slackmoji.FileStore = &mock.FileStore{}
}

func TestFileStore_Write(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteFn", func(t *testing.T) {
		t.Parallel()

		var gotName string
		var gotData []byte
		s := &mock.FileStore{
			WriteFn: func(_ context.Context, filename string, data []byte) (string, error) {
				gotName, gotData = filename, data
				return "out/" + filename, nil
			},
		}

		path, err := s.Write(context.Background(), "parrot.gif", []byte("GIF89a"))

		require.NoError(t, err)
		assert.Equal(t, "out/parrot.gif", path)
		assert.Equal(t, "parrot.gif", gotName)
		assert.Equal(t, []byte("GIF89a"), gotData)
	})

	t.Run("returns error from WriteFn", func(t *testing.T) {
		t.Parallel()

		expectedErr := slackmoji.Errorf(slackmoji.EWRITE, "disk full")
		s := &mock.FileStore{
			WriteFn: func(_ context.Context, _ string, _ []byte) (string, error) {
				return "", expectedErr
			},
		}

		_, err := s.Write(context.Background(), "parrot.gif", nil)

		assert.Equal(t, expectedErr, err)
	})
}
