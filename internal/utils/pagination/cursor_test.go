package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoryapp/amory-backend/internal/utils/pagination"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	in := pagination.Cursor{UserID: 42, LikedUnix: 1700000000123}

	token, err := pagination.Encode(in)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	out, err := pagination.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeEmptyToken(t *testing.T) {
	c, err := pagination.Decode("")
	require.NoError(t, err)
	assert.Equal(t, pagination.Cursor{}, c)
}

func TestDecodeInvalidToken(t *testing.T) {
	for _, token := range []string{"!!!not-base64!!!", "bm90IGpzb24"} {
		_, err := pagination.Decode(token)
		assert.Error(t, err, "token %q", token)
	}
}
