package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unisell/pkg/errors"
)

func TestNewIsParseable(t *testing.T) {
	id := New()
	parsed, err := Parse("id", "  "+id+"\t")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.NotEqual(t, id, New())
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse("itemId", "not-an-id")
	assert.True(t, errors.Is(err, errors.CodeInvalidID))

	_, err = Parse("itemId", "   ")
	assert.True(t, errors.Is(err, errors.CodeValidation))
}

func TestObjectIDRoundTrip(t *testing.T) {
	id := New()
	oid, err := ObjectID("id", id)
	require.NoError(t, err)
	assert.Equal(t, id, oid.Hex())

	_, err = ObjectID("id", "zzz")
	assert.True(t, errors.Is(err, errors.CodeInvalidID))
}
