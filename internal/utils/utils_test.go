package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserContextRoundTrip(t *testing.T) {
	ctx := SetUserContext(context.Background(), 42, "buyer@example.com", "buyer")

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "buyer@example.com", GetUserEmailFromContext(ctx))
	assert.Equal(t, "buyer", GetUserRoleFromContext(ctx))
}

func TestUserContextMissing(t *testing.T) {
	ctx := context.Background()

	id, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)
	assert.Zero(t, id)
	assert.Empty(t, GetUserEmailFromContext(ctx))
	assert.Empty(t, GetUserRoleFromContext(ctx))
}
