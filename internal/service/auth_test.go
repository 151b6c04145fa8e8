package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/habitloop/habitloop-server/internal/errors"
)

func TestSignup_CreatesSeededDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.auth.Signup(ctx, SignupRequest{Mobile: "15551234567"})
	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Equal(t, "15551234567", resp.Identity)
	assert.NotEmpty(t, resp.Token)

	doc, err := f.store.GetDocument(ctx, "15551234567")
	require.NoError(t, err)
	assert.Len(t, doc.Habits, 7)
}

func TestSignup_ExistingIdentityGetsTokenNotError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.auth.Signup(ctx, SignupRequest{Mobile: "15551234567"})
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := f.auth.Signup(ctx, SignupRequest{Mobile: "15551234567"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.NotEmpty(t, second.Token)
}

func TestSignup_RejectsNonNumericMobile(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Signup(context.Background(), SignupRequest{Mobile: "not-a-number"})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, err = f.auth.Signup(context.Background(), SignupRequest{})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestLogin_UnknownIdentityIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Login(context.Background(), LoginRequest{Mobile: "15559999999"})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestLogin_KnownIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, SignupRequest{Mobile: "15551234567"})
	require.NoError(t, err)

	resp, err := f.auth.Login(ctx, LoginRequest{Mobile: "15551234567"})
	require.NoError(t, err)
	assert.False(t, resp.Created)

	identity, err := f.auth.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "15551234567", identity)
}

func TestVerify_RejectsGarbageToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Verify("v4.local.garbage")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}
