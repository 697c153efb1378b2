package logic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterValidator(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)

	_, err := f.validators.RegisterValidator(stranger, reviewer, f.now)
	require.ErrorIs(err, ErrUnauthorized)

	v, err := f.validators.RegisterValidator(authority, reviewer, f.now)
	require.NoError(err)
	require.True(v.IsValidator)
	require.Zero(v.ReputationScore)

	// 重复登记不会新增记录
	_, err = f.validators.RegisterValidator(authority, reviewer, f.now)
	require.NoError(err)

	all, err := f.validators.GetValidators(false)
	require.NoError(err)
	require.Len(all, 1)
}

func TestRevokeValidator(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)

	_, err := f.validators.RevokeValidator(authority, reviewer, f.now)
	require.ErrorIs(err, ErrValidatorNotFound)

	_, err = f.validators.RegisterValidator(authority, reviewer, f.now)
	require.NoError(err)

	v, err := f.validators.RevokeValidator(authority, reviewer, f.now)
	require.NoError(err)
	require.False(v.IsValidator)

	active, err := f.validators.GetValidators(true)
	require.NoError(err)
	require.Empty(active)

	v, err = f.validators.GetValidator(reviewer)
	require.NoError(err)
	require.False(v.IsValidator)

	_, err = f.validators.GetValidator(stranger)
	require.ErrorIs(err, ErrValidatorNotFound)
}
