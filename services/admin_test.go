package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAccounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	self := adminID(t, db)

	a, err := CreateAdmin(ctx, db, AdminInput{Email: " Support@Example.com", Name: "Support"})
	require.NoError(t, err)
	assert.Equal(t, "support@example.com", a.Email)
	assert.True(t, a.IsActive)

	_, err = CreateAdmin(ctx, db, AdminInput{Email: "support@example.com", Name: "Dup"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = CreateAdmin(ctx, db, AdminInput{Email: "nope"})
	assert.ErrorIs(t, err, ErrValidation)

	list, err := ListAdmins(ctx, db)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = SetAdminActive(ctx, db, self, self, false)
	assert.ErrorIs(t, err, ErrValidation)

	off, err := SetAdminActive(ctx, db, self, a.ID, false)
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	_, err = FindActiveAdminByEmail(ctx, db, "support@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = SetAdminActive(ctx, db, self, 404, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordAdminLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	id := adminID(t, db)

	require.NoError(t, RecordAdminLogin(ctx, db, id, LoginInfo{IPAddress: "10.0.0.1", Device: "curl/8.0"}))
	require.NoError(t, RecordAdminLogin(ctx, db, id, LoginInfo{IPAddress: "10.0.0.2", Device: strings.Repeat("x", 300)}))

	a, err := FindActiveAdminByEmail(ctx, db, testAdminEmail)
	require.NoError(t, err)
	require.NotNil(t, a.LastLogin)
	assert.WithinDuration(t, time.Now(), *a.LastLogin, time.Minute)

	page, err := ListAdminLogins(ctx, db, id, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)
	require.Len(t, page.Logins, 1)
	assert.Equal(t, "10.0.0.2", page.Logins[0].IPAddress)
	assert.Len(t, page.Logins[0].Device, 255)

	empty, err := ListAdminLogins(ctx, db, id+100, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, empty.Logins)
	assert.Equal(t, defaultPageSize, empty.Pagination.Limit)
}
