package service

import (
	"testing"
	"time"

	"github.com/schemahub/schemahub/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndValidateSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	user := createTestUser(t, db, "alice")

	sess, err := svc.Create(user.Id)
	require.NoError(t, err)
	assert.Len(t, sess.Id, sessionTokenLen)
	assert.Equal(t, user.Id, sess.UserId)
	assert.Greater(t, sess.ExpiresAt, time.Now().UnixMilli())

	gotUser, gotSess, err := svc.Validate(sess.Id)
	require.NoError(t, err)
	require.NotNil(t, gotUser)
	require.NotNil(t, gotSess)
	assert.Equal(t, user.Id, gotUser.Id)
	assert.Equal(t, sess.Id, gotSess.Id)
}

func TestValidateUnknownToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)

	user, sess, err := svc.Validate("no-such-token")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Nil(t, sess)

	user, sess, err = svc.Validate("")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Nil(t, sess)
}

func TestValidateExpiredSessionDeletesRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	user := createTestUser(t, db, "bob")

	expired := &model.Session{
		Id:        "expiredtoken",
		UserId:    user.Id,
		ExpiresAt: time.Now().Add(-time.Hour).UnixMilli(),
	}
	require.NoError(t, db.Create(expired).Error)

	gotUser, gotSess, err := svc.Validate(expired.Id)
	require.NoError(t, err)
	assert.Nil(t, gotUser)
	assert.Nil(t, gotSess)

	var count int64
	require.NoError(t, db.Model(model.Session{}).Where("id = ?", expired.Id).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestValidateRenewsAgingSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	user := createTestUser(t, db, "carol")

	oldExpiry := time.Now().Add(time.Hour).UnixMilli()
	aging := &model.Session{
		Id:        "agingtoken",
		UserId:    user.Id,
		ExpiresAt: oldExpiry,
	}
	require.NoError(t, db.Create(aging).Error)

	_, gotSess, err := svc.Validate(aging.Id)
	require.NoError(t, err)
	require.NotNil(t, gotSess)
	assert.Greater(t, gotSess.ExpiresAt, oldExpiry)

	stored := &model.Session{}
	require.NoError(t, db.Where("id = ?", aging.Id).First(stored).Error)
	assert.Equal(t, gotSess.ExpiresAt, stored.ExpiresAt)
}

func TestInvalidateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	user := createTestUser(t, db, "dave")

	sess, err := svc.Create(user.Id)
	require.NoError(t, err)

	require.NoError(t, svc.Invalidate(sess.Id))
	require.NoError(t, svc.Invalidate(sess.Id))

	gotUser, gotSess, err := svc.Validate(sess.Id)
	require.NoError(t, err)
	assert.Nil(t, gotUser)
	assert.Nil(t, gotSess)
}

func TestClearExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	user := createTestUser(t, db, "erin")

	live, err := svc.Create(user.Id)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Session{
		Id:        "stale1",
		UserId:    user.Id,
		ExpiresAt: time.Now().Add(-time.Minute).UnixMilli(),
	}).Error)
	require.NoError(t, db.Create(&model.Session{
		Id:        "stale2",
		UserId:    user.Id,
		ExpiresAt: time.Now().Add(-time.Hour).UnixMilli(),
	}).Error)

	count, err := svc.ClearExpired()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	var remaining int64
	require.NoError(t, db.Model(model.Session{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)

	gotUser, _, err := svc.Validate(live.Id)
	require.NoError(t, err)
	assert.NotNil(t, gotUser)
}
