package service

import (
	"time"

	"github.com/schemahub/schemahub/config"
	"github.com/schemahub/schemahub/database"
	"github.com/schemahub/schemahub/database/model"
	"github.com/schemahub/schemahub/logger"
	"github.com/schemahub/schemahub/util/random"

	"gorm.io/gorm"
)

const sessionTokenLen = 40

// SessionService mints, validates and revokes login sessions. A missing or
// expired token is the normal anonymous state, not an error.
type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// Create persists a new session for the user and returns it. The session id
// is the opaque token handed to the cookie.
func (s *SessionService) Create(userId string) (*model.Session, error) {
	sess := &model.Session{
		Id:        random.Seq(sessionTokenLen),
		UserId:    userId,
		ExpiresAt: time.Now().Add(config.GetSessionMaxAge()).UnixMilli(),
	}
	if err := s.db.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// Validate resolves a token to its user and session. Unknown and expired
// tokens both return (nil, nil, nil). A session validated in the second half
// of its lifetime gets its expiry extended by the full lifetime.
func (s *SessionService) Validate(token string) (*model.User, *model.Session, error) {
	if token == "" {
		return nil, nil, nil
	}

	sess := &model.Session{}
	err := s.db.Where("id = ?", token).First(sess).Error
	if database.IsNotFound(err) {
		return nil, nil, nil
	} else if err != nil {
		return nil, nil, err
	}

	now := time.Now().UnixMilli()
	if sess.ExpiresAt <= now {
		if err := s.Invalidate(sess.Id); err != nil {
			logger.Warning("delete expired session:", err)
		}
		return nil, nil, nil
	}

	maxAge := config.GetSessionMaxAge()
	if sess.ExpiresAt-now < maxAge.Milliseconds()/2 {
		sess.ExpiresAt = time.Now().Add(maxAge).UnixMilli()
		err := s.db.Model(model.Session{}).
			Where("id = ?", sess.Id).
			Update("expires_at", sess.ExpiresAt).
			Error
		if err != nil {
			logger.Warning("renew session:", err)
		}
	}

	user := &model.User{}
	err = s.db.Where("id = ?", sess.UserId).First(user).Error
	if database.IsNotFound(err) {
		return nil, nil, nil
	} else if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Invalidate deletes the session row. Deleting an absent session is a no-op.
func (s *SessionService) Invalidate(sessionId string) error {
	return s.db.Delete(&model.Session{}, "id = ?", sessionId).Error
}

// ClearExpired removes every expired session row and returns how many went.
func (s *SessionService) ClearExpired() (int64, error) {
	result := s.db.
		Where("expires_at <= ?", time.Now().UnixMilli()).
		Delete(&model.Session{})
	return result.RowsAffected, result.Error
}
