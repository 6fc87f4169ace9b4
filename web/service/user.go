package service

import (
	"github.com/schemahub/schemahub/database"
	"github.com/schemahub/schemahub/database/model"
	"github.com/schemahub/schemahub/util/crypto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 31
	minPasswordLen = 6
	maxPasswordLen = 255
)

// enumerationGuardHash is a throwaway bcrypt hash verified when the username
// does not exist, so login takes the same time either way.
const enumerationGuardHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserService implements signup and login. Sessions for fresh logins come
// from the embedded SessionService.
type UserService struct {
	db             *gorm.DB
	sessionService *SessionService
}

func NewUserService(db *gorm.DB, sessionService *SessionService) *UserService {
	return &UserService{db: db, sessionService: sessionService}
}

func checkCredentialBounds(username string, password string) error {
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return ErrInvalidUsername
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return ErrInvalidPassword
	}
	return nil
}

// SignUp creates a user and logs it in. Bounds are checked before any store
// access; a taken username is reported without creating anything.
func (s *UserService) SignUp(username string, password string) (*model.User, *model.Session, error) {
	if err := checkCredentialBounds(username, password); err != nil {
		return nil, nil, err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	var count int64
	err = s.db.Model(model.User{}).
		Where("username = ?", username).
		Count(&count).
		Error
	if err != nil {
		return nil, nil, err
	}
	if count > 0 {
		return nil, nil, ErrUsernameTaken
	}

	user := &model.User{
		Id:       uuid.NewString(),
		Username: username,
		Password: hash,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, nil, err
	}

	sess, err := s.sessionService.Create(user.Id)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Login verifies the credentials and mints a session. An unknown username and
// a wrong password return the same error and burn the same bcrypt work.
func (s *UserService) Login(username string, password string) (*model.User, *model.Session, error) {
	if err := checkCredentialBounds(username, password); err != nil {
		return nil, nil, err
	}

	user := &model.User{}
	err := s.db.Where("username = ?", username).First(user).Error
	if database.IsNotFound(err) {
		_, _ = crypto.CheckPasswordHash(enumerationGuardHash, password)
		return nil, nil, ErrBadCredentials
	} else if err != nil {
		return nil, nil, err
	}

	ok, err := crypto.CheckPasswordHash(user.Password, password)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrBadCredentials
	}

	sess, err := s.sessionService.Create(user.Id)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// GetUser loads a user by id, nil if absent.
func (s *UserService) GetUser(id string) (*model.User, error) {
	user := &model.User{}
	err := s.db.Where("id = ?", id).First(user).Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account. Sessions, posts and likes cascade with it.
func (s *UserService) DeleteUser(id string) error {
	return s.db.Delete(&model.User{}, "id = ?", id).Error
}
