package service

import (
	"regexp"

	"github.com/schemahub/schemahub/database"
	"github.com/schemahub/schemahub/database/model"
	"github.com/schemahub/schemahub/web/entity"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// scriptTagPattern is a coarse guard against stored XSS, not a sanitizer.
var scriptTagPattern = regexp.MustCompile(`(?is)<script\b.*?</script>`)

const postViewColumns = "posts.id, posts.title, posts.content, posts.created_at, posts.published, users.username as author_name"

// PostService is the post repository. Every mutation folds the owner id into
// its WHERE clause, so a foreign caller affects zero rows and learns nothing
// about whether the post exists.
type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

func validatePostInput(title string, content string) error {
	if title == "" || content == "" {
		return ErrMissingTitleOrContent
	}
	if scriptTagPattern.MatchString(content) {
		return ErrContentXSS
	}
	if !json.Valid([]byte(content)) {
		return ErrContentNotJSON
	}
	return nil
}

// Create inserts a post owned by userId, published by default.
func (s *PostService) Create(userId string, title string, content string) (*model.Post, error) {
	if err := validatePostInput(title, content); err != nil {
		return nil, err
	}
	post := &model.Post{
		Id:        uuid.NewString(),
		Title:     title,
		Content:   content,
		UserId:    userId,
		Published: true,
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Get loads a post by id. Absent posts are (nil, nil), not an error.
func (s *PostService) Get(id string) (*model.Post, error) {
	post := &model.Post{}
	err := s.db.Where("id = ?", id).First(post).Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return post, nil
}

// GetOwn lists every post of the user, drafts included.
func (s *PostService) GetOwn(userId string) ([]entity.PostView, error) {
	posts := make([]entity.PostView, 0)
	err := s.db.Model(model.Post{}).
		Select(postViewColumns).
		Joins("left join users on users.id = posts.user_id").
		Where("posts.user_id = ?", userId).
		Order("posts.created_at desc, posts.id desc").
		Find(&posts).
		Error
	return posts, err
}

// GetAllPublished lists published posts, newest first. Id breaks timestamp
// ties so the order is stable.
func (s *PostService) GetAllPublished() ([]entity.PostView, error) {
	posts := make([]entity.PostView, 0)
	err := s.db.Model(model.Post{}).
		Select(postViewColumns).
		Joins("left join users on users.id = posts.user_id").
		Where("posts.published = ?", true).
		Order("posts.created_at desc, posts.id desc").
		Find(&posts).
		Error
	return posts, err
}

// Update rewrites title and content if userId owns the post.
func (s *PostService) Update(id string, title string, content string, userId string) error {
	if err := validatePostInput(title, content); err != nil {
		return err
	}
	result := s.db.Model(model.Post{}).
		Where("id = ? and user_id = ?", id, userId).
		Updates(map[string]any{"title": title, "content": content})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete removes the post if userId owns it. Likes cascade with the row.
func (s *PostService) Delete(id string, userId string) error {
	result := s.db.Where("id = ? and user_id = ?", id, userId).Delete(&model.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Publish flips the published flag on if userId owns the post.
func (s *PostService) Publish(id string, userId string) error {
	return s.setPublished(id, userId, true)
}

// Unpublish hides the post from the public listing if userId owns it.
func (s *PostService) Unpublish(id string, userId string) error {
	return s.setPublished(id, userId, false)
}

func (s *PostService) setPublished(id string, userId string, published bool) error {
	result := s.db.Model(model.Post{}).
		Where("id = ? and user_id = ?", id, userId).
		Update("published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Like records that the user liked the post.
func (s *PostService) Like(userId string, postId string) (*model.Like, error) {
	like := &model.Like{
		Id:     uuid.NewString(),
		PostId: postId,
		UserId: userId,
	}
	if err := s.db.Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

// Unlike removes the user's likes of the post. Removing nothing is fine.
func (s *PostService) Unlike(userId string, postId string) error {
	return s.db.
		Where("user_id = ? and post_id = ?", userId, postId).
		Delete(&model.Like{}).
		Error
}

// GetLikes lists the likes of a post.
func (s *PostService) GetLikes(postId string) ([]model.Like, error) {
	likes := make([]model.Like, 0)
	err := s.db.Where("post_id = ?", postId).Find(&likes).Error
	return likes, err
}
