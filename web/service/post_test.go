package service

import (
	"testing"

	"github.com/schemahub/schemahub/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buttonSchema = `{"name":"button","type":"registry:ui"}`

func TestCreateAndGetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	user := createTestUser(t, db, "alice")

	post, err := svc.Create(user.Id, "button", buttonSchema)
	require.NoError(t, err)
	assert.True(t, post.Published)

	got, err := svc.Get(post.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "button", got.Title)
	assert.Equal(t, buttonSchema, got.Content)
	assert.Equal(t, user.Id, got.UserId)
}

func TestGetMissingPostIsNil(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)

	got, err := svc.Get("no-such-post")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOwnershipEnforcedOnMutation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")

	post, err := svc.Create(owner.Id, "button", buttonSchema)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Update(post.Id, "stolen", buttonSchema, intruder.Id), ErrPostNotFound)
	assert.ErrorIs(t, svc.Delete(post.Id, intruder.Id), ErrPostNotFound)
	assert.ErrorIs(t, svc.Publish(post.Id, intruder.Id), ErrPostNotFound)
	assert.ErrorIs(t, svc.Unpublish(post.Id, intruder.Id), ErrPostNotFound)

	got, err := svc.Get(post.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "button", got.Title)
	assert.True(t, got.Published)

	// The owner can do all of it.
	require.NoError(t, svc.Update(post.Id, "button v2", buttonSchema, owner.Id))
	require.NoError(t, svc.Unpublish(post.Id, owner.Id))
	got, err = svc.Get(post.Id)
	require.NoError(t, err)
	assert.Equal(t, "button v2", got.Title)
	assert.False(t, got.Published)
	require.NoError(t, svc.Publish(post.Id, owner.Id))
	require.NoError(t, svc.Delete(post.Id, owner.Id))
	got, err = svc.Get(post.Id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetAllPublishedFilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	user := createTestUser(t, db, "alice")

	ids := make([]string, 0, 3)
	for i, title := range []string{"first", "second", "third"} {
		post, err := svc.Create(user.Id, title, buttonSchema)
		require.NoError(t, err)
		err = db.Model(model.Post{}).
			Where("id = ?", post.Id).
			Update("created_at", int64(1000*(i+1))).
			Error
		require.NoError(t, err)
		ids = append(ids, post.Id)
	}
	require.NoError(t, svc.Unpublish(ids[1], user.Id))

	posts, err := svc.GetAllPublished()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "third", posts[0].Title)
	assert.Equal(t, "first", posts[1].Title)
	assert.Equal(t, "alice", posts[0].AuthorName)
	for i := 1; i < len(posts); i++ {
		assert.GreaterOrEqual(t, posts[i-1].CreatedAt, posts[i].CreatedAt)
	}
}

func TestGetOwnIncludesDrafts(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	published, err := svc.Create(alice.Id, "published", buttonSchema)
	require.NoError(t, err)
	draft, err := svc.Create(alice.Id, "draft", buttonSchema)
	require.NoError(t, err)
	require.NoError(t, svc.Unpublish(draft.Id, alice.Id))
	_, err = svc.Create(bob.Id, "other", buttonSchema)
	require.NoError(t, err)

	posts, err := svc.GetOwn(alice.Id)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	titles := []string{posts[0].Title, posts[1].Title}
	assert.Contains(t, titles, published.Title)
	assert.Contains(t, titles, "draft")
}

func TestPostInputValidation(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		content  string
		expected error
	}{
		{"missing title", "", buttonSchema, ErrMissingTitleOrContent},
		{"missing content", "button", "", ErrMissingTitleOrContent},
		{"script tag", "button", "<script>alert(1)</script>", ErrContentXSS},
		{"script tag mixed case", "button", `{"x":"<ScRiPt>boom</sCrIpT>"}`, ErrContentXSS},
		{"script tag with attributes", "button", `<script type="text/javascript">x()</script>`, ErrContentXSS},
		{"not json", "button", "not a schema", ErrContentNotJSON},
		{"valid", "button", buttonSchema, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			svc := NewPostService(db)
			user := createTestUser(t, db, "alice")

			post, err := svc.Create(user.Id, tt.title, tt.content)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, post)

			var count int64
			require.NoError(t, db.Model(model.Post{}).Count(&count).Error)
			assert.EqualValues(t, 0, count)
		})
	}
}

func TestLikeAndUnlike(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post, err := svc.Create(alice.Id, "button", buttonSchema)
	require.NoError(t, err)

	_, err = svc.Like(bob.Id, post.Id)
	require.NoError(t, err)

	likes, err := svc.GetLikes(post.Id)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, bob.Id, likes[0].UserId)

	// Unliking as someone else removes nothing.
	require.NoError(t, svc.Unlike(alice.Id, post.Id))
	likes, err = svc.GetLikes(post.Id)
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	require.NoError(t, svc.Unlike(bob.Id, post.Id))
	likes, err = svc.GetLikes(post.Id)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestDeletePostCascadesLikes(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post, err := svc.Create(alice.Id, "button", buttonSchema)
	require.NoError(t, err)
	_, err = svc.Like(bob.Id, post.Id)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(post.Id, alice.Id))

	var likes int64
	require.NoError(t, db.Model(model.Like{}).Where("post_id = ?", post.Id).Count(&likes).Error)
	assert.EqualValues(t, 0, likes)
}
