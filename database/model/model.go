// Package model defines the persisted rows of the registry: users, their
// sessions, posts and likes.
package model

// User is an account. The password column holds a bcrypt hash, never the
// plain password.
type User struct {
	Id       string `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
}

// Session is a server-side login session. Id doubles as the opaque token the
// cookie carries. ExpiresAt is unix milliseconds.
type Session struct {
	Id        string `json:"id" gorm:"primaryKey"`
	UserId    string `json:"userId" gorm:"index;not null"`
	User      *User  `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	ExpiresAt int64  `json:"expiresAt" gorm:"not null"`
}

// Post is a component registry entry. Content is the schema JSON, stored as
// opaque text.
type Post struct {
	Id        string `json:"id" gorm:"primaryKey"`
	Title     string `json:"title" form:"title" gorm:"not null"`
	Content   string `json:"content" form:"content" gorm:"not null"`
	UserId    string `json:"userId" gorm:"index;not null"`
	User      *User  `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	CreatedAt int64  `json:"createdAt" gorm:"autoCreateTime:milli;index"`
	Published bool   `json:"published" gorm:"default:true"`
}

// Like marks that a user liked a post. There is deliberately no unique index
// on (user_id, post_id); see the likes discussion in DESIGN.md.
type Like struct {
	Id        string `json:"id" gorm:"primaryKey"`
	PostId    string `json:"postId" gorm:"index;not null"`
	Post      *Post  `json:"-" gorm:"foreignKey:PostId;constraint:OnDelete:CASCADE"`
	UserId    string `json:"userId" gorm:"index;not null"`
	User      *User  `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	CreatedAt int64  `json:"createdAt" gorm:"autoCreateTime:milli"`
}
