// Package entity defines the data shapes exchanged with the web layer.
package entity

// Msg is the standard API response envelope.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// PostView is a post row joined with its author's username, as served by the
// public listing and the owner's dashboard.
type PostView struct {
	Id         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CreatedAt  int64  `json:"createdAt"`
	Published  bool   `json:"published"`
	AuthorName string `json:"authorName"`
}

// ServerStatus is the operator status snapshot served by /server/status.
type ServerStatus struct {
	Cpu float64 `json:"cpu"`
	Mem struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Uptime  uint64    `json:"uptime"`
	Loads   []float64 `json:"loads"`
	Version string    `json:"version"`
}
