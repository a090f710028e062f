package feeds

import "time"

type AuthorSummary struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarUrl   string `json:"avatar_url,omitempty"`
}

// PostSummary is the decorated shape every feed operation returns. Quoted is
// resolved exactly one level deep: a nested summary never carries its own
// Quoted, even when the referenced post is itself a quote.
type PostSummary struct {
	ID          string        `json:"id"`
	Author      AuthorSummary `json:"author"`
	Body        string        `json:"body,omitempty"`
	ParentID    string        `json:"parent_id,omitempty"`
	QuotedID    string        `json:"quoted_id,omitempty"`
	LikeCount   int64         `json:"like_count"`
	ReplyCount  int64         `json:"reply_count"`
	RepostCount int64         `json:"repost_count"`
	CreatedAt   time.Time     `json:"created_at"`
	EditedAt    *time.Time    `json:"edited_at,omitempty"`
	IsEdited    bool          `json:"is_edited"`

	IsLiked      bool `json:"is_liked"`
	IsReposted   bool `json:"is_reposted"`
	IsBookmarked bool `json:"is_bookmarked"`

	// Unavailable marks a stub for a tombstoned referenced post; its body is
	// omitted but the referencing post's counters are untouched.
	Unavailable bool `json:"unavailable,omitempty"`

	Quoted *PostSummary `json:"quoted,omitempty"`
}

type Response struct {
	Cursor string        `json:"cursor,omitempty"`
	Posts  []PostSummary `json:"feed"`
}
