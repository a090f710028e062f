package models

import (
	"errors"
	"time"
)

type PostKind string

const (
	KindOriginal PostKind = "original"
	KindReply    PostKind = "reply"
	KindRepost   PostKind = "repost"
	KindQuote    PostKind = "quote"
)

var ErrInvalidPostShape = errors.New("post shape does not match its kind")

type Post struct {
	ID          string
	AuthorID    string
	Kind        PostKind
	Body        string
	ParentID    string // replies only
	QuotedID    string // reposts and quotes only
	CreatedAt   time.Time
	EditedAt    time.Time
	Edited      bool
	LikeCount   int64
	ReplyCount  int64
	RepostCount int64
	Tombstoned  bool
}

func NewOriginal(id, authorId, body string, createdAt time.Time) Post {
	return Post{ID: id, AuthorID: authorId, Kind: KindOriginal, Body: body, CreatedAt: createdAt}
}

func NewReply(id, authorId, body, parentId string, createdAt time.Time) Post {
	return Post{ID: id, AuthorID: authorId, Kind: KindReply, Body: body, ParentID: parentId, CreatedAt: createdAt}
}

func NewRepost(id, authorId, targetId string, createdAt time.Time) Post {
	return Post{ID: id, AuthorID: authorId, Kind: KindRepost, QuotedID: targetId, CreatedAt: createdAt}
}

func NewQuote(id, authorId, body, targetId string, createdAt time.Time) Post {
	return Post{ID: id, AuthorID: authorId, Kind: KindQuote, Body: body, QuotedID: targetId, CreatedAt: createdAt}
}

// Validate rejects shapes the constructors make unrepresentable but a raw
// store row could still carry.
func (p *Post) Validate() error {
	switch p.Kind {
	case KindOriginal:
		if p.ParentID != "" || p.QuotedID != "" {
			return ErrInvalidPostShape
		}
	case KindReply:
		if p.ParentID == "" || p.QuotedID != "" {
			return ErrInvalidPostShape
		}
	case KindRepost:
		if p.Body != "" || p.QuotedID == "" {
			return ErrInvalidPostShape
		}
	case KindQuote:
		if p.Body == "" || p.QuotedID == "" {
			return ErrInvalidPostShape
		}
	default:
		return ErrInvalidPostShape
	}
	return nil
}

// KindFromLinks derives the kind of a raw row from its nullable links, for
// store rows that predate the kind column.
func KindFromLinks(body, parentId, quotedId string) PostKind {
	switch {
	case parentId != "":
		return KindReply
	case quotedId != "" && body == "":
		return KindRepost
	case quotedId != "":
		return KindQuote
	default:
		return KindOriginal
	}
}

func (p *Post) HasQuotedTarget() bool {
	return p.Kind == KindRepost || p.Kind == KindQuote
}

func (p *Post) Engagement() int64 {
	return p.LikeCount + p.ReplyCount*2 + p.RepostCount*3
}
