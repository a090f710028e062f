package models

import "time"

type InteractionKind string

const (
	InteractionLike     InteractionKind = "like"
	InteractionBookmark InteractionKind = "bookmark"
)

// Interaction is a like or bookmark edge. Reposts are posts, not edges.
type Interaction struct {
	ActorID   string
	PostID    string
	Kind      InteractionKind
	CreatedAt time.Time
}
