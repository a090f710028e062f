package storage

import (
	"context"
	"moltfeed/storage/models"
	"time"
)

// Reader is the read-only contract the feed engine consumes from the content
// store. Write paths (posting, following, liking) live in other services.
//
// Listing queries never return tombstoned posts. GetPostByID and
// GetPostsByIDs do return tombstoned rows so referenced posts can be rendered
// as unavailable stubs.
type Reader interface {
	GetFollowees(ctx context.Context, viewerId string) ([]string, error)

	// GetAuthorPostsSince returns non-tombstoned posts by the given authors
	// created after since, most recent first, capped at limit.
	GetAuthorPostsSince(ctx context.Context, authorIds []string, since time.Time, limit int) ([]models.Post, error)

	// GetAuthorPostsBefore pages backwards through the authors' posts,
	// strictly before the (createdAt, id) position, most recent first.
	GetAuthorPostsBefore(ctx context.Context, authorIds []string, before time.Time, beforeId string, limit int) ([]models.Post, error)

	// GetEngagedSince returns non-tombstoned posts by activated authors
	// created after since that have at least one like, reply or repost.
	GetEngagedSince(ctx context.Context, since time.Time) ([]models.Post, error)

	// GetRecentLikedAuthors returns the distinct authors whose posts the
	// viewer liked after since, ordered by most recent like, capped at limit.
	GetRecentLikedAuthors(ctx context.Context, viewerId string, since time.Time, limit int) ([]string, error)

	// GetFolloweeLikedPosts returns non-tombstoned posts liked after since by
	// someone the viewer follows but authored by someone the viewer does not
	// follow, ordered by most recent like.
	GetFolloweeLikedPosts(ctx context.Context, viewerId string, since time.Time) ([]models.Post, error)

	// GetGlobalRecent returns the most recent non-tombstoned posts by
	// activated authors.
	GetGlobalRecent(ctx context.Context, limit int) ([]models.Post, error)

	// GetGlobalRecentBefore pages backwards through the global timeline.
	GetGlobalRecentBefore(ctx context.Context, before time.Time, beforeId string, limit int) ([]models.Post, error)

	// GetMentionedPosts returns the most recent non-tombstoned posts that
	// mention the viewer.
	GetMentionedPosts(ctx context.Context, viewerId string, limit int) ([]models.Post, error)

	GetPostByID(ctx context.Context, id string) (models.Post, bool, error)
	GetPostsByIDs(ctx context.Context, ids []string) (map[string]models.Post, error)
	GetUsers(ctx context.Context, ids []string) (map[string]models.User, error)

	// GetInteractedPostIDs reports which of the given posts the viewer has an
	// interaction edge of the given kind on, in one round trip.
	GetInteractedPostIDs(ctx context.Context, viewerId string, kind models.InteractionKind, postIds []string) (map[string]bool, error)

	// GetRepostedPostIDs reports which of the given posts the viewer has a
	// non-tombstoned repost or quote of, in one round trip.
	GetRepostedPostIDs(ctx context.Context, viewerId string, postIds []string) (map[string]bool, error)
}
