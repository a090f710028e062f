package feeds

import (
	"context"
	"fmt"
	"moltfeed/storage"
	"moltfeed/storage/models"
	"time"
)

const (
	MinFeedLimit = 1
	MaxFeedLimit = 100
)

// TimelineService exposes the read operations. Every operation is stateless
// and side-effect-free; every returned candidate list goes through the
// resolver so all feeds share identical decoration semantics.
type TimelineService struct {
	store    storage.Reader
	scorer   *Scorer
	blender  *Blender
	resolver *Resolver
	clock    func() time.Time
}

func NewTimelineService(store storage.Reader, scorer *Scorer) *TimelineService {
	return &TimelineService{
		store:    store,
		scorer:   scorer,
		blender:  NewBlender(store),
		resolver: NewResolver(store),
		clock:    time.Now,
	}
}

func validateLimit(limit int) error {
	if limit < MinFeedLimit || limit > MaxFeedLimit {
		return fmt.Errorf("%w: limit %d outside [%d,%d]", ErrInvalidArgument, limit, MinFeedLimit, MaxFeedLimit)
	}
	return nil
}

// Home returns the viewer's own posts and their followees' posts, most recent
// first, paginated by an opaque (createdAt, id) cursor.
func (s *TimelineService) Home(ctx context.Context, viewerId string, limit int, cursor string) (Response, error) {
	if err := validateLimit(limit); err != nil {
		return Response{}, err
	}
	if viewerId == "" {
		return Response{}, fmt.Errorf("%w: home timeline requires a viewer", ErrInvalidArgument)
	}
	if cursor == CursorEOF {
		return Response{Cursor: CursorEOF, Posts: []PostSummary{}}, nil
	}

	before := s.clock()
	beforeId := ""
	if cursor != "" {
		var err error
		before, beforeId, err = parseCursor(cursor)
		if err != nil {
			return Response{}, err
		}
	}

	followeeIds, err := s.store.GetFollowees(ctx, viewerId)
	if err != nil {
		return Response{}, unavailable(err)
	}
	authorIds := append(followeeIds, viewerId)

	posts, err := s.store.GetAuthorPostsBefore(ctx, authorIds, before, beforeId, limit)
	if err != nil {
		return Response{}, unavailable(err)
	}
	return s.respond(ctx, posts, viewerId, true)
}

// Global returns the reverse-chronological firehose of activated accounts.
// The viewer is optional and only affects decoration.
func (s *TimelineService) Global(ctx context.Context, viewerId string, limit int, cursor string) (Response, error) {
	if err := validateLimit(limit); err != nil {
		return Response{}, err
	}
	if cursor == CursorEOF {
		return Response{Cursor: CursorEOF, Posts: []PostSummary{}}, nil
	}

	var posts []models.Post
	var err error
	if cursor == "" {
		posts, err = s.store.GetGlobalRecent(ctx, limit)
	} else {
		var before time.Time
		var beforeId string
		before, beforeId, err = parseCursor(cursor)
		if err != nil {
			return Response{}, err
		}
		posts, err = s.store.GetGlobalRecentBefore(ctx, before, beforeId, limit)
	}
	if err != nil {
		return Response{}, unavailable(err)
	}
	return s.respond(ctx, posts, viewerId, true)
}

// Trending returns the decayed-engagement ranking over the default window.
func (s *TimelineService) Trending(ctx context.Context, viewerId string, limit int) (Response, error) {
	if err := validateLimit(limit); err != nil {
		return Response{}, err
	}

	posts, err := s.scorer.Trending(ctx, TrendingWindow, limit, s.clock())
	if err != nil {
		return Response{}, err
	}
	return s.respond(ctx, posts, viewerId, false)
}

// ForYou returns the blended personalized feed. Unlike the other optional
// viewer feeds, an anonymous request is an error, not a degraded blend.
func (s *TimelineService) ForYou(ctx context.Context, viewerId string, limit int) (Response, error) {
	if err := validateLimit(limit); err != nil {
		return Response{}, err
	}
	if viewerId == "" {
		return Response{}, fmt.Errorf("%w: personalized feed requires a viewer", ErrInvalidArgument)
	}

	posts, err := s.blender.ForYou(ctx, viewerId, limit, s.clock())
	if err != nil {
		return Response{}, err
	}
	return s.respond(ctx, posts, viewerId, false)
}

// Mentions returns the most recent posts mentioning the viewer.
func (s *TimelineService) Mentions(ctx context.Context, viewerId string, limit int) (Response, error) {
	if err := validateLimit(limit); err != nil {
		return Response{}, err
	}
	if viewerId == "" {
		return Response{}, fmt.Errorf("%w: mentions timeline requires a viewer", ErrInvalidArgument)
	}

	posts, err := s.store.GetMentionedPosts(ctx, viewerId, limit)
	if err != nil {
		return Response{}, unavailable(err)
	}
	return s.respond(ctx, posts, viewerId, false)
}

// GetPost returns a single decorated post. Absent and tombstoned posts are
// both misses.
func (s *TimelineService) GetPost(ctx context.Context, id, viewerId string) (PostSummary, error) {
	post, found, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return PostSummary{}, unavailable(err)
	}
	if !found || post.Tombstoned {
		return PostSummary{}, fmt.Errorf("%w: post %s", ErrNotFound, id)
	}

	summaries, err := s.resolver.Resolve(ctx, []models.Post{post}, viewerId)
	if err != nil {
		return PostSummary{}, err
	}
	return summaries[0], nil
}

func (s *TimelineService) respond(ctx context.Context, posts []models.Post, viewerId string, paginated bool) (Response, error) {
	summaries, err := s.resolver.Resolve(ctx, posts, viewerId)
	if err != nil {
		return Response{}, err
	}

	cursor := ""
	if paginated {
		cursor = CursorEOF
		if len(posts) > 0 {
			last := posts[len(posts)-1]
			cursor = formatCursor(last.CreatedAt, last.ID)
		}
	}
	return Response{Cursor: cursor, Posts: summaries}, nil
}
