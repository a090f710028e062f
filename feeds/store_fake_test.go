package feeds

import (
	"context"
	"fmt"
	"moltfeed/storage/models"
	"sort"
	"strings"
	"time"
)

// fakeStore mirrors the SQL layer's listing semantics in memory so the core
// can be exercised without postgres.
type fakeStore struct {
	posts        map[string]models.Post
	users        map[string]models.User
	follows      []models.Follow
	interactions []models.Interaction
	mentions     map[string][]string // post id -> mentioned user ids

	failWith error
	calls    map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		posts:    make(map[string]models.Post),
		users:    make(map[string]models.User),
		mentions: make(map[string][]string),
		calls:    make(map[string]int),
	}
}

func (f *fakeStore) addUser(id string, activated bool) {
	f.users[id] = models.User{ID: id, Handle: id + ".example", Activated: activated}
}

func (f *fakeStore) addPost(post models.Post) {
	f.posts[post.ID] = post
}

func (f *fakeStore) addFollow(followerId, followeeId string) {
	f.follows = append(f.follows, models.Follow{FollowerID: followerId, FolloweeID: followeeId})
}

func (f *fakeStore) addLike(actorId, postId string, createdAt time.Time) {
	f.interactions = append(f.interactions, models.Interaction{
		ActorID: actorId, PostID: postId, Kind: models.InteractionLike, CreatedAt: createdAt,
	})
}

func (f *fakeStore) addBookmark(actorId, postId string, createdAt time.Time) {
	f.interactions = append(f.interactions, models.Interaction{
		ActorID: actorId, PostID: postId, Kind: models.InteractionBookmark, CreatedAt: createdAt,
	})
}

func (f *fakeStore) track(name string) error {
	f.calls[name]++
	return f.failWith
}

func (f *fakeStore) followeesOf(viewerId string) map[string]bool {
	result := make(map[string]bool)
	for _, follow := range f.follows {
		if follow.FollowerID == viewerId {
			result[follow.FolloweeID] = true
		}
	}
	return result
}

func sortPostsDesc(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return strings.Compare(posts[i].ID, posts[j].ID) > 0
	})
}

func capPosts(posts []models.Post, limit int) []models.Post {
	if len(posts) > limit {
		return posts[:limit]
	}
	return posts
}

func (f *fakeStore) GetFollowees(ctx context.Context, viewerId string) ([]string, error) {
	if err := f.track("GetFollowees"); err != nil {
		return nil, err
	}
	ids := make([]string, 0)
	for id := range f.followeesOf(viewerId) {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeStore) GetAuthorPostsSince(ctx context.Context, authorIds []string, since time.Time, limit int) ([]models.Post, error) {
	if err := f.track("GetAuthorPostsSince"); err != nil {
		return nil, err
	}
	authors := make(map[string]bool, len(authorIds))
	for _, id := range authorIds {
		authors[id] = true
	}

	result := make([]models.Post, 0)
	for _, post := range f.posts {
		if authors[post.AuthorID] && !post.Tombstoned && f.users[post.AuthorID].Activated &&
			post.CreatedAt.After(since) {
			result = append(result, post)
		}
	}
	sortPostsDesc(result)
	return capPosts(result, limit), nil
}

func (f *fakeStore) GetAuthorPostsBefore(ctx context.Context, authorIds []string, before time.Time, beforeId string, limit int) ([]models.Post, error) {
	if err := f.track("GetAuthorPostsBefore"); err != nil {
		return nil, err
	}
	authors := make(map[string]bool, len(authorIds))
	for _, id := range authorIds {
		authors[id] = true
	}

	result := make([]models.Post, 0)
	for _, post := range f.posts {
		if !authors[post.AuthorID] || post.Tombstoned {
			continue
		}
		if post.CreatedAt.Before(before) ||
			(post.CreatedAt.Equal(before) && (beforeId == "" || post.ID < beforeId)) {
			result = append(result, post)
		}
	}
	sortPostsDesc(result)
	return capPosts(result, limit), nil
}

func (f *fakeStore) GetEngagedSince(ctx context.Context, since time.Time) ([]models.Post, error) {
	if err := f.track("GetEngagedSince"); err != nil {
		return nil, err
	}
	result := make([]models.Post, 0)
	for _, post := range f.posts {
		if post.Tombstoned || !f.users[post.AuthorID].Activated || !post.CreatedAt.After(since) {
			continue
		}
		if post.LikeCount > 0 || post.ReplyCount > 0 || post.RepostCount > 0 {
			result = append(result, post)
		}
	}
	sortPostsDesc(result)
	return result, nil
}

func (f *fakeStore) GetRecentLikedAuthors(ctx context.Context, viewerId string, since time.Time, limit int) ([]string, error) {
	if err := f.track("GetRecentLikedAuthors"); err != nil {
		return nil, err
	}
	lastLiked := make(map[string]time.Time)
	for _, edge := range f.interactions {
		if edge.Kind != models.InteractionLike || edge.ActorID != viewerId || !edge.CreatedAt.After(since) {
			continue
		}
		authorId := f.posts[edge.PostID].AuthorID
		if edge.CreatedAt.After(lastLiked[authorId]) {
			lastLiked[authorId] = edge.CreatedAt
		}
	}

	authorIds := make([]string, 0, len(lastLiked))
	for id := range lastLiked {
		authorIds = append(authorIds, id)
	}
	sort.Slice(authorIds, func(i, j int) bool {
		return lastLiked[authorIds[i]].After(lastLiked[authorIds[j]])
	})
	if len(authorIds) > limit {
		authorIds = authorIds[:limit]
	}
	return authorIds, nil
}

func (f *fakeStore) GetFolloweeLikedPosts(ctx context.Context, viewerId string, since time.Time) ([]models.Post, error) {
	if err := f.track("GetFolloweeLikedPosts"); err != nil {
		return nil, err
	}
	followees := f.followeesOf(viewerId)

	lastLiked := make(map[string]time.Time)
	for _, edge := range f.interactions {
		if edge.Kind != models.InteractionLike || !followees[edge.ActorID] || !edge.CreatedAt.After(since) {
			continue
		}
		post, ok := f.posts[edge.PostID]
		if !ok || post.Tombstoned || followees[post.AuthorID] || post.AuthorID == viewerId ||
			!f.users[post.AuthorID].Activated {
			continue
		}
		if edge.CreatedAt.After(lastLiked[post.ID]) {
			lastLiked[post.ID] = edge.CreatedAt
		}
	}

	result := make([]models.Post, 0, len(lastLiked))
	for id := range lastLiked {
		result = append(result, f.posts[id])
	}
	sort.Slice(result, func(i, j int) bool {
		if !lastLiked[result[i].ID].Equal(lastLiked[result[j].ID]) {
			return lastLiked[result[i].ID].After(lastLiked[result[j].ID])
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (f *fakeStore) GetGlobalRecent(ctx context.Context, limit int) ([]models.Post, error) {
	if err := f.track("GetGlobalRecent"); err != nil {
		return nil, err
	}
	result := make([]models.Post, 0)
	for _, post := range f.posts {
		if !post.Tombstoned && f.users[post.AuthorID].Activated {
			result = append(result, post)
		}
	}
	sortPostsDesc(result)
	return capPosts(result, limit), nil
}

func (f *fakeStore) GetGlobalRecentBefore(ctx context.Context, before time.Time, beforeId string, limit int) ([]models.Post, error) {
	if err := f.track("GetGlobalRecentBefore"); err != nil {
		return nil, err
	}
	result := make([]models.Post, 0)
	for _, post := range f.posts {
		if post.Tombstoned || !f.users[post.AuthorID].Activated {
			continue
		}
		if post.CreatedAt.Before(before) ||
			(post.CreatedAt.Equal(before) && (beforeId == "" || post.ID < beforeId)) {
			result = append(result, post)
		}
	}
	sortPostsDesc(result)
	return capPosts(result, limit), nil
}

func (f *fakeStore) GetMentionedPosts(ctx context.Context, viewerId string, limit int) ([]models.Post, error) {
	if err := f.track("GetMentionedPosts"); err != nil {
		return nil, err
	}
	result := make([]models.Post, 0)
	for postId, userIds := range f.mentions {
		post, ok := f.posts[postId]
		if !ok || post.Tombstoned {
			continue
		}
		for _, userId := range userIds {
			if userId == viewerId {
				result = append(result, post)
				break
			}
		}
	}
	sortPostsDesc(result)
	return capPosts(result, limit), nil
}

func (f *fakeStore) GetPostByID(ctx context.Context, id string) (models.Post, bool, error) {
	if err := f.track("GetPostByID"); err != nil {
		return models.Post{}, false, err
	}
	post, ok := f.posts[id]
	return post, ok, nil
}

func (f *fakeStore) GetPostsByIDs(ctx context.Context, ids []string) (map[string]models.Post, error) {
	if err := f.track("GetPostsByIDs"); err != nil {
		return nil, err
	}
	result := make(map[string]models.Post, len(ids))
	for _, id := range ids {
		if post, ok := f.posts[id]; ok {
			result[id] = post
		}
	}
	return result, nil
}

func (f *fakeStore) GetUsers(ctx context.Context, ids []string) (map[string]models.User, error) {
	if err := f.track("GetUsers"); err != nil {
		return nil, err
	}
	result := make(map[string]models.User, len(ids))
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			result[id] = user
		}
	}
	return result, nil
}

func (f *fakeStore) GetInteractedPostIDs(ctx context.Context, viewerId string, kind models.InteractionKind, postIds []string) (map[string]bool, error) {
	if err := f.track("GetInteractedPostIDs"); err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(postIds))
	for _, id := range postIds {
		wanted[id] = true
	}

	result := make(map[string]bool)
	for _, edge := range f.interactions {
		if edge.ActorID == viewerId && edge.Kind == kind && wanted[edge.PostID] {
			result[edge.PostID] = true
		}
	}
	return result, nil
}

func (f *fakeStore) GetRepostedPostIDs(ctx context.Context, viewerId string, postIds []string) (map[string]bool, error) {
	if err := f.track("GetRepostedPostIDs"); err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(postIds))
	for _, id := range postIds {
		wanted[id] = true
	}

	result := make(map[string]bool)
	for _, post := range f.posts {
		if post.AuthorID == viewerId && !post.Tombstoned && post.HasQuotedTarget() && wanted[post.QuotedID] {
			result[post.QuotedID] = true
		}
	}
	return result, nil
}

// fakeTrendingCache is a process-local stand-in for the redis cache.
type fakeTrendingCache struct {
	entries map[string][]models.Post
}

func newFakeTrendingCache() *fakeTrendingCache {
	return &fakeTrendingCache{entries: make(map[string][]models.Post)}
}

func (c *fakeTrendingCache) key(window time.Duration, limit int) string {
	return fmt.Sprintf("%s::%d", window, limit)
}

func (c *fakeTrendingCache) Get(window time.Duration, limit int) ([]models.Post, bool) {
	posts, ok := c.entries[c.key(window, limit)]
	return posts, ok
}

func (c *fakeTrendingCache) Set(window time.Duration, limit int, posts []models.Post) {
	c.entries[c.key(window, limit)] = posts
}
