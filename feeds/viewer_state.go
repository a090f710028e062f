package feeds

import (
	"context"
	"moltfeed/storage"
	"moltfeed/storage/models"

	"github.com/samber/lo"
)

// Resolver decorates candidate posts with per-viewer interaction flags and
// one level of quoted/reposted detail. All lookups are batched over the whole
// candidate list: one round trip per flag kind, one for referenced posts, one
// for authors.
type Resolver struct {
	store storage.Reader
}

func NewResolver(store storage.Reader) *Resolver {
	return &Resolver{store: store}
}

type viewerFlags struct {
	liked      map[string]bool
	reposted   map[string]bool
	bookmarked map[string]bool
}

// Resolve keeps the input order. An empty viewerId yields all-false flags.
func (r *Resolver) Resolve(ctx context.Context, posts []models.Post, viewerId string) ([]PostSummary, error) {
	if len(posts) == 0 {
		return []PostSummary{}, nil
	}

	quotedIds := lo.FilterMap(posts, func(p models.Post, _ int) (string, bool) {
		return p.QuotedID, p.HasQuotedTarget()
	})
	quoted, err := r.store.GetPostsByIDs(ctx, lo.Uniq(quotedIds))
	if err != nil {
		return nil, unavailable(err)
	}

	authorIds := lo.Map(posts, func(p models.Post, _ int) string {
		return p.AuthorID
	})
	for _, post := range quoted {
		authorIds = append(authorIds, post.AuthorID)
	}
	authors, err := r.store.GetUsers(ctx, lo.Uniq(authorIds))
	if err != nil {
		return nil, unavailable(err)
	}

	allIds := lo.Map(posts, func(p models.Post, _ int) string {
		return p.ID
	})
	allIds = lo.Uniq(append(allIds, quotedIds...))

	flags, err := r.lookupFlags(ctx, viewerId, allIds)
	if err != nil {
		return nil, err
	}

	result := make([]PostSummary, 0, len(posts))
	for i := range posts {
		summary := r.summarize(&posts[i], authors, flags)

		if posts[i].HasQuotedTarget() {
			target, ok := quoted[posts[i].QuotedID]
			if !ok || target.Tombstoned {
				summary.Quoted = &PostSummary{
					ID:          posts[i].QuotedID,
					Unavailable: true,
				}
			} else {
				// One level only. A quoted quote keeps its QuotedID but is
				// never walked further.
				nested := r.summarize(&target, authors, flags)
				summary.Quoted = &nested
			}
		}
		result = append(result, summary)
	}
	return result, nil
}

func (r *Resolver) lookupFlags(ctx context.Context, viewerId string, postIds []string) (viewerFlags, error) {
	if viewerId == "" {
		return viewerFlags{}, nil
	}

	liked, err := r.store.GetInteractedPostIDs(ctx, viewerId, models.InteractionLike, postIds)
	if err != nil {
		return viewerFlags{}, unavailable(err)
	}
	bookmarked, err := r.store.GetInteractedPostIDs(ctx, viewerId, models.InteractionBookmark, postIds)
	if err != nil {
		return viewerFlags{}, unavailable(err)
	}
	reposted, err := r.store.GetRepostedPostIDs(ctx, viewerId, postIds)
	if err != nil {
		return viewerFlags{}, unavailable(err)
	}

	return viewerFlags{
		liked:      liked,
		reposted:   reposted,
		bookmarked: bookmarked,
	}, nil
}

func (r *Resolver) summarize(post *models.Post, authors map[string]models.User, flags viewerFlags) PostSummary {
	author := authors[post.AuthorID]
	summary := PostSummary{
		ID: post.ID,
		Author: AuthorSummary{
			ID:          post.AuthorID,
			Handle:      author.Handle,
			DisplayName: author.DisplayName,
			AvatarUrl:   author.AvatarUrl,
		},
		Body:         post.Body,
		ParentID:     post.ParentID,
		QuotedID:     post.QuotedID,
		LikeCount:    post.LikeCount,
		ReplyCount:   post.ReplyCount,
		RepostCount:  post.RepostCount,
		CreatedAt:    post.CreatedAt,
		IsEdited:     post.Edited,
		IsLiked:      flags.liked[post.ID],
		IsReposted:   flags.reposted[post.ID],
		IsBookmarked: flags.bookmarked[post.ID],
	}
	if post.Edited && !post.EditedAt.IsZero() {
		editedAt := post.EditedAt
		summary.EditedAt = &editedAt
	}
	return summary
}
