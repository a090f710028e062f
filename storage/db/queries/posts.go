package queries

import (
	"context"
	"errors"
	"moltfeed/storage/models"
	"time"

	"github.com/jackc/pgx/v5"
)

func (q *Queries) GetAuthorPostsSince(
	ctx context.Context,
	authorIds []string,
	since time.Time,
	limit int,
) ([]models.Post, error) {
	if len(authorIds) == 0 {
		return []models.Post{}, nil
	}

	rows, err := q.pool.Query(
		ctx,
		`SELECT `+postColumns+`
		 FROM posts
		 JOIN users ON users.id = posts.author_id
		 WHERE posts.author_id = ANY($1) AND NOT posts.tombstoned AND users.activated
		   AND posts.created_at > $2
		 ORDER BY posts.created_at DESC, posts.id DESC
		 LIMIT $3`,
		authorIds, since, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (q *Queries) GetAuthorPostsBefore(
	ctx context.Context,
	authorIds []string,
	before time.Time,
	beforeId string,
	limit int,
) ([]models.Post, error) {
	if len(authorIds) == 0 {
		return []models.Post{}, nil
	}

	rows, err := q.pool.Query(
		ctx,
		`SELECT `+postColumns+`
		 FROM posts
		 WHERE author_id = ANY($1) AND NOT tombstoned
		   AND (created_at < $2 OR (created_at = $2 AND ($3 = '' OR id < $3)))
		 ORDER BY created_at DESC, id DESC
		 LIMIT $4`,
		authorIds, before, beforeId, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (q *Queries) GetEngagedSince(ctx context.Context, since time.Time) ([]models.Post, error) {
	rows, err := q.pool.Query(
		ctx,
		`SELECT `+postColumns+`
		 FROM posts
		 JOIN users ON users.id = posts.author_id
		 WHERE NOT posts.tombstoned AND users.activated AND posts.created_at > $1
		   AND (posts.like_count > 0 OR posts.reply_count > 0 OR posts.repost_count > 0)`,
		since,
	)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (q *Queries) GetGlobalRecent(ctx context.Context, limit int) ([]models.Post, error) {
	rows, err := q.pool.Query(
		ctx,
		`SELECT `+postColumns+`
		 FROM posts
		 JOIN users ON users.id = posts.author_id
		 WHERE NOT posts.tombstoned AND users.activated
		 ORDER BY posts.created_at DESC, posts.id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (q *Queries) GetGlobalRecentBefore(
	ctx context.Context,
	before time.Time,
	beforeId string,
	limit int,
) ([]models.Post, error) {
	rows, err := q.pool.Query(
		ctx,
		`SELECT `+postColumns+`
		 FROM posts
		 JOIN users ON users.id = posts.author_id
		 WHERE NOT posts.tombstoned AND users.activated
		   AND (posts.created_at < $1 OR (posts.created_at = $1 AND ($2 = '' OR posts.id < $2)))
		 ORDER BY posts.created_at DESC, posts.id DESC
		 LIMIT $3`,
		before, beforeId, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (q *Queries) GetMentionedPosts(ctx context.Context, viewerId string, limit int) ([]models.Post, error) {
	rows, err := q.pool.Query(
		ctx,
		`SELECT `+postColumns+`
		 FROM posts
		 JOIN mentions ON mentions.post_id = posts.id
		 WHERE mentions.mentioned_user_id = $1 AND NOT posts.tombstoned
		 ORDER BY posts.created_at DESC, posts.id DESC
		 LIMIT $2`,
		viewerId, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (q *Queries) GetPostByID(ctx context.Context, id string) (models.Post, bool, error) {
	row := q.pool.QueryRow(
		ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`,
		id,
	)
	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Post{}, false, nil
	}
	if err != nil {
		return models.Post{}, false, err
	}
	return post, true, nil
}

func (q *Queries) GetPostsByIDs(ctx context.Context, ids []string) (map[string]models.Post, error) {
	result := make(map[string]models.Post, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := q.pool.Query(
		ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	posts, err := collectPosts(rows)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		result[post.ID] = post
	}
	return result, nil
}
