package queries

import (
	"context"
	"moltfeed/storage/models"
	"time"
)

func (q *Queries) GetInteractedPostIDs(
	ctx context.Context,
	viewerId string,
	kind models.InteractionKind,
	postIds []string,
) (map[string]bool, error) {
	result := make(map[string]bool, len(postIds))
	if len(postIds) == 0 {
		return result, nil
	}

	rows, err := q.pool.Query(
		ctx,
		`SELECT post_id
		 FROM interactions
		 WHERE actor_id = $1 AND kind = $2 AND post_id = ANY($3)`,
		viewerId, kind, postIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var postId string
		if err := rows.Scan(&postId); err != nil {
			return nil, err
		}
		result[postId] = true
	}
	return result, rows.Err()
}

func (q *Queries) GetRepostedPostIDs(
	ctx context.Context,
	viewerId string,
	postIds []string,
) (map[string]bool, error) {
	result := make(map[string]bool, len(postIds))
	if len(postIds) == 0 {
		return result, nil
	}

	rows, err := q.pool.Query(
		ctx,
		`SELECT quoted_id
		 FROM posts
		 WHERE author_id = $1 AND NOT tombstoned
		   AND kind IN ('repost', 'quote') AND quoted_id = ANY($2)`,
		viewerId, postIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var postId string
		if err := rows.Scan(&postId); err != nil {
			return nil, err
		}
		result[postId] = true
	}
	return result, rows.Err()
}

func (q *Queries) GetRecentLikedAuthors(
	ctx context.Context,
	viewerId string,
	since time.Time,
	limit int,
) ([]string, error) {
	rows, err := q.pool.Query(
		ctx,
		`SELECT posts.author_id
		 FROM interactions
		 JOIN posts ON posts.id = interactions.post_id
		 WHERE interactions.actor_id = $1 AND interactions.kind = 'like'
		   AND interactions.created_at > $2
		 GROUP BY posts.author_id
		 ORDER BY MAX(interactions.created_at) DESC
		 LIMIT $3`,
		viewerId, since, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authorIds := make([]string, 0, limit)
	for rows.Next() {
		var authorId string
		if err := rows.Scan(&authorId); err != nil {
			return nil, err
		}
		authorIds = append(authorIds, authorId)
	}
	return authorIds, rows.Err()
}

func (q *Queries) GetFolloweeLikedPosts(
	ctx context.Context,
	viewerId string,
	since time.Time,
) ([]models.Post, error) {
	rows, err := q.pool.Query(
		ctx,
		`SELECT `+postColumns+`
		 FROM posts
		 JOIN users ON users.id = posts.author_id
		 JOIN (
		     SELECT post_id, MAX(created_at) AS last_liked_at
		     FROM interactions
		     WHERE kind = 'like' AND created_at > $2
		       AND actor_id IN (SELECT followee_id FROM follows WHERE follower_id = $1)
		     GROUP BY post_id
		 ) likes ON likes.post_id = posts.id
		 WHERE users.activated
		   AND posts.author_id NOT IN (
		       SELECT followee_id FROM follows WHERE follower_id = $1)
		   AND posts.author_id <> $1
		   AND NOT posts.tombstoned
		 ORDER BY likes.last_liked_at DESC, posts.id`,
		viewerId, since,
	)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}
