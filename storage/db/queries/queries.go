package queries

import (
	"moltfeed/storage/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postColumns = `
	posts.id, posts.author_id, posts.kind, posts.body,
	COALESCE(posts.parent_id, ''), COALESCE(posts.quoted_id, ''),
	posts.created_at, posts.edited_at, posts.edited,
	posts.like_count, posts.reply_count, posts.repost_count, posts.tombstoned`

// Queries implements storage.Reader over a postgres pool.
type Queries struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

func scanPost(row pgx.Row) (models.Post, error) {
	var post models.Post
	var editedAt pgtype.Timestamptz

	err := row.Scan(
		&post.ID, &post.AuthorID, &post.Kind, &post.Body,
		&post.ParentID, &post.QuotedID,
		&post.CreatedAt, &editedAt, &post.Edited,
		&post.LikeCount, &post.ReplyCount, &post.RepostCount, &post.Tombstoned,
	)
	if err != nil {
		return models.Post{}, err
	}
	if editedAt.Valid {
		post.EditedAt = editedAt.Time
	}
	return post, nil
}

func collectPosts(rows pgx.Rows) ([]models.Post, error) {
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
