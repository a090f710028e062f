package queries

import (
	"context"
	"moltfeed/storage/models"

	"github.com/samber/lo"
)

func (q *Queries) GetFollowees(ctx context.Context, viewerId string) ([]string, error) {
	rows, err := q.pool.Query(
		ctx,
		`SELECT follower_id, followee_id, created_at
		 FROM follows
		 WHERE follower_id = $1`,
		viewerId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	follows := make([]models.Follow, 0)
	for rows.Next() {
		var follow models.Follow
		if err := rows.Scan(&follow.FollowerID, &follow.FolloweeID, &follow.CreatedAt); err != nil {
			return nil, err
		}
		follows = append(follows, follow)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lo.Map(follows, func(f models.Follow, _ int) string {
		return f.FolloweeID
	}), nil
}
