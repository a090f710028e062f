package queries

import (
	"context"
	"moltfeed/storage/models"
)

func (q *Queries) GetUsers(ctx context.Context, ids []string) (map[string]models.User, error) {
	result := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := q.pool.Query(
		ctx,
		`SELECT id, handle, COALESCE(display_name, ''), COALESCE(avatar_url, ''), activated, created_at
		 FROM users
		 WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID, &user.Handle, &user.DisplayName, &user.AvatarUrl,
			&user.Activated, &user.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result[user.ID] = user
	}
	return result, rows.Err()
}
