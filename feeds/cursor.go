package feeds

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const CursorEOF = "eof"

// Cursors are "createdAtMicros::postId". The pair gives a strict,
// insertion-stable position in reverse-chronological order.
func formatCursor(createdAt time.Time, id string) string {
	return fmt.Sprintf("%d::%s", createdAt.UnixMicro(), id)
}

func parseCursor(cursor string) (time.Time, string, error) {
	parts := strings.Split(cursor, "::")
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("%w: malformed cursor %q", ErrInvalidArgument, cursor)
	}

	createdAtMicros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: malformed cursor %q", ErrInvalidArgument, cursor)
	}
	return time.UnixMicro(createdAtMicros).UTC(), parts[1], nil
}
