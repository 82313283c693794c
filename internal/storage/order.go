package storage

import (
	"fmt"
	"strings"

	"taskdesk/internal/models"
)

// PriorityRank returns a SQL CASE expression ranking column by models.Priorities,
// most urgent first. Unknown values sort last.
func PriorityRank(column string) string {
	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(column)
	for i, p := range models.Priorities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, i)
	}
	fmt.Fprintf(&b, " ELSE %d END", len(models.Priorities))
	return b.String()
}

// TaskOrder is the ORDER BY clause for task listings over alias t.
var TaskOrder = PriorityRank("t.priority") + ", t.created_at ASC, t.id ASC"
