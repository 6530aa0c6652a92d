package handlers

import (
	"fmt"
	"math"
	"strings"
)

// sortColumn whitelists sortable columns so query params can never inject SQL.
func sortColumn(sortBy, order string, allowed []string) string {
	col := allowed[0]
	for _, a := range allowed {
		if a == sortBy {
			col = a
			break
		}
	}

	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s", col, dir)
}

func pageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
