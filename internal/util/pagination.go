package util

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxResultWindow is Elasticsearch's default index.max_result_window.
	MaxResultWindow = 10000
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Calculate clamps page and size and returns the matching offset and limit.
// from+limit never exceeds MaxResultWindow.
func Calculate(page, size int) (p, from, limit int) {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if last := MaxResultWindow / size; page > last {
		page = last
	}
	from = (page - 1) * size
	return page, from, size
}
