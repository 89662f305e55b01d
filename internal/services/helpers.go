package services

import (
	"context"
	"strconv"
	"strings"
)

func ensuredContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// normalisePage clamps page numbers to the range the upstream accepts.
func normalisePage(page int) int {
	if page < 1 {
		return 1
	}
	if page > 500 {
		return 500
	}
	return page
}

// normaliseWindow validates the trending time window, defaulting to "week".
func normaliseWindow(window string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(window)) {
	case "", "week":
		return "week", true
	case "day":
		return "day", true
	default:
		return "", false
	}
}

// normaliseKind validates a media kind string.
func normaliseKind(kind string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "movie":
		return "movie", true
	case "tv":
		return "tv", true
	default:
		return "", false
	}
}

// normaliseListPage clamps pagination for the user-list endpoints.
func normaliseListPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func pageQueryValue(page int) string {
	return strconv.Itoa(normalisePage(page))
}
