package utils

import (
	rndm "math/rand"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

func GetUUID() string {
	return uuid.New().String()
}

// --- Query Helpers ---

type QueryOptions struct {
	Page   int
	Limit  int
	Status string
	State  string
}

// maxPageSize bounds ?limit= so one request cannot pull an unbounded
// slice of the collection.
const maxPageSize = 100

func ParseQueryOptions(r *http.Request) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return QueryOptions{
		Page:   page,
		Limit:  limit,
		Status: q.Get("status"),
		State:  q.Get("state"),
	}
}
