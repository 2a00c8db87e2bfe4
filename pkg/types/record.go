package types

// Record is a path with the tags it was classified with, as persisted by
// the Tag action and read back by a sweep.
type Record struct {
	ID           string   `json:"id"`
	Path         string   `json:"path"`
	Tags         []string `json:"tags"`
	LastModified int64    `json:"last_modified"` // unix seconds, 0 when unknown
}
