package models

// BookStatus is the publication state of a catalog entry.
type BookStatus string

const (
	BookStatusPublished BookStatus = "published"
	BookStatusDraft     BookStatus = "draft"
)

// Valid reports whether s is one of the known statuses.
func (s BookStatus) Valid() bool {
	return s == BookStatusPublished || s == BookStatusDraft
}

type Author struct {
	ID   int64
	Name string
}

type Book struct {
	ID       int64
	Title    string
	Year     int
	Status   BookStatus
	AuthorID int64
	Author   *Author
}
