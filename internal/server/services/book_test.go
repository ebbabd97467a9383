package services

import (
	"context"
	"testing"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/server/models"
)

// -------- catalog fakes --------

type fakeAuthorsRepo struct {
	byID    map[int64]*models.Author
	byName  map[string]*models.Author
	nextID  int64
	created []string
	listed  []models.Author
	listErr error
}

func (f *fakeAuthorsRepo) List(ctx context.Context) ([]models.Author, error) {
	return f.listed, f.listErr
}

func (f *fakeAuthorsRepo) Get(ctx context.Context, id int64) (*models.Author, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeAuthorsRepo) GetByName(ctx context.Context, name string) (*models.Author, error) {
	if a, ok := f.byName[name]; ok {
		return a, nil
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeAuthorsRepo) Create(ctx context.Context, name string) (*models.Author, error) {
	f.nextID++
	f.created = append(f.created, name)
	return &models.Author{ID: f.nextID + 100, Name: name}, nil
}

type fakeBooksRepo struct {
	byID      map[int64]*models.Book
	listed    []models.Book
	listErr   error
	created   *models.Book
	updateErr error
	deleted   []int64
	deleteErr error
}

func (f *fakeBooksRepo) List(ctx context.Context, authorID int64) ([]models.Book, error) {
	return f.listed, f.listErr
}

func (f *fakeBooksRepo) Get(ctx context.Context, id int64) (*models.Book, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeBooksRepo) Create(ctx context.Context, b *models.Book) (*models.Book, error) {
	b.ID = 900
	f.created = b
	return b, nil
}

func (f *fakeBooksRepo) Update(ctx context.Context, b *models.Book) (*models.Book, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return b, nil
}

func (f *fakeBooksRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newBookService(t *testing.T, m *fakeRepoManager) (*BookService, func()) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	mock.MatchExpectationsInOrder(false)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectRollback()
	authors := NewAuthorService(db, m)
	return NewBookService(db, m, authors), func() { db.Close() }
}

// -------- books --------

func TestBookGet_NotFound(t *testing.T) {
	m := &fakeRepoManager{u: &fakeUsersRepo{}, a: &fakeAuthorsRepo{}, b: &fakeBooksRepo{}}
	s, done := newBookService(t, m)
	defer done()

	_, err := s.Get(context.Background(), 404)
	wantCode(t, err, apperr.CodeNotFound, "Book not found")
}

func TestBookAdd_CreatesAuthorByName(t *testing.T) {
	a := &fakeAuthorsRepo{}
	b := &fakeBooksRepo{}
	m := &fakeRepoManager{u: &fakeUsersRepo{}, a: a, b: b}
	s, done := newBookService(t, m)
	defer done()

	got, err := s.Add(context.Background(), BookInput{
		Title: "Dune", Year: 1965, Status: models.BookStatusPublished, AuthorName: "Frank Herbert",
	})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if got.ID != 900 || got.Author == nil || got.Author.Name != "Frank Herbert" {
		t.Fatalf("unexpected book: %+v", got)
	}
	if len(a.created) != 1 {
		t.Fatalf("expected one new author, got %v", a.created)
	}
}

func TestBookAdd_ReusesAuthorByName(t *testing.T) {
	a := &fakeAuthorsRepo{byName: map[string]*models.Author{
		"Frank Herbert": {ID: 6, Name: "Frank Herbert"},
	}}
	b := &fakeBooksRepo{}
	m := &fakeRepoManager{u: &fakeUsersRepo{}, a: a, b: b}
	s, done := newBookService(t, m)
	defer done()

	got, err := s.Add(context.Background(), BookInput{
		Title: "Dune Messiah", Year: 1969, Status: models.BookStatusDraft, AuthorName: "Frank Herbert",
	})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if got.AuthorID != 6 {
		t.Fatalf("expected existing author reused: %+v", got)
	}
	if len(a.created) != 0 {
		t.Fatalf("no author should be created: %v", a.created)
	}
}

func TestBookAdd_PrefersAuthorID(t *testing.T) {
	a := &fakeAuthorsRepo{byID: map[int64]*models.Author{
		5: {ID: 5, Name: "J. R. R. Tolkien"},
	}}
	b := &fakeBooksRepo{}
	m := &fakeRepoManager{u: &fakeUsersRepo{}, a: a, b: b}
	s, done := newBookService(t, m)
	defer done()

	got, err := s.Add(context.Background(), BookInput{
		Title: "The Hobbit", Year: 1937, Status: models.BookStatusPublished,
		AuthorID: 5, AuthorName: "ignored",
	})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if got.AuthorID != 5 || got.Author.Name != "J. R. R. Tolkien" {
		t.Fatalf("unexpected author: %+v", got)
	}
}

func TestBookAdd_UnknownAuthorIDFallsBackToName(t *testing.T) {
	a := &fakeAuthorsRepo{}
	b := &fakeBooksRepo{}
	m := &fakeRepoManager{u: &fakeUsersRepo{}, a: a, b: b}
	s, done := newBookService(t, m)
	defer done()

	got, err := s.Add(context.Background(), BookInput{
		Title: "Dune", Year: 1965, Status: models.BookStatusPublished,
		AuthorID: 9999, AuthorName: "Frank Herbert",
	})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if got.Author.Name != "Frank Herbert" || len(a.created) != 1 {
		t.Fatalf("expected author created by name: %+v", got)
	}
}

func TestBookAdd_Validation(t *testing.T) {
	m := &fakeRepoManager{u: &fakeUsersRepo{}, a: &fakeAuthorsRepo{}, b: &fakeBooksRepo{}}
	s, done := newBookService(t, m)
	defer done()

	cases := []struct {
		name  string
		input BookInput
	}{
		{"empty title", BookInput{Title: "  ", Year: 2000, Status: models.BookStatusDraft, AuthorName: "A"}},
		{"bad status", BookInput{Title: "T", Year: 2000, Status: "archived", AuthorName: "A"}},
		{"missing author", BookInput{Title: "T", Year: 2000, Status: models.BookStatusDraft}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Add(context.Background(), tc.input)
			wantCode(t, err, apperr.CodeInvalidInput, "")
		})
	}
}

func TestBookUpdate_NotFound(t *testing.T) {
	b := &fakeBooksRepo{updateErr: apperr.ErrNotFound}
	m := &fakeRepoManager{u: &fakeUsersRepo{}, a: &fakeAuthorsRepo{}, b: b}
	s, done := newBookService(t, m)
	defer done()

	_, err := s.Update(context.Background(), 404, BookInput{
		Title: "T", Year: 2000, Status: models.BookStatusDraft, AuthorName: "A",
	})
	wantCode(t, err, apperr.CodeNotFound, "Book not found")
}

func TestBookDelete(t *testing.T) {
	b := &fakeBooksRepo{}
	m := &fakeRepoManager{u: &fakeUsersRepo{}, a: &fakeAuthorsRepo{}, b: b}
	s, done := newBookService(t, m)
	defer done()

	if err := s.Delete(context.Background(), 2); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(b.deleted) != 1 || b.deleted[0] != 2 {
		t.Fatalf("unexpected deletes: %v", b.deleted)
	}
}

func TestBookDelete_NotFound(t *testing.T) {
	b := &fakeBooksRepo{deleteErr: apperr.ErrNotFound}
	m := &fakeRepoManager{u: &fakeUsersRepo{}, a: &fakeAuthorsRepo{}, b: b}
	s, done := newBookService(t, m)
	defer done()

	err := s.Delete(context.Background(), 404)
	wantCode(t, err, apperr.CodeNotFound, "Book not found")
}

// -------- authors --------

func TestAuthorList(t *testing.T) {
	a := &fakeAuthorsRepo{listed: []models.Author{{ID: 5, Name: "J. R. R. Tolkien"}}}
	m := &fakeRepoManager{u: &fakeUsersRepo{}, a: a, b: &fakeBooksRepo{}}

	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewAuthorService(db, m)
	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "J. R. R. Tolkien" {
		t.Fatalf("unexpected authors: %+v", got)
	}
}
