package objects

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Errors returned by Library.
var (
	ErrDuplicateItem = errors.New("item already in library")
	ErrItemNotFound  = errors.New("item not found")
	ErrCheckedOut    = errors.New("item is already checked out")
	ErrNotCheckedOut = errors.New("item is not checked out")
)

// itemNamespace scopes item ids so the same title always maps to the same id.
var itemNamespace = uuid.MustParse("6f1c1b7e-3a52-4c1e-9d7a-2b8f0e4d5a91")

// Item is anything a library can lend.
type Item interface {
	ID() uuid.UUID
	Title() string
	Info() string
	loan() *loanState
}

// loanState is embedded by every item and carries the shared behaviour.
type loanState struct {
	id         uuid.UUID
	title      string
	checkedOut bool
}

func newLoanState(title string) loanState {
	return loanState{id: uuid.NewSHA1(itemNamespace, []byte(title)), title: title}
}

func (l *loanState) ID() uuid.UUID    { return l.id }
func (l *loanState) Title() string    { return l.title }
func (l *loanState) loan() *loanState { return l }

func (l *loanState) status() string {
	if l.checkedOut {
		return "checked out"
	}
	return "available"
}

// Book is a lendable book.
type Book struct {
	loanState
	Author string
	Pages  int
}

// NewBook returns a book whose id is derived from its title.
func NewBook(title, author string, pages int) *Book {
	return &Book{loanState: newLoanState(title), Author: author, Pages: pages}
}

func (b *Book) Info() string {
	return fmt.Sprintf("Book %q by %s, %d pages, %s", b.title, b.Author, b.Pages, b.status())
}

// DVD is a lendable film.
type DVD struct {
	loanState
	Director string
	Minutes  int
}

// NewDVD returns a DVD whose id is derived from its title.
func NewDVD(title, director string, minutes int) *DVD {
	return &DVD{loanState: newLoanState(title), Director: director, Minutes: minutes}
}

func (d *DVD) Info() string {
	return fmt.Sprintf("DVD %q directed by %s, %d minutes, %s", d.title, d.Director, d.Minutes, d.status())
}

// Library keeps items in insertion order.
type Library struct {
	Name  string
	items []Item
	index map[uuid.UUID]int
}

// NewLibrary returns an empty library.
func NewLibrary(name string) *Library {
	return &Library{Name: name, index: make(map[uuid.UUID]int)}
}

// Add registers item. Adding the same id twice fails with ErrDuplicateItem.
func (l *Library) Add(item Item) error {
	if _, ok := l.index[item.ID()]; ok {
		return fmt.Errorf("add %q: %w", item.Title(), ErrDuplicateItem)
	}
	l.index[item.ID()] = len(l.items)
	l.items = append(l.items, item)
	return nil
}

func (l *Library) find(id uuid.UUID) (Item, error) {
	i, ok := l.index[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrItemNotFound)
	}
	return l.items[i], nil
}

// CheckOut lends the item with the given id.
func (l *Library) CheckOut(id uuid.UUID) error {
	item, err := l.find(id)
	if err != nil {
		return err
	}
	st := item.loan()
	if st.checkedOut {
		return fmt.Errorf("check out %q: %w", st.title, ErrCheckedOut)
	}
	st.checkedOut = true
	return nil
}

// Return takes back the item with the given id.
func (l *Library) Return(id uuid.UUID) error {
	item, err := l.find(id)
	if err != nil {
		return err
	}
	st := item.loan()
	if !st.checkedOut {
		return fmt.Errorf("return %q: %w", st.title, ErrNotCheckedOut)
	}
	st.checkedOut = false
	return nil
}

// Items returns every item in insertion order.
func (l *Library) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Available returns the items not checked out, in insertion order.
func (l *Library) Available() []Item {
	var out []Item
	for _, it := range l.items {
		if !it.loan().checkedOut {
			out = append(out, it)
		}
	}
	return out
}
