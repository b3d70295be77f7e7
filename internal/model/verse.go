package model

import "fmt"

// Testament identifies which half of the canon a book belongs to
type Testament string

const (
	TestamentOld Testament = "OT"
	TestamentNew Testament = "NT"
)

// Verse is a single parsed verse line. Immutable once parsed.
type Verse struct {
	Testament      Testament `json:"testament"`
	CanonicalOrder int       `json:"canonical_order"` // 1-66 across both testaments
	BookName       string    `json:"book_name"`
	BookAbbr       string    `json:"book_abbr"` // abbreviation as printed in the verse line
	Chapter        int       `json:"chapter"`
	Verse          int       `json:"verse"`
	Text           string    `json:"text"` // raw text, heading markers preserved
}

// Reference renders the canonical "book chapter:verse" form used in all outputs
func (v Verse) Reference() string {
	return fmt.Sprintf("%s %d:%d", v.BookName, v.Chapter, v.Verse)
}

// Book is one parsed book file with its verses sorted by (chapter, verse)
type Book struct {
	Testament      Testament
	CanonicalOrder int
	Name           string
	Verses         []Verse
}

// Corpus is the complete parsed text corpus, books in canonical order
type Corpus struct {
	Books []Book
}

// ByBook returns verses keyed by book name
func (c *Corpus) ByBook() map[string][]Verse {
	out := make(map[string][]Verse, len(c.Books))
	for _, b := range c.Books {
		out[b.Name] = b.Verses
	}
	return out
}

// CanonicalOrders returns the canonical order of every book by name
func (c *Corpus) CanonicalOrders() map[string]int {
	out := make(map[string]int, len(c.Books))
	for _, b := range c.Books {
		out[b.Name] = b.CanonicalOrder
	}
	return out
}

// Testaments returns the testament of every book by name
func (c *Corpus) Testaments() map[string]Testament {
	out := make(map[string]Testament, len(c.Books))
	for _, b := range c.Books {
		out[b.Name] = b.Testament
	}
	return out
}
