package songs

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TitleSorter compares song titles with locale-aware, case-insensitive
// collation, matching how the persisted catalog and search lists are ordered.
// A TitleSorter is not safe for concurrent use; create one per operation.
type TitleSorter struct {
	c *collate.Collator
}

// NewTitleSorter creates a title comparer.
func NewTitleSorter() *TitleSorter {
	return &TitleSorter{c: collate.New(language.English, collate.Loose)}
}

// Compare returns -1, 0, or 1 depending on whether a sorts before, equal to,
// or after b.
func (ts *TitleSorter) Compare(a, b string) int {
	return ts.c.CompareString(a, b)
}

// Less reports whether a sorts before b.
func (ts *TitleSorter) Less(a, b string) bool {
	return ts.Compare(a, b) < 0
}
