package wordlist

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shinji-kodama/repolint/internal/model"
)

// ErrLengthChanged means the expected list came back with a different
// length than the loaded one. Sorting a copy cannot do that, so it signals
// a bug rather than a content problem.
var ErrLengthChanged = errors.New("word list length changed between load and comparison")

// OrderChecker verifies word lists against locale-aware collation.
// It is not safe for concurrent use: the underlying collator keeps
// scratch buffers.
type OrderChecker struct {
	collator *collate.Collator
}

// NewOrderChecker returns a checker collating by the given locale.
func NewOrderChecker(tag language.Tag) *OrderChecker {
	return &OrderChecker{collator: collate.New(tag)}
}

// Expected returns a sorted copy of words. The sort is stable so entries
// that collate equal keep their relative order.
func (c *OrderChecker) Expected(words []string) []string {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return c.collator.CompareString(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// CheckList compares a list with its expected order and looks for
// repeated entries. Either result may be nil.
func (c *OrderChecker) CheckList(list *List) (*model.OrderMismatch, *model.DuplicateWord, error) {
	mismatch, err := compareLists(list.Source, list.Words, c.Expected(list.Words))
	if err != nil {
		return nil, nil, err
	}
	return mismatch, findDuplicate(list.Source, list.Words), nil
}

// CheckAll checks every list and aggregates the violations. An internal
// error stops the run immediately.
func (c *OrderChecker) CheckAll(lists []*List) (*model.WordListReport, error) {
	report := &model.WordListReport{}
	for _, list := range lists {
		mismatch, dup, err := c.CheckList(list)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", list.Source, err)
		}
		if mismatch != nil {
			report.Mismatches = append(report.Mismatches, *mismatch)
		}
		if dup != nil {
			report.Duplicates = append(report.Duplicates, *dup)
		}
	}
	return report, nil
}

// compareLists returns the first position where actual and expected
// differ, or nil when they are identical.
func compareLists(source string, actual, expected []string) (*model.OrderMismatch, error) {
	if len(actual) != len(expected) {
		return nil, fmt.Errorf("%w: loaded %d, expected %d", ErrLengthChanged, len(actual), len(expected))
	}

	for i := range actual {
		if actual[i] != expected[i] {
			return &model.OrderMismatch{
				Source:   source,
				Index:    i,
				Actual:   actual[i],
				Expected: expected[i],
			}, nil
		}
	}
	return nil, nil
}

// findDuplicate returns the first entry that repeats an earlier one.
func findDuplicate(source string, words []string) *model.DuplicateWord {
	seen := make(map[string]struct{}, len(words))
	for i, w := range words {
		if _, ok := seen[w]; ok {
			return &model.DuplicateWord{Source: source, Index: i, Word: w}
		}
		seen[w] = struct{}{}
	}
	return nil
}
