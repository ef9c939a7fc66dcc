package wordlist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/shinji-kodama/repolint/internal/model"
)

func newEnglishChecker() *OrderChecker {
	return NewOrderChecker(language.English)
}

func TestOrderChecker_SortedList(t *testing.T) {
	list := &List{Source: "cspell.json", Words: []string{"apple", "banana", "cherry"}}

	mismatch, dup, err := newEnglishChecker().CheckList(list)
	require.NoError(t, err)
	assert.Nil(t, mismatch)
	assert.Nil(t, dup)
}

// TestOrderChecker_FirstMismatch verifies the ["b","a"] example: the first
// differing position is reported with the actual and expected words.
func TestOrderChecker_FirstMismatch(t *testing.T) {
	list := &List{Source: "cspell.json", Words: []string{"b", "a"}}

	mismatch, dup, err := newEnglishChecker().CheckList(list)
	require.NoError(t, err)
	require.NotNil(t, mismatch)
	assert.Nil(t, dup)

	assert.Equal(t, model.OrderMismatch{Source: "cspell.json", Index: 0, Actual: "b", Expected: "a"}, *mismatch)
}

func TestOrderChecker_MismatchLaterInList(t *testing.T) {
	list := &List{Source: "words.yaml", Words: []string{"alpha", "beta", "delta", "gamma", "epsilon"}}

	mismatch, _, err := newEnglishChecker().CheckList(list)
	require.NoError(t, err)
	require.NotNil(t, mismatch)
	assert.Equal(t, 3, mismatch.Index)
	assert.Equal(t, "gamma", mismatch.Actual)
	assert.Equal(t, "epsilon", mismatch.Expected)
}

// TestOrderChecker_LocaleAware verifies that case does not dominate the
// order the way a byte-wise sort would.
func TestOrderChecker_LocaleAware(t *testing.T) {
	c := newEnglishChecker()

	// Byte order would put "Banana" before "apple".
	assert.Equal(t, []string{"apple", "Banana", "cherry"}, c.Expected([]string{"Banana", "cherry", "apple"}))

	mismatch, _, err := c.CheckList(&List{Source: "cspell.json", Words: []string{"apple", "Banana", "cherry"}})
	require.NoError(t, err)
	assert.Nil(t, mismatch, "locale order accepts mixed case without byte ordering")

	mismatch, _, err = c.CheckList(&List{Source: "cspell.json", Words: []string{"Banana", "apple", "cherry"}})
	require.NoError(t, err)
	require.NotNil(t, mismatch)
	assert.Equal(t, "Banana", mismatch.Actual)
	assert.Equal(t, "apple", mismatch.Expected)
}

func TestOrderChecker_Duplicates(t *testing.T) {
	list := &List{Source: "cspell.json", Words: []string{"apple", "apple", "banana"}}

	mismatch, dup, err := newEnglishChecker().CheckList(list)
	require.NoError(t, err)
	assert.Nil(t, mismatch, "a sorted list with repeats is still in order")
	require.NotNil(t, dup)
	assert.Equal(t, model.DuplicateWord{Source: "cspell.json", Index: 1, Word: "apple"}, *dup)
}

func TestOrderChecker_UnsortedWithDuplicates(t *testing.T) {
	list := &List{Source: "cspell.json", Words: []string{"banana", "apple", "banana"}}

	mismatch, dup, err := newEnglishChecker().CheckList(list)
	require.NoError(t, err)
	require.NotNil(t, mismatch)
	require.NotNil(t, dup)
	assert.Equal(t, 2, dup.Index)
}

func TestOrderChecker_Expected_DoesNotMutate(t *testing.T) {
	words := []string{"c", "b", "a"}
	_ = newEnglishChecker().Expected(words)
	assert.Equal(t, []string{"c", "b", "a"}, words)
}

func TestOrderChecker_EmptyList(t *testing.T) {
	mismatch, dup, err := newEnglishChecker().CheckList(&List{Source: "cspell.json"})
	require.NoError(t, err)
	assert.Nil(t, mismatch)
	assert.Nil(t, dup)
}

// TestCheckAll verifies that every list is checked before reporting.
func TestCheckAll(t *testing.T) {
	lists := []*List{
		{Source: "a.json", Words: []string{"b", "a"}},
		{Source: "b.json", Words: []string{"a", "b"}},
		{Source: "c.yaml", Words: []string{"z", "y"}},
		{Source: "d.json", Words: []string{"x", "x"}},
	}

	report, err := newEnglishChecker().CheckAll(lists)
	require.NoError(t, err)
	assert.True(t, report.HasViolations())

	require.Len(t, report.Mismatches, 2)
	assert.Equal(t, "a.json", report.Mismatches[0].Source)
	assert.Equal(t, "c.yaml", report.Mismatches[1].Source)

	require.Len(t, report.Duplicates, 1)
	assert.Equal(t, "d.json", report.Duplicates[0].Source)
}

func TestCheckAll_Clean(t *testing.T) {
	report, err := newEnglishChecker().CheckAll([]*List{{Source: "a.json", Words: []string{"a", "b"}}})
	require.NoError(t, err)
	assert.False(t, report.HasViolations())
}

// TestCompareLists_LengthChanged covers the internal-error path, which the
// public API cannot reach because sorting a copy preserves length.
func TestCompareLists_LengthChanged(t *testing.T) {
	_, err := compareLists("cspell.json", []string{"a", "b"}, []string{"a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLengthChanged))
}

func TestCompareLists_Identical(t *testing.T) {
	mismatch, err := compareLists("cspell.json", []string{"a", "b"}, []string{"a", "b"})
	require.NoError(t, err)
	assert.Nil(t, mismatch)
}

func TestFindDuplicate(t *testing.T) {
	assert.Nil(t, findDuplicate("s", nil))
	assert.Nil(t, findDuplicate("s", []string{"a", "A", "b"}), "case variants are distinct words")

	dup := findDuplicate("s", []string{"a", "b", "c", "b", "a"})
	require.NotNil(t, dup)
	assert.Equal(t, 3, dup.Index)
	assert.Equal(t, "b", dup.Word)
}
