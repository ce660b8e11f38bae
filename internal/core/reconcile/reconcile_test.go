// Package reconcile_test contains tests for the reconcile package.
package reconcile_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/getver-format/internal/core/crate"
	"github.com/nightconcept/getver-format/internal/core/reconcile"
)

func TestReconcile_FoundAndMissing(t *testing.T) {
	t.Parallel()
	set := crate.NewInputSet([]string{"serde", "tokio", "nonexistent_pkg"})
	output := "serde: 1.0.210\ntokio: 1.40.0\nthe crate 'nonexistent-pkg' doesn't exist\n"

	res := reconcile.Reconcile(set, output)

	assert.Equal(t, []crate.Crate{
		{Name: "serde", Version: "1.0.210"},
		{Name: "tokio", Version: "1.40.0"},
	}, res.Found)
	assert.Equal(t, []string{"nonexistent-pkg"}, res.NotFound)
	assert.Empty(t, res.Unresolved)
	assert.Empty(t, res.Skipped)
}

func TestReconcile_FoundOrderFollowsInputNotOutput(t *testing.T) {
	t.Parallel()
	set := crate.NewInputSet([]string{"tokio", "anyhow", "serde"})
	output := "serde: 1.0.210\nanyhow: 1.0.89\ntokio: 1.40.0\n"

	res := reconcile.Reconcile(set, output)

	require.Len(t, res.Found, 3)
	assert.Equal(t, "tokio", res.Found[0].Name)
	assert.Equal(t, "anyhow", res.Found[1].Name)
	assert.Equal(t, "serde", res.Found[2].Name)
}

func TestReconcile_NotFoundIsSortedAndUnique(t *testing.T) {
	t.Parallel()
	set := crate.NewInputSet([]string{"zeta", "alpha", "mid"})
	output := "the crate 'zeta' doesn't exist\n" +
		"the crate 'mid' doesn't exist\n" +
		"the crate 'alpha' doesn't exist\n" +
		"the crate 'zeta' doesn't exist\n"

	res := reconcile.Reconcile(set, output)

	assert.Nil(t, res.Found)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, res.NotFound)
	assert.True(t, sort.StringsAreSorted(res.NotFound))
}

func TestReconcile_NothingMissingYieldsNil(t *testing.T) {
	t.Parallel()
	set := crate.NewInputSet([]string{"serde"})

	res := reconcile.Reconcile(set, "serde: 1.0.210\n")

	assert.Nil(t, res.NotFound)
}

func TestReconcile_EchoedSpellingReplacesRequestedEntry(t *testing.T) {
	t.Parallel()
	// The user typed a hyphen; crates.io knows the crate with an underscore.
	set := crate.NewInputSet([]string{"serde-json", "rand"})
	output := "serde_json: 1.0.128\nrand: 0.8.5\n"

	res := reconcile.Reconcile(set, output)

	assert.Equal(t, []crate.Crate{
		{Name: "serde_json", Version: "1.0.128"},
		{Name: "rand", Version: "0.8.5"},
	}, res.Found)
	assert.Empty(t, res.Unresolved)
}

func TestReconcile_MissingWithOtherSpellingRemovesEntry(t *testing.T) {
	t.Parallel()
	set := crate.NewInputSet([]string{"foo-bar", "serde"})
	output := "the crate 'foo_bar' doesn't exist\nserde: 1.0.0\n"

	res := reconcile.Reconcile(set, output)

	assert.Equal(t, []crate.Crate{{Name: "serde", Version: "1.0.0"}}, res.Found)
	assert.Equal(t, []string{"foo_bar"}, res.NotFound)
	assert.Empty(t, res.Unresolved, "a crate reported missing is not unresolved")
}

func TestReconcile_MissingNameNotRequestedDoesNotPanic(t *testing.T) {
	t.Parallel()
	set := crate.NewInputSet([]string{"serde"})
	output := "the crate 'ghost' doesn't exist\nserde: 1.0.0\n"

	res := reconcile.Reconcile(set, output)

	assert.Equal(t, []string{"ghost"}, res.NotFound)
	assert.Len(t, res.Found, 1)
}

func TestReconcile_NoNameInBothCollections(t *testing.T) {
	t.Parallel()
	set := crate.NewInputSet([]string{"flaky", "gone"})
	output := "the crate 'flaky' doesn't exist\nflaky: 2.0.0\ngone: 1.0.0\nthe crate 'gone' doesn't exist\n"

	res := reconcile.Reconcile(set, output)

	assert.Equal(t, []crate.Crate{{Name: "flaky", Version: "2.0.0"}}, res.Found)
	assert.Equal(t, []string{"gone"}, res.NotFound)
	for _, c := range res.Found {
		assert.NotContains(t, res.NotFound, c.Name)
	}
}

func TestReconcile_UnrequestedFoundCratesAreAppended(t *testing.T) {
	t.Parallel()
	set := crate.NewInputSet([]string{"serde"})
	output := "extra: 0.1.0\nserde: 1.0.0\n"

	res := reconcile.Reconcile(set, output)

	assert.Equal(t, []crate.Crate{
		{Name: "serde", Version: "1.0.0"},
		{Name: "extra", Version: "0.1.0"},
	}, res.Found)
}

func TestReconcile_UnresolvedAndSkippedLines(t *testing.T) {
	t.Parallel()
	set := crate.NewInputSet([]string{"serde", "silent"})
	output := "Fetching versions...\r\nserde: 1.0.0\r\n\r\nthe crate doesn't exist\n"

	res := reconcile.Reconcile(set, output)

	assert.Equal(t, []crate.Crate{{Name: "serde", Version: "1.0.0"}}, res.Found)
	assert.Equal(t, []string{"silent"}, res.Unresolved)
	assert.Equal(t, []string{"Fetching versions...", "the crate doesn't exist"}, res.Skipped)
	assert.Nil(t, res.NotFound)
}

func TestReconcile_VersionKeepsTextAfterFirstSeparator(t *testing.T) {
	t.Parallel()
	set := crate.NewInputSet([]string{"odd"})

	res := reconcile.Reconcile(set, "odd: 1.0.0: extra\n")

	require.Len(t, res.Found, 1)
	assert.Equal(t, "1.0.0: extra", res.Found[0].Version)
}

func TestReconcile_DoesNotMutateInputSet(t *testing.T) {
	t.Parallel()
	set := crate.NewInputSet([]string{"serde", "gone"})

	_ = reconcile.Reconcile(set, "serde_x: 1.0.0\nthe crate 'gone' doesn't exist\n")

	assert.Equal(t, []string{"serde", "gone"}, set.Names())
}
