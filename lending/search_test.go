package lending_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circulib/lending-ledger-go/lending"
)

func Test_ItemSearchBuilder_ValidCombinations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() lending.ItemSearch
		validate func(t *testing.T, search lending.ItemSearch)
	}{
		{
			name: "matching_any_item_creates_empty_search",
			build: func() lending.ItemSearch {
				return lending.BuildItemSearch().MatchingAnyItem()
			},
			validate: func(t *testing.T, s lending.ItemSearch) {
				assert.True(t, s.IsEmpty())
				assert.Empty(t, s.TitleTerm())
				assert.Empty(t, s.CreatorTerm())
			},
		},
		{
			name: "title_only_search",
			build: func() lending.ItemSearch {
				return lending.BuildItemSearch().
					Matching().
					TitleContains("sea").
					Finalize()
			},
			validate: func(t *testing.T, s lending.ItemSearch) {
				assert.False(t, s.IsEmpty())
				assert.Equal(t, "sea", s.TitleTerm())
				assert.Empty(t, s.CreatorTerm())
			},
		},
		{
			name: "creator_only_search",
			build: func() lending.ItemSearch {
				return lending.BuildItemSearch().
					Matching().
					CreatorContains("hemingway").
					Finalize()
			},
			validate: func(t *testing.T, s lending.ItemSearch) {
				assert.False(t, s.IsEmpty())
				assert.Empty(t, s.TitleTerm())
				assert.Equal(t, "hemingway", s.CreatorTerm())
			},
		},
		{
			name: "title_and_creator_search",
			build: func() lending.ItemSearch {
				return lending.BuildItemSearch().
					Matching().
					TitleContains("sea").
					AndCreatorContains("hemingway").
					Finalize()
			},
			validate: func(t *testing.T, s lending.ItemSearch) {
				assert.Equal(t, "sea", s.TitleTerm())
				assert.Equal(t, "hemingway", s.CreatorTerm())
			},
		},
		{
			name: "creator_and_title_search",
			build: func() lending.ItemSearch {
				return lending.BuildItemSearch().
					Matching().
					CreatorContains("hemingway").
					AndTitleContains("sea").
					Finalize()
			},
			validate: func(t *testing.T, s lending.ItemSearch) {
				assert.Equal(t, "sea", s.TitleTerm())
				assert.Equal(t, "hemingway", s.CreatorTerm())
			},
		},
		{
			name: "blank_terms_are_dropped",
			build: func() lending.ItemSearch {
				return lending.BuildItemSearch().
					Matching().
					TitleContains("   ").
					AndCreatorContains("\t").
					Finalize()
			},
			validate: func(t *testing.T, s lending.ItemSearch) {
				assert.True(t, s.IsEmpty())
			},
		},
		{
			name: "terms_are_trimmed",
			build: func() lending.ItemSearch {
				return lending.BuildItemSearch().
					Matching().
					TitleContains("  sea ").
					Finalize()
			},
			validate: func(t *testing.T, s lending.ItemSearch) {
				assert.Equal(t, "sea", s.TitleTerm())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			search := tc.build()
			tc.validate(t, search)
		})
	}
}

func Test_ItemSearch_Matches(t *testing.T) {
	item, err := lending.BuildItem(uuid.New(), "The Old Man and the Sea", "Ernest Hemingway")
	require.NoError(t, err)

	tests := []struct {
		name        string
		search      lending.ItemSearch
		shouldMatch bool
	}{
		{
			name:        "empty_search_matches_anything",
			search:      lending.BuildItemSearch().MatchingAnyItem(),
			shouldMatch: true,
		},
		{
			name:        "title_substring_matches_case_insensitively",
			search:      lending.BuildItemSearch().Matching().TitleContains("oLd MaN").Finalize(),
			shouldMatch: true,
		},
		{
			name:        "creator_substring_matches_case_insensitively",
			search:      lending.BuildItemSearch().Matching().CreatorContains("HEMINGWAY").Finalize(),
			shouldMatch: true,
		},
		{
			name: "both_terms_must_match",
			search: lending.BuildItemSearch().
				Matching().
				TitleContains("sea").
				AndCreatorContains("steinbeck").
				Finalize(),
			shouldMatch: false,
		},
		{
			name:        "non_substring_does_not_match",
			search:      lending.BuildItemSearch().Matching().TitleContains("moby").Finalize(),
			shouldMatch: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.shouldMatch, tc.search.Matches(item))
		})
	}
}
