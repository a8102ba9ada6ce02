package lending

import (
	"strings"
)

/***** ItemSearch *****/

// ItemSearch holds the criteria for a catalog search.
// An empty search matches the whole catalog.
type ItemSearch struct {
	titleTerm   string
	creatorTerm string
}

// TitleTerm returns the title substring to match, or "" when unfiltered.
func (s ItemSearch) TitleTerm() string {
	return s.titleTerm
}

// CreatorTerm returns the creator substring to match, or "" when unfiltered.
func (s ItemSearch) CreatorTerm() string {
	return s.creatorTerm
}

// IsEmpty reports whether the search carries no criteria at all.
func (s ItemSearch) IsEmpty() bool {
	return s.titleTerm == "" && s.creatorTerm == ""
}

// Matches reports whether the item satisfies all criteria of the search.
// Matching is case-insensitive substring matching; absent criteria match anything.
func (s ItemSearch) Matches(item Item) bool {
	if s.titleTerm != "" && !strings.Contains(strings.ToLower(item.Title), strings.ToLower(s.titleTerm)) {
		return false
	}

	if s.creatorTerm != "" && !strings.Contains(strings.ToLower(item.Creator), strings.ToLower(s.creatorTerm)) {
		return false
	}

	return true
}

/***** ItemSearchBuilder *****/

// ItemSearchBuilder builds a generic item search to be used both for in-memory
// matching and by DB type-specific engines to build queries for the specific
// query language, e.g.: Postgres, Mysql, ...
// It is designed with the idea to only allow "useful" search combinations:
//
//   - empty search (full catalog)
//   - (title contains)
//   - (creator contains)
//   - (title contains AND creator contains)
type ItemSearchBuilder interface {
	// Matching starts building the search criteria.
	Matching() EmptyItemSearchBuilder

	// MatchingAnyItem directly creates an empty ItemSearch.
	MatchingAnyItem() ItemSearch
}

type EmptyItemSearchBuilder interface {
	// TitleContains sets the title criterion.
	//
	// It sanitizes the input, dropping a term that is blank after trimming.
	TitleContains(term string) ItemSearchBuilderLackingCreator

	// CreatorContains sets the creator criterion.
	//
	// It sanitizes the input, dropping a term that is blank after trimming.
	CreatorContains(term string) ItemSearchBuilderLackingTitle
}

type ItemSearchBuilderLackingCreator interface {
	AndCreatorContains(term string) CompletedItemSearchBuilder

	// Finalize returns the ItemSearch.
	Finalize() ItemSearch
}

type ItemSearchBuilderLackingTitle interface {
	AndTitleContains(term string) CompletedItemSearchBuilder

	// Finalize returns the ItemSearch.
	Finalize() ItemSearch
}

type CompletedItemSearchBuilder interface {
	// Finalize returns the ItemSearch.
	Finalize() ItemSearch
}

// itemSearchBuilder implements all the interfaces of ItemSearchBuilder
type itemSearchBuilder struct {
	search ItemSearch
}

// BuildItemSearch creates an ItemSearchBuilder which must eventually be
// finalized with Finalize() or MatchingAnyItem().
func BuildItemSearch() ItemSearchBuilder {
	return itemSearchBuilder{}
}

// Matching starts building the search criteria.
func (sb itemSearchBuilder) Matching() EmptyItemSearchBuilder {
	return sb
}

// MatchingAnyItem directly creates an empty ItemSearch.
func (sb itemSearchBuilder) MatchingAnyItem() ItemSearch {
	return sb.search
}

// TitleContains sets the title criterion, dropping a blank term.
func (sb itemSearchBuilder) TitleContains(term string) ItemSearchBuilderLackingCreator {
	sb.search.titleTerm = strings.TrimSpace(term)

	return sb
}

// AndTitleContains sets the title criterion, dropping a blank term.
func (sb itemSearchBuilder) AndTitleContains(term string) CompletedItemSearchBuilder {
	sb.search.titleTerm = strings.TrimSpace(term)

	return sb
}

// CreatorContains sets the creator criterion, dropping a blank term.
func (sb itemSearchBuilder) CreatorContains(term string) ItemSearchBuilderLackingTitle {
	sb.search.creatorTerm = strings.TrimSpace(term)

	return sb
}

// AndCreatorContains sets the creator criterion, dropping a blank term.
func (sb itemSearchBuilder) AndCreatorContains(term string) CompletedItemSearchBuilder {
	sb.search.creatorTerm = strings.TrimSpace(term)

	return sb
}

// Finalize returns the ItemSearch.
func (sb itemSearchBuilder) Finalize() ItemSearch {
	return sb.search
}
