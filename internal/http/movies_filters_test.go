package httpserver

import (
	"net/url"
	"testing"
)

func TestBuildMovieListQuery(t *testing.T) {
	values, _ := url.ParseQuery("page=3&page_size=25&title= Incep &release_year=2010&genre= sci ")

	page, pageSize, filters, err := buildMovieListQuery(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 3 {
		t.Fatalf("page = %d, want 3", page)
	}
	if pageSize != 25 {
		t.Fatalf("page_size = %d, want 25", pageSize)
	}
	if filters.Title == nil || *filters.Title != "Incep" {
		t.Fatalf("title not trimmed: %+v", filters.Title)
	}
	if filters.ReleaseYear == nil || *filters.ReleaseYear != 2010 {
		t.Fatalf("release_year parse failed: %+v", filters.ReleaseYear)
	}
	if filters.Genre == nil || *filters.Genre != "sci" {
		t.Fatalf("genre not trimmed: %+v", filters.Genre)
	}
}

func TestBuildMovieListQuery_Defaults(t *testing.T) {
	page, pageSize, filters, err := buildMovieListQuery(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || pageSize != 10 {
		t.Fatalf("defaults = (%d, %d), want (1, 10)", page, pageSize)
	}
	if filters.Title != nil || filters.ReleaseYear != nil || filters.Genre != nil {
		t.Fatalf("filters should be empty: %+v", filters)
	}
}

func TestBuildMovieListQuery_Invalid(t *testing.T) {
	cases := []string{
		"page=0",
		"page=abc",
		"page=-1",
		"page_size=0",
		"page_size=101",
		"page_size=xyz",
		"release_year=1799",
		"release_year=2101",
		"release_year=soon",
	}
	for _, raw := range cases {
		values, _ := url.ParseQuery(raw)
		if _, _, _, err := buildMovieListQuery(values); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
