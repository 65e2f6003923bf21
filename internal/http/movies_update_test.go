package httpserver

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"
)

func decodeUpdateRequest(t *testing.T, payload string) movieUpdateRequest {
	t.Helper()
	var req movieUpdateRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal %q: %v", payload, err)
	}
	return req
}

func TestMovieUpdateRequest_AbsentVsNull(t *testing.T) {
	req := decodeUpdateRequest(t, `{"release_year": null, "cast": "New cast"}`)

	if req.Title.Set {
		t.Fatalf("absent title should not be set")
	}
	if !req.ReleaseYear.Set || req.ReleaseYear.Value != nil {
		t.Fatalf("explicit null release_year should be set with nil value: %+v", req.ReleaseYear)
	}
	if !req.Cast.Set || req.Cast.Value == nil || *req.Cast.Value != "New cast" {
		t.Fatalf("cast decode failed: %+v", req.Cast)
	}

	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput: %v", err)
	}
	if input.Title != nil {
		t.Fatalf("title should stay unchanged")
	}
	if !input.ReleaseYear.Set || input.ReleaseYear.Value != nil {
		t.Fatalf("release_year clear not propagated: %+v", input.ReleaseYear)
	}
	if !input.Cast.Set || input.Cast.Value == nil {
		t.Fatalf("cast not propagated: %+v", input.Cast)
	}
}

func TestMovieUpdateRequest_NullTitleRejected(t *testing.T) {
	req := decodeUpdateRequest(t, `{"title": null}`)
	if _, err := req.toInput(); err == nil {
		t.Fatalf("null title must be rejected")
	}
}

func TestMovieUpdateRequest_NullDirectorRejected(t *testing.T) {
	req := decodeUpdateRequest(t, `{"director_id": null}`)
	if _, err := req.toInput(); err == nil {
		t.Fatalf("null director_id must be rejected")
	}
}

func TestMovieUpdateRequest_ReleaseYearRange(t *testing.T) {
	req := decodeUpdateRequest(t, `{"release_year": 1700}`)
	if _, err := req.toInput(); err == nil {
		t.Fatalf("out-of-range release_year must be rejected")
	}

	req = decodeUpdateRequest(t, `{"release_year": 1999}`)
	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput: %v", err)
	}
	if !input.ReleaseYear.Set || input.ReleaseYear.Value == nil || *input.ReleaseYear.Value != 1999 {
		t.Fatalf("release_year not propagated: %+v", input.ReleaseYear)
	}
}

func TestMovieUpdateRequest_GenreSemantics(t *testing.T) {
	// Empty list means "clear all associations".
	req := decodeUpdateRequest(t, `{"genres": []}`)
	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput: %v", err)
	}
	if input.Genres == nil || len(*input.Genres) != 0 {
		t.Fatalf("empty genres should request a clearing sync: %+v", input.Genres)
	}

	// Null genres means "leave unchanged", same as absent.
	req = decodeUpdateRequest(t, `{"genres": null}`)
	input, err = req.toInput()
	if err != nil {
		t.Fatalf("toInput: %v", err)
	}
	if input.Genres != nil {
		t.Fatalf("null genres should leave the set unchanged")
	}

	req = decodeUpdateRequest(t, `{"genres": [1, 2]}`)
	input, err = req.toInput()
	if err != nil {
		t.Fatalf("toInput: %v", err)
	}
	if input.Genres == nil || len(*input.Genres) != 2 {
		t.Fatalf("genre list not propagated: %+v", input.Genres)
	}
}

func TestMovieUpdateRequest_TitleLength(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	payload, _ := json.Marshal(map[string]string{"title": string(long)})
	req := decodeUpdateRequest(t, string(payload))
	if _, err := req.toInput(); err == nil {
		t.Fatalf("over-long title must be rejected")
	}

	req = decodeUpdateRequest(t, `{"title": "   "}`)
	if _, err := req.toInput(); err == nil {
		t.Fatalf("blank title must be rejected")
	}

	// Length is measured in runes; 200 multibyte characters exceed 255
	// bytes but stay within the limit.
	payload, _ = json.Marshal(map[string]string{"title": strings.Repeat("映", 200)})
	req = decodeUpdateRequest(t, string(payload))
	input, err := req.toInput()
	if err != nil {
		t.Fatalf("200-rune title rejected: %v", err)
	}
	if input.Title == nil || utf8.RuneCountInString(*input.Title) != 200 {
		t.Fatalf("title not propagated: %+v", input.Title)
	}

	payload, _ = json.Marshal(map[string]string{"title": strings.Repeat("映", 256)})
	req = decodeUpdateRequest(t, string(payload))
	if _, err := req.toInput(); err == nil {
		t.Fatalf("256-rune title must be rejected")
	}
}
