package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lbx/internal/shared"
	tu "lbx/internal/testing"
)

func TestNewClient(t *testing.T) {
	t.Run("requires an api key", func(t *testing.T) {
		if _, err := NewClient("", "", nil); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("defaults base URL and http client", func(t *testing.T) {
		client, err := NewClient("key", "", nil)
		if err != nil {
			t.Fatalf("expected client, got %v", err)
		}
		if client.baseURL != defaultBaseURL {
			t.Errorf("expected default base URL, got %q", client.baseURL)
		}
		if client.httpClient == nil {
			t.Error("expected a default http client")
		}
	})
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("SearchPerson", func(t *testing.T) {
		t.Run("returns the first result", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search/person" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.URL.Query().Get("api_key") != "key" {
					t.Error("expected api_key query param")
				}
				if r.URL.Query().Get("query") != "John Carpenter" {
					t.Errorf("unexpected query %q", r.URL.Query().Get("query"))
				}
				fmt.Fprint(w, `{"results": [
					{"id": 11770, "name": "John Carpenter", "known_for_department": "Directing"},
					{"id": 99, "name": "John Carpenter Jr.", "known_for_department": "Acting"}
				]}`)
			}))
			defer server.Close()

			client, _ := NewClient("key", server.URL, nil)
			person, err := client.SearchPerson(ctx, "John Carpenter")
			if err != nil {
				t.Fatalf("expected search to succeed, got %v", err)
			}
			if person.ID != 11770 {
				t.Errorf("expected first result, got %d", person.ID)
			}
			if person.KnownForDepartment != "Directing" {
				t.Errorf("expected Directing, got %q", person.KnownForDepartment)
			}
		})

		t.Run("no results", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"results": []}`)
			}))
			defer server.Close()

			client, _ := NewClient("key", server.URL, nil)
			if _, err := client.SearchPerson(ctx, "nobody"); err == nil {
				t.Error("expected empty search to fail")
			}
		})

		t.Run("transport errors are wrapped", func(t *testing.T) {
			client, _ := NewClient("key", "", &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
			})

			if _, err := client.SearchPerson(ctx, "anyone"); err == nil {
				t.Error("expected transport error to surface")
			}
		})

		t.Run("error status surfaces the message", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"status_message": "Invalid API key"}`)
			}))
			defer server.Close()

			client, _ := NewClient("key", server.URL, nil)
			_, err := client.SearchPerson(ctx, "anyone")
			if !errors.Is(err, shared.ErrRequestFailed) {
				t.Fatalf("expected ErrRequestFailed, got %v", err)
			}
		})
	})

	t.Run("Filmography", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/person/11770/movie_credits" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			fmt.Fprint(w, `{"crew": [
				{"id": 578, "title": "The Thing", "release_date": "1982-06-25", "department": "Directing"},
				{"id": 790, "title": "Halloween", "release_date": "1978-10-25", "department": "Directing"},
				{"id": 602, "title": "Some Score", "release_date": "1990-01-01", "department": "Sound"}
			]}`)
		}))
		defer server.Close()

		client, _ := NewClient("key", server.URL, nil)
		person := &Person{ID: 11770, Name: "John Carpenter", KnownForDepartment: "Directing"}

		credits, err := client.Filmography(ctx, person)
		if err != nil {
			t.Fatalf("expected filmography to succeed, got %v", err)
		}

		if len(credits) != 2 {
			t.Fatalf("expected credits outside the department to be dropped, got %d", len(credits))
		}
		if credits[0].Title != "Halloween" {
			t.Errorf("expected release date order, got %q first", credits[0].Title)
		}
		if credits[1].TMDBID != 578 {
			t.Errorf("expected TMDB id 578, got %d", credits[1].TMDBID)
		}
	})

	t.Run("MovieDetails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/movie/578" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			fmt.Fprint(w, `{
				"id": 578,
				"title": "The Thing",
				"original_title": "The Thing",
				"release_date": "1982-06-25",
				"runtime": 109,
				"poster_path": "/abc.jpg",
				"overview": "Antarctic researchers find something in the ice."
			}`)
		}))
		defer server.Close()

		client, _ := NewClient("key", server.URL, nil)
		details, err := client.MovieDetails(ctx, 578)
		if err != nil {
			t.Fatalf("expected details to succeed, got %v", err)
		}

		if details.Title != "The Thing" {
			t.Errorf("unexpected title %q", details.Title)
		}
		if details.Runtime != 109 {
			t.Errorf("expected runtime 109, got %d", details.Runtime)
		}
		if details.PosterURL != posterImageBase+"/abc.jpg" {
			t.Errorf("expected full poster URL, got %q", details.PosterURL)
		}
	})

	t.Run("MovieRuntime", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"id": 578, "runtime": 109}`)
		}))
		defer server.Close()

		client, _ := NewClient("key", server.URL, nil)
		runtime, err := client.MovieRuntime(ctx, 578)
		if err != nil {
			t.Fatalf("expected runtime to succeed, got %v", err)
		}
		if runtime != 109 {
			t.Errorf("expected 109, got %d", runtime)
		}
	})
}
