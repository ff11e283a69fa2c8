package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
)

func testLogger() observability.Logger {
	return observability.NewLogger()
}

func TestClient_Movie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/550", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("api_key"))
		w.Write([]byte(`{"id":550,"title":"Fight Club","genres":[{"id":18,"name":"Drama"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, "k", testLogger())
	m, err := c.Movie(context.Background(), "550")
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", m.Title)
	require.Len(t, m.Genres, 1)
	assert.Equal(t, "Drama", m.Genres[0].Name)
}

func TestClient_Title_FailOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, "k", testLogger())
	assert.Equal(t, "", c.Title(context.Background(), "550"))
}

func TestClient_List_Pagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/popular", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		w.Write([]byte(`{"page":3,"results":[{"id":1,"title":"A"},{"id":2,"title":"B"}],"total_pages":40}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, "k", testLogger())
	p, err := c.List(context.Background(), "popular", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 40, p.TotalPages)
	assert.Len(t, p.Results, 2)
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dune part two", r.URL.Query().Get("query"))
		w.Write([]byte(`{"page":1,"results":[{"id":9,"title":"Dune: Part Two"}],"total_pages":1}`))
	}))
	defer srv.Close()

	c := NewClient("http://unused.invalid", srv.URL, "k", testLogger())
	p, err := c.Search(context.Background(), "dune part two", 1)
	require.NoError(t, err)
	require.Len(t, p.Results, 1)
	assert.Equal(t, "Dune: Part Two", p.Results[0].Title)
}
