package suggest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudSuggest(t *testing.T) {
	var gotFEN, gotDepth, gotPV string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFEN = r.URL.Query().Get("fen")
		gotDepth = r.URL.Query().Get("depth")
		gotPV = r.URL.Query().Get("multiPv")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fen":"x","depth":15,"pvs":[{"moves":"e7e5 g1f3 b8c6","cp":-20}]}`))
	}))
	defer srv.Close()

	c := NewCloud(srv.URL, srv.Client())
	move, err := c.Suggest(context.Background(), Request{FEN: startFEN, Depth: 15})
	require.NoError(t, err)
	assert.Equal(t, "e7e5", move)
	assert.Equal(t, startFEN, gotFEN)
	assert.Equal(t, "15", gotDepth)
	assert.Equal(t, "1", gotPV)
	assert.Equal(t, "cloud", c.Name())
}

func TestCloudMovesArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pvs":[{"moves":["d7d5","c2c4"]}]}`))
	}))
	defer srv.Close()

	move, err := NewCloud(srv.URL, srv.Client()).Suggest(context.Background(), Request{FEN: startFEN})
	require.NoError(t, err)
	assert.Equal(t, "d7d5", move)
}

func TestCloudErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, `{"error":"Not found"}`, ErrNoMove},
		{"empty pvs", http.StatusOK, `{"pvs":[]}`, ErrNoMove},
		{"empty moves", http.StatusOK, `{"pvs":[{"moves":""}]}`, ErrNoMove},
		{"server error", http.StatusInternalServerError, ``, nil},
		{"bad json", http.StatusOK, `{"pvs":`, nil},
		{"bad moves field", http.StatusOK, `{"pvs":[{"moves":42}]}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewCloud(srv.URL, srv.Client()).Suggest(context.Background(), Request{FEN: startFEN})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCloudTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewCloud(srv.URL, srv.Client()).Suggest(ctx, Request{FEN: startFEN})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
