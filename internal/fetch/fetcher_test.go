package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	ctx := context.Background()
	agents := NewAgentPool("its-on-sale-tracker/0.1", 1)

	t.Run("returns body and status", func(t *testing.T) {
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Write([]byte("<html>ok</html>"))
		}))
		defer srv.Close()

		f := NewHTTPFetcher(5*time.Second, agents)
		body, status, err := f.Fetch(ctx, srv.URL)
		require.NoError(t, err)
		assert.Equal(t, 200, status)
		assert.Equal(t, "<html>ok</html>", string(body))
		assert.Equal(t, "its-on-sale-tracker/0.1", gotUA)
	})

	t.Run("non-2xx status is a fetch error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		f := NewHTTPFetcher(5*time.Second, agents)
		_, status, err := f.Fetch(ctx, srv.URL)
		assert.Equal(t, 404, status)
		var ferr *Error
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, 404, ferr.Status)
	})

	t.Run("unreachable host is a fetch error", func(t *testing.T) {
		f := NewHTTPFetcher(time.Second, agents)
		_, _, err := f.Fetch(ctx, "http://127.0.0.1:1/nothing")
		var ferr *Error
		require.ErrorAs(t, err, &ferr)
		assert.Zero(t, ferr.Status)
	})
}

func TestAgentPool(t *testing.T) {
	t.Run("primary agent overrides rotation", func(t *testing.T) {
		p := NewAgentPool("custom/1.0", 1)
		for i := 0; i < 10; i++ {
			assert.Equal(t, "custom/1.0", p.Get())
		}
	})

	t.Run("default pool rotates browser agents", func(t *testing.T) {
		p := NewAgentPool("", 1)
		assert.NotEmpty(t, p.Get())
	})
}
