package wiki_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/germanamz/scorer/pkg/wiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient serves /{lang}/w/api.php from the given per-language handlers.
func newTestClient(t *testing.T, handlers map[wiki.Lang]http.HandlerFunc) *wiki.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang, rest, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
		assert.Equal(t, "w/api.php", rest)

		h, ok := handlers[wiki.Lang(lang)]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c := wiki.New(srv.Client(), slog.New(slog.DiscardHandler))
	c.BaseURL = func(lang wiki.Lang) string { return srv.URL + "/" + string(lang) }

	return c
}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func failWith(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}
}

const (
	missingPage = `{"batchcomplete":"","query":{"pages":{"-1":{"ns":0,"title":"存在しない記事","missing":""}}}}`
	normalPage  = `{"batchcomplete":"","query":{"pages":{"123":{"pageid":123,"ns":0,"title":"寿司"}}}}`
	redirect    = `{"batchcomplete":"","query":{"redirects":[{"from":"すし","to":"寿司"}],"pages":{"123":{"pageid":123,"ns":0,"title":"寿司"}}}}`
	disambig    = `{"batchcomplete":"","query":{"pages":{"77":{"pageid":77,"ns":0,"title":"マーキュリー","pageprops":{"disambiguation":""}}}}}`
	enPage      = `{"batchcomplete":"","query":{"pages":{"42":{"pageid":42,"ns":0,"title":"Sushi"}}}}`
)

func TestCheck_SendsQuery(t *testing.T) {
	c := newTestClient(t, map[wiki.Lang]http.HandlerFunc{
		wiki.Japanese: func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "query", q.Get("action"))
			assert.Equal(t, "寿司", q.Get("titles"))
			assert.Equal(t, "1", q.Get("redirects"))
			assert.Equal(t, "pageprops", q.Get("prop"))
			assert.Equal(t, "disambiguation", q.Get("ppprop"))
			assert.Equal(t, "json", q.Get("format"))
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			assert.Empty(t, r.Header.Get("Authorization"))

			reply(normalPage)(w, r)
		},
	})

	got, err := c.Check(context.Background(), wiki.Japanese, "寿司")
	require.NoError(t, err)

	assert.Equal(t, wiki.CheckResult{Lang: wiki.Japanese, Title: "寿司", Exists: true}, got)
}

func TestCheck_Outcomes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		title string
		want  wiki.CheckResult
	}{
		{
			name:  "missing",
			body:  missingPage,
			title: "存在しない記事",
			want:  wiki.CheckResult{Lang: wiki.Japanese, Title: "存在しない記事"},
		},
		{
			name:  "redirect",
			body:  redirect,
			title: "すし",
			want: wiki.CheckResult{
				Lang: wiki.Japanese, Title: "すし", Exists: true,
				IsRedirect: true, RedirectTarget: "寿司",
			},
		},
		{
			name:  "disambiguation",
			body:  disambig,
			title: "マーキュリー",
			want: wiki.CheckResult{
				Lang: wiki.Japanese, Title: "マーキュリー", Exists: true, IsDisambiguation: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, map[wiki.Lang]http.HandlerFunc{wiki.Japanese: reply(tt.body)})

			got, err := c.Check(context.Background(), wiki.Japanese, tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		c := newTestClient(t, map[wiki.Lang]http.HandlerFunc{wiki.English: failWith(http.StatusServiceUnavailable)})

		_, err := c.Check(context.Background(), wiki.English, "Sushi")
		assert.ErrorContains(t, err, "wiki: en: unexpected status 503")
	})

	t.Run("no pages", func(t *testing.T) {
		c := newTestClient(t, map[wiki.Lang]http.HandlerFunc{wiki.English: reply(`{"batchcomplete":""}`)})

		_, err := c.Check(context.Background(), wiki.English, "Sushi")
		assert.ErrorContains(t, err, "response has no pages")
	})
}

func TestCheckBoth_BothSucceed(t *testing.T) {
	c := newTestClient(t, map[wiki.Lang]http.HandlerFunc{
		wiki.Japanese: reply(normalPage),
		wiki.English:  reply(enPage),
	})

	b := c.CheckBoth(context.Background(), "寿司")

	require.NoError(t, b.Err())
	assert.True(t, b.JA.Exists)
	assert.True(t, b.EN.Exists)
	assert.Equal(t, "Sushi", b.EN.Title)
}

func TestCheckBoth_OneSideFails(t *testing.T) {
	c := newTestClient(t, map[wiki.Lang]http.HandlerFunc{
		wiki.Japanese: failWith(http.StatusInternalServerError),
		wiki.English:  reply(enPage),
	})

	b := c.CheckBoth(context.Background(), "Sushi")

	assert.NoError(t, b.Err())
	assert.Error(t, b.JAErr)
	assert.NoError(t, b.ENErr)
	assert.True(t, b.EN.Exists)
}

func TestCheckBoth_BothFail(t *testing.T) {
	c := newTestClient(t, map[wiki.Lang]http.HandlerFunc{
		wiki.Japanese: failWith(http.StatusInternalServerError),
		wiki.English:  failWith(http.StatusBadGateway),
	})

	b := c.CheckBoth(context.Background(), "Sushi")

	err := b.Err()
	require.Error(t, err)
	assert.ErrorContains(t, err, "500")
	assert.ErrorContains(t, err, "502")
	assert.Nil(t, b.Templates())
}
