package zoominfo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func searchServer(t *testing.T, html string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.URL.Query().Get("q"))
		io.WriteString(w, html)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestResolver(t *testing.T, html string, chooser Chooser) *Resolver {
	return NewResolver(ResolverOptions{
		SearchUrl: searchServer(t, html).URL,
		Chooser:   chooser,
	})
}

func failingChooser(t *testing.T) Chooser {
	return ChooserFunc(func(company string, candidates []Candidate) (int, error) {
		t.Fatal("chooser must not be invoked when a candidate matched")
		return 0, nil
	})
}

func organicResult(label, href string) string {
	return fmt.Sprintf(`<div class="r"><a href="%s">%s</a></div>`, href, label)
}

func TestResolveExactMatchSkipsChooser(t *testing.T) {
	html := `<html><body>` +
		organicResult("Acme Holdings | ZoomInfo.com", "https://www.zoominfo.com/pic/acme-holdings/111") +
		organicResult("Acme Corp | ZoomInfo.com", "https://www.zoominfo.com/pic/acme-corp/222") +
		organicResult("Acme Corp Europe | ZoomInfo.com", "https://www.zoominfo.com/pic/acme-corp-eu/333") +
		`</body></html>`

	r := newTestResolver(t, html, failingChooser(t))

	link, err := r.Resolve(context.Background(), "Acme Corp")
	require.NoError(t, err)
	// the first matched candidate wins, later matches are ignored
	require.Equal(t, "https://www.zoominfo.com/pic/acme-corp/222", link)
}

func TestResolveRewritesCompanyProfileLinks(t *testing.T) {
	html := `<html><body>` +
		organicResult("Acme Corp | ZoomInfo.com", "https://www.zoominfo.com/c/acme-corp/222") +
		`</body></html>`

	r := newTestResolver(t, html, failingChooser(t))

	link, err := r.Resolve(context.Background(), "Acme Corp")
	require.NoError(t, err)
	require.Equal(t, "https://www.zoominfo.com/pic/acme-corp/222", link)
}

func TestResolveFallsBackToChooser(t *testing.T) {
	html := `<html><body>` +
		organicResult("Acme Holdings | ZoomInfo.com", "https://www.zoominfo.com/pic/acme-holdings/111") +
		organicResult("Acme Industrial | ZoomInfo.com", "https://www.zoominfo.com/c/acme-industrial/222") +
		`</body></html>`

	chosen := false
	r := newTestResolver(t, html, ChooserFunc(func(company string, candidates []Candidate) (int, error) {
		chosen = true
		require.Equal(t, "Acme Corp", company)
		require.Len(t, candidates, 2)
		require.False(t, candidates[0].Matched)
		require.False(t, candidates[1].Matched)
		require.Equal(t, "Acme Holdings", candidates[0].ResultCompany)
		return 2, nil
	}))

	link, err := r.Resolve(context.Background(), "Acme Corp")
	require.NoError(t, err)
	require.True(t, chosen)
	require.Equal(t, "https://www.zoominfo.com/pic/acme-industrial/222", link)
}

func TestResolveAbortSentinel(t *testing.T) {
	html := `<html><body>` +
		organicResult("Acme Holdings | ZoomInfo.com", "https://www.zoominfo.com/pic/acme-holdings/111") +
		`</body></html>`

	r := newTestResolver(t, html, ChooserFunc(func(string, []Candidate) (int, error) {
		return ChoiceAbort, nil
	}))

	_, err := r.Resolve(context.Background(), "Acme Corp")
	require.ErrorIs(t, err, ErrAmbiguity)
}

func TestResolveOutOfRangeChoice(t *testing.T) {
	html := `<html><body>` +
		organicResult("Acme Holdings | ZoomInfo.com", "https://www.zoominfo.com/pic/acme-holdings/111") +
		organicResult("Acme Industrial | ZoomInfo.com", "https://www.zoominfo.com/pic/acme-industrial/222") +
		`</body></html>`

	for _, choice := range []int{0, -1, 3} {
		r := newTestResolver(t, html, ChooserFunc(func(string, []Candidate) (int, error) {
			return choice, nil
		}))

		_, err := r.Resolve(context.Background(), "Acme Corp")
		require.ErrorIs(t, err, ErrAmbiguity, "choice %d", choice)
	}
}

func TestResolveSkipsUnparsableLabels(t *testing.T) {
	// a result title that doesn't follow the "<name> | ZoomInfo.com"
	// format drops that candidate only
	html := `<html><body>` +
		organicResult("Employee directory without the usual title", "https://www.zoominfo.com/pic/mystery/999") +
		organicResult("Acme Corp | ZoomInfo.com", "https://www.zoominfo.com/pic/acme-corp/222") +
		`</body></html>`

	r := newTestResolver(t, html, failingChooser(t))

	link, err := r.Resolve(context.Background(), "Acme Corp")
	require.NoError(t, err)
	require.Equal(t, "https://www.zoominfo.com/pic/acme-corp/222", link)
}

func TestResolveIgnoresNonListingLinks(t *testing.T) {
	html := `<html><body>` +
		organicResult("Acme Corp | ZoomInfo.com", "https://www.zoominfo.com/about") +
		`</body></html>`

	r := newTestResolver(t, html, failingChooser(t))

	_, err := r.Resolve(context.Background(), "Acme Corp")
	require.ErrorIs(t, err, ErrAmbiguity)
}

func TestResolveCapsCandidates(t *testing.T) {
	var results []string
	for i := 0; i < 7; i++ {
		results = append(results, organicResult(
			fmt.Sprintf("Beta Group %d | ZoomInfo.com", i),
			fmt.Sprintf("https://www.zoominfo.com/pic/beta-%d/%d", i, i),
		))
	}
	html := `<html><body>` + strings.Join(results, "") + `</body></html>`

	r := newTestResolver(t, html, ChooserFunc(func(_ string, candidates []Candidate) (int, error) {
		require.Len(t, candidates, 5)
		return 1, nil
	}))

	link, err := r.Resolve(context.Background(), "Acme Corp")
	require.NoError(t, err)
	require.Equal(t, "https://www.zoominfo.com/pic/beta-0/0", link)
}

func TestIsListingUrl(t *testing.T) {
	testCases := []struct {
		target string
		valid  bool
	}{
		{"https://www.zoominfo.com/pic/acme-corp/123456", true},
		{"https://www.zoominfo.com/c/acme-corp/123456", true},
		{"http://zoominfo.com/c/98765", true},
		{"https://zoominfo.com/pic/acme-corp/", false},
		{"https://example.com/pic/acme-corp/123456", false},
		{"zoominfo.com/c/acme-corp/123456", false},
		{"Acme Corp", false},
	}

	for _, test := range testCases {
		require.Equal(t, test.valid, IsListingUrl(test.target), test.target)
	}
}
