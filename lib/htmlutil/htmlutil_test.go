package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<html><body>
			<div class="result"><a href="https://example.com/a">First
				<span>   Link</span></a></div>
			<div class="result"><a>no href</a></div>
		</body></html>
	`))
	if err != nil {
		t.Fatal(err)
	}

	anchors := GetAnchors(context.Background(), doc.Find("div.result > a"))
	require.Len(t, anchors, 2)

	// inner whitespace collapses to single spaces
	require.Equal(t, "First Link", anchors[0].Text)
	require.Equal(t, "https://example.com/a", anchors[0].Href)

	require.Equal(t, "no href", anchors[1].Text)
	require.Equal(t, "", anchors[1].Href)
}
