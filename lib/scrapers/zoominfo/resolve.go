package zoominfo

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
	"zoomgrab/lib/cliutil"
	"zoomgrab/lib/htmlutil"
	"zoomgrab/lib/telemetry"
	"zoomgrab/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// ChoiceAbort is the reserved operator input that bails out of
// disambiguation instead of picking a candidate.
const ChoiceAbort = 99

const maxCandidates = 5

// Candidate is one search result that might be the target's listing.
type Candidate struct {
	// company name pulled out of the result title
	ResultCompany string
	// whether the queried company name is a substring of ResultCompany
	Matched bool
	// destination listing url
	Href string
	// Jaro-Winkler similarity between the queried name and
	// ResultCompany, purely advisory for the operator
	Similarity float64
}

// Chooser is how the resolver asks the operator to pick among
// candidates when no result matched outright. It returns a 1-indexed
// choice; ChoiceAbort or anything out of range aborts the run. It may
// block indefinitely.
type Chooser interface {
	Choose(company string, candidates []Candidate) (int, error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(company string, candidates []Candidate) (int, error)

func (f ChooserFunc) Choose(company string, candidates []Candidate) (int, error) {
	return f(company, candidates)
}

var listingUrlRegex = regexp.MustCompile(`^https?://([\w\d]+\.)?zoominfo\.com/(c|pic)/([\w\d-]+/)?\d+`)

// IsListingUrl reports whether the target the operator passed is
// already a canonical listing (or company profile) url, in which case
// no search is needed.
func IsListingUrl(target string) bool {
	return listingUrlRegex.MatchString(target)
}

// result titles look like "Acme Corporation | ZoomInfo.com"
var resultLabelRegex = regexp.MustCompile(`^(.+) \| ZoomInfo\.com`)

type ResolverOptions struct {
	// defaults to google's search endpoint
	SearchUrl string
	Proxy     string
	Headers   map[string]string
	Chooser   Chooser
}

// Resolver turns a free-text company name into a canonical listing url
// via a site-scoped web search.
type Resolver struct {
	http    *resty.Client
	chooser Chooser
}

func NewResolver(opts ResolverOptions) *Resolver {
	searchUrl := opts.SearchUrl
	if searchUrl == "" {
		searchUrl = "https://www.google.com/search"
	}

	client := resty.New()
	client.SetBaseURL(searchUrl)
	for k, v := range opts.Headers {
		client.SetHeader(k, v)
	}
	if opts.Proxy != "" {
		client.SetProxy(opts.Proxy)
	}
	client.SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(client, "scrapers/zoominfo/search")

	return &Resolver{
		http:    client,
		chooser: opts.Chooser,
	}
}

// Resolve searches for the company's employee-profile listing and
// returns its canonical url. An exact substring match on a result title
// wins immediately; otherwise the operator picks from the candidate
// list through the Chooser.
func (r *Resolver) Resolve(ctx context.Context, company string) (string, error) {
	ctx, span := tracer.Start(ctx, "resolver:Resolve")
	defer span.End()

	cliutil.Success("google-dorking zoominfo.com for %s...", company)

	res, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("q", fmt.Sprintf(`site:zoominfo.com "%s" Employee Profiles`, company)).
		Get("")
	if err != nil {
		span.SetStatus(codes.Error, "search request failed")
		return "", fmt.Errorf("%w: %s", ErrFetch, err)
	}
	if res.StatusCode() != http.StatusOK {
		span.SetStatus(codes.Error, "search request failed")
		return "", fmt.Errorf("%w: search returned HTTP %d", ErrFetch, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrParse, err)
	}

	candidates := searchCandidates(ctx, doc, company)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no listing links in the search results for %q", ErrAmbiguity, company)
	}

	for _, c := range candidates {
		if c.Matched {
			return canonicalListingUrl(c.Href), nil
		}
	}

	cliutil.Warn(`failed to get an exact match on "%s", these are the top search results:`, company)
	choice, err := r.chooser.Choose(company, candidates)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrAmbiguity, err)
	}
	if choice == ChoiceAbort {
		return "", fmt.Errorf("%w: aborted by operator", ErrAmbiguity)
	}
	if choice < 1 || choice > len(candidates) {
		return "", fmt.Errorf("%w: choice %d is not a valid choice", ErrAmbiguity, choice)
	}

	return canonicalListingUrl(candidates[choice-1].Href), nil
}

// searchCandidates keeps the organic-result anchors that point at a
// company profile or employee-profile listing, up to maxCandidates. A
// result title that doesn't parse only drops that one candidate, the
// title format has been unstable in the past.
func searchCandidates(ctx context.Context, doc *goquery.Document, company string) []Candidate {
	var candidates []Candidate
	for _, anchor := range htmlutil.GetAnchors(ctx, doc.Find("div.r > a")) {
		if len(candidates) == maxCandidates {
			break
		}
		if !strings.Contains(anchor.Href, "/c/") && !strings.Contains(anchor.Href, "/pic/") {
			continue
		}

		groups := resultLabelRegex.FindStringSubmatch(anchor.Text)
		if len(groups) < 2 {
			continue
		}
		resultCompany := groups[1]

		candidates = append(candidates, Candidate{
			ResultCompany: resultCompany,
			Matched:       strings.Contains(resultCompany, company),
			Href:          anchor.Href,
			Similarity: matchr.JaroWinkler(
				textutil.NormalizeName(resultCompany),
				textutil.NormalizeName(company),
				false,
			),
		})
	}
	return candidates
}

// company profile links ("/c/") and employee listing links ("/pic/")
// differ only in that path segment
func canonicalListingUrl(href string) string {
	return strings.Replace(href, "/c/", "/pic/", 1)
}
