package zoominfo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"zoomgrab/lib/cliutil"
	"zoomgrab/lib/gophish"
	"zoomgrab/lib/textutil"
)

// Sink receives each page's batch of extracted records. Batches arrive
// in page order, each batch must become visible as a unit.
type Sink interface {
	WriteBatch(people []Person) error
}

type ScraperOptions struct {
	Convention Convention
	Domain     string
	// nil means DefaultBannerPattern
	BannerPattern *regexp.Regexp
	// optional file/db sink, nil to skip persistence
	Output Sink
	// optional gophish instance to upsert the results into
	Gophish *gophish.Client
}

// Scraper drives one full run against an already-resolved listing:
// fetch page 1, derive the page count, walk the remaining pages in
// order, extract records from every page and hand them to the sinks.
type Scraper struct {
	client *Client
	opts   ScraperOptions
	all    []Person
}

func NewScraper(client *Client, opts ScraperOptions) *Scraper {
	return &Scraper{
		client: client,
		opts:   opts,
	}
}

// Run executes the scrape and returns every record extracted across
// all pages. Any fetch or structural parse failure aborts the run,
// whatever batches were already flushed to the sink stay flushed.
func (s *Scraper) Run(ctx context.Context) ([]Person, error) {
	ctx, span := tracer.Start(ctx, "scraper:Run")
	defer span.End()

	doc, err := s.client.FetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}

	total, pages, err := CountResults(doc, s.opts.BannerPattern)
	if err != nil {
		return nil, err
	}
	cliutil.Success("found %d records across %d pages of results...", total, pages)
	cliutil.Success("starting scrape of %d pages. scraping cloudflare sites can be tricky, be patient!", pages)

	cliutil.Success("scraping page 1/%d...", pages)
	batch, err := ExtractPeople(doc, s.opts.Convention, s.opts.Domain)
	if err != nil {
		return nil, err
	}
	err = s.deliver(batch)
	if err != nil {
		return nil, err
	}

	for page := 2; page <= pages; page++ {
		cliutil.Success("scraping page %d/%d...", page, pages)
		doc, err := s.client.FetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		batch, err := ExtractPeople(doc, s.opts.Convention, s.opts.Domain)
		if err != nil {
			return nil, err
		}
		err = s.deliver(batch)
		if err != nil {
			return nil, err
		}
	}

	for _, p := range s.all {
		cliutil.Echo("[*] %s|%s|%s|%s", p.Email, p.FullName, p.Title, p.Location)
	}

	if s.opts.Gophish != nil {
		err = s.importIntoGophish(ctx)
		if err != nil {
			return nil, err
		}
	}

	return s.all, nil
}

func (s *Scraper) deliver(batch []Person) error {
	s.all = append(s.all, batch...)
	if s.opts.Output == nil {
		return nil
	}
	return s.opts.Output.WriteBatch(batch)
}

// the gophish group is named after the first label of the target
// domain: "acme.com" -> "acme-all"
func (s *Scraper) importIntoGophish(ctx context.Context) error {
	users := make([]gophish.User, 0, len(s.all))
	for _, p := range s.all {
		parts := textutil.SplitPersonName(p.FullName)
		users = append(users, gophish.User{
			FirstName: parts[0],
			LastName:  parts[len(parts)-1],
			Email:     p.Email,
			Position:  p.Title,
		})
	}

	groupName := fmt.Sprintf("%s-all", strings.Split(s.opts.Domain, ".")[0])
	return s.opts.Gophish.UpsertGroup(ctx, groupName, users)
}
