package zoominfo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// every listing page carries at most this many person rows
const pageSize = 25

// DefaultBannerPattern matches the "1-25 of 1,742 results" heading on
// the first results page. The site has shipped other wordings before
// ("... Contacts"), so the pattern is an input rather than a constant.
// Submatch 1 must capture the total count.
var DefaultBannerPattern = regexp.MustCompile(`(\d+) results`)

// CountResults reads the results-summary heading of the first listing
// page and derives the total record count plus the number of pages to
// fetch. A missing heading or a non-matching banner is fatal: without a
// page count the run cannot continue.
func CountResults(doc *goquery.Document, pattern *regexp.Regexp) (total int, pages int, err error) {
	if pattern == nil {
		pattern = DefaultBannerPattern
	}

	heading := doc.Find("h2.page_searchResults_numberOfResults, h2.page_numberOfResults_header")
	if heading.Length() == 0 {
		return 0, 0, fmt.Errorf("%w: could not find the results banner heading", ErrParse)
	}

	text := strings.ReplaceAll(heading.First().Text(), ",", "")
	groups := pattern.FindStringSubmatch(text)
	if len(groups) < 2 {
		return 0, 0, fmt.Errorf("%w: banner %q did not match pattern %q", ErrParse, strings.TrimSpace(text), pattern)
	}
	total, err = strconv.Atoi(groups[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad result count in banner: %s", ErrParse, err)
	}

	pages = (total + pageSize - 1) / pageSize
	return total, pages, nil
}

// ExtractPeople converts one listing page into person records, one per
// directory row. The first row is a header row, never data. A page with
// no directory rows at all means the markup assumptions no longer hold
// and is reported as a parse failure.
func ExtractPeople(doc *goquery.Document, convention Convention, domain string) ([]Person, error) {
	rows := doc.Find("tr.tableRow")
	if rows.Length() == 0 {
		return nil, fmt.Errorf("%w: could not find any directory rows", ErrParse)
	}

	var people []Person
	rows.Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		people = append(people, extractPerson(row, convention, domain))
	})
	return people, nil
}

func extractPerson(row *goquery.Selection, convention Convention, domain string) Person {
	name := ""
	nameSel := row.Find("div.tableRow_personName")
	if nameSel.Length() > 0 {
		name = strings.TrimSpace(nameSel.First().Text())
	}

	title := ""
	titleSel := row.Find("div.dynamicLink")
	if titleSel.Length() > 0 {
		title = strings.TrimSpace(titleSel.First().Text())
	}

	location := "Unknown"
	var locationParts []string
	row.Find("a.dynamicLink").Each(func(_ int, sel *goquery.Selection) {
		locationParts = append(locationParts, strings.TrimSpace(sel.Text()))
	})
	if len(locationParts) > 0 {
		location = strings.Join(locationParts, ", ")
	}

	username := strings.ToLower(SynthesizeUsername(name, convention))
	return Person{
		FullName: name,
		Title:    title,
		Location: location,
		Email:    fmt.Sprintf("%s@%s", username, domain),
	}
}
