package zoominfo

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"
	"zoomgrab/lib/restyutil"
	"zoomgrab/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// Client owns one anti-bot-cleared session against a listing host. The
// cookie jar holds the clearance cookies handed out on the initial
// request, every later page fetch rides on them. A client is only ever
// used from one goroutine, page fetches are strictly sequential so the
// bot-mitigation layer sees a believable browsing pattern.
type Client struct {
	BaseUrl   *url.URL
	Http      *resty.Client
	UserAgent string
}

type ClientOptions struct {
	// the canonical listing url scraping starts from
	BaseUrl string
	// optional proxy url for all requests
	Proxy string
	// extra headers sent on every request
	Headers map[string]string
}

// NewClient builds the session client and performs the initial GET that
// acquires the anti-bot clearance. Failure to clear the challenge is
// fatal for the run, there is no retry.
func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	ctx, span := tracer.Start(ctx, "NewClient")
	defer span.End()

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	userAgent := browser.Chrome()
	client.SetHeader("user-agent", userAgent)
	for k, v := range opts.Headers {
		client.SetHeader(k, v)
	}
	if opts.Proxy != "" {
		client.SetProxy(opts.Proxy)
	}
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/zoominfo/http")
	restyutil.InstrumentClient(client, restyInstrumentOutput)

	c := &Client{
		BaseUrl:   baseUrl,
		Http:      client,
		UserAgent: userAgent,
	}

	res, err := client.R().
		SetContext(ctx).
		Get(baseUrl.String())
	if err != nil {
		span.SetStatus(codes.Error, "failed to acquire session")
		return nil, fmt.Errorf("%w: %s", ErrSession, err)
	}
	if res.StatusCode() != http.StatusOK {
		span.SetStatus(codes.Error, "failed to acquire session")
		return nil, fmt.Errorf("%w: received HTTP %d", ErrSession, res.StatusCode())
	}

	return c, nil
}

// FetchPage GETs one listing page and parses it into a document tree.
// Page 1 is the bare listing url, later pages select themselves with
// the pageNum query parameter.
func (c *Client) FetchPage(ctx context.Context, page int) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:FetchPage")
	defer span.End()

	req := c.Http.R().SetContext(ctx)
	if page > 1 {
		req.SetQueryParam("pageNum", strconv.Itoa(page))
	}
	res, err := req.Get(c.BaseUrl.String())
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch page")
		return nil, fmt.Errorf("%w: %s", ErrFetch, err)
	}
	if res.StatusCode() != http.StatusOK {
		span.SetStatus(codes.Error, "failed to fetch page")
		return nil, fmt.Errorf("%w: received HTTP %d", ErrFetch, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse page html")
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}
	return doc, nil
}
