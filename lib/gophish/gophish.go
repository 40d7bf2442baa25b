package gophish

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"
	"zoomgrab/lib/cliutil"
	"zoomgrab/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

// User is one phishing-campaign target as the gophish API represents it.
type User struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Position  string `json:"position"`
}

type Group struct {
	Id      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Targets []User `json:"targets"`
}

type ClientOptions struct {
	// admin url of the gophish instance, e.g. https://localhost:3333
	AdminUrl string
	ApiKey   string
	// gophish admin endpoints ship with a self-signed certificate
	SkipTlsVerify bool
}

// Client is a minimal gophish admin-API client covering group
// management.
type Client struct {
	http *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New()
	client.SetBaseURL(opts.AdminUrl)
	client.SetQueryParam("api_key", opts.ApiKey)
	client.SetTimeout(time.Second * 30)
	if opts.SkipTlsVerify {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	telemetry.InstrumentResty(client, "gophish/http")

	return &Client{http: client}
}

func (c *Client) Groups(ctx context.Context) ([]Group, error) {
	var groups []Group
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&groups).
		Get("/api/groups/")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("listing groups returned HTTP %d", res.StatusCode())
	}
	return groups, nil
}

func (c *Client) CreateGroup(ctx context.Context, group Group) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(group).
		Post("/api/groups/")
	if err != nil {
		return err
	}
	if res.StatusCode() != http.StatusCreated && res.StatusCode() != http.StatusOK {
		return fmt.Errorf("creating group %q returned HTTP %d", group.Name, res.StatusCode())
	}
	return nil
}

func (c *Client) UpdateGroup(ctx context.Context, group Group) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(group).
		Put(fmt.Sprintf("/api/groups/%d", group.Id))
	if err != nil {
		return err
	}
	if res.StatusCode() != http.StatusOK {
		return fmt.Errorf("updating group %q returned HTTP %d", group.Name, res.StatusCode())
	}
	return nil
}

// UpsertGroup replaces the member list of the group named `name`
// wholesale, creating the group if it doesn't exist yet. Running the
// same scrape twice leaves one group with the latest results.
func (c *Client) UpsertGroup(ctx context.Context, name string, targets []User) error {
	groups, err := c.Groups(ctx)
	if err != nil {
		return err
	}

	for _, group := range groups {
		if group.Name != name {
			continue
		}
		cliutil.Success("gophish > updating existing users group '%s'", name)
		group.Targets = targets
		return c.UpdateGroup(ctx, group)
	}

	cliutil.Success("gophish > adding users to group '%s'", name)
	return c.CreateGroup(ctx, Group{Name: name, Targets: targets})
}
