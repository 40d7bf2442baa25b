package gophish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeGophish struct {
	groups  []Group
	created []Group
	updated []Group
}

func (f *fakeGophish) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(f.groups)
		case r.Method == http.MethodPost:
			var group Group
			require.NoError(t, json.NewDecoder(r.Body).Decode(&group))
			f.created = append(f.created, group)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(group)
		case r.Method == http.MethodPut:
			var group Group
			require.NoError(t, json.NewDecoder(r.Body).Decode(&group))
			f.updated = append(f.updated, group)
			json.NewEncoder(w).Encode(group)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func newTestClient(t *testing.T, fake *fakeGophish) *Client {
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)
	return NewClient(ClientOptions{
		AdminUrl: server.URL,
		ApiKey:   "secret",
	})
}

var targets = []User{
	{FirstName: "Joe", LastName: "Dirt", Email: "jdirt@acme.com", Position: "Chief Yard Officer"},
	{FirstName: "Mary", LastName: "Skinner", Email: "mskinner@acme.com"},
}

func TestUpsertGroupCreates(t *testing.T) {
	fake := &fakeGophish{}
	client := newTestClient(t, fake)

	err := client.UpsertGroup(context.Background(), "acme-all", targets)
	require.NoError(t, err)

	require.Len(t, fake.created, 1)
	require.Empty(t, fake.updated)
	require.Equal(t, "acme-all", fake.created[0].Name)
	require.Equal(t, targets, fake.created[0].Targets)
}

func TestUpsertGroupReplacesMembers(t *testing.T) {
	fake := &fakeGophish{
		groups: []Group{
			{Id: 3, Name: "other-all", Targets: []User{{Email: "x@other.com"}}},
			{Id: 7, Name: "acme-all", Targets: []User{{Email: "stale@acme.com"}}},
		},
	}
	client := newTestClient(t, fake)

	err := client.UpsertGroup(context.Background(), "acme-all", targets)
	require.NoError(t, err)

	require.Empty(t, fake.created)
	require.Len(t, fake.updated, 1)
	// the member list is replaced wholesale, not appended to
	require.Equal(t, int64(7), fake.updated[0].Id)
	require.Equal(t, targets, fake.updated[0].Targets)
}
