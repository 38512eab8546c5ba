package services

import (
	"context"
	"encoding/json"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birkaops/birka/internal/client/client"
)

// ---- fake client ----

type call struct {
	Method string
	Path   string
	Body   string
	Query  url.Values
}

// fakeClient implements client.Client. Responses are JSON strings keyed by
// "METHOD path"; errs fail the matching request.
type fakeClient struct {
	responses map[string]string
	errs      map[string]error
	blob      *client.Blob
	calls     []call
}

func newFakeClient() *fakeClient {
	return &fakeClient{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeClient) record(method, path string, body any, opts []client.RequestOption) string {
	c := call{Method: method, Path: path}
	if body != nil {
		b, _ := json.Marshal(body)
		c.Body = string(b)
	}
	_, c.Query = client.ApplyOptions(opts...)
	f.calls = append(f.calls, c)
	return method + " " + path
}

func (f *fakeClient) Do(_ context.Context, method, path string, body, out any, opts ...client.RequestOption) error {
	key := f.record(method, path, body, opts)
	if err := f.errs[key]; err != nil {
		return err
	}
	if resp, ok := f.responses[key]; ok && out != nil {
		return json.Unmarshal([]byte(resp), out)
	}
	return nil
}

func (f *fakeClient) File(_ context.Context, method, path string, body any, opts ...client.RequestOption) (*client.Blob, error) {
	key := f.record(method, path, body, opts)
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	return f.blob, nil
}

func (f *fakeClient) UploadForm(context.Context, string, *client.Form, func(int), any) error {
	return nil
}

func openRepos(t *testing.T) *client.Repositories {
	t.Helper()
	repos, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "birka.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}
