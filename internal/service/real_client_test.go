package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the service saw for one call.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

// fakeService is a minimal in-process assisted service. Each test programs
// the handler it needs; every request is recorded.
type fakeService struct {
	server   *httptest.Server
	requests []recordedRequest
	handler  http.HandlerFunc
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	fs := &fakeService{}
	fs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fs.requests = append(fs.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		if fs.handler != nil {
			fs.handler(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(fs.server.Close)
	return fs
}

func (fs *fakeService) respondJSON(status int, v any) {
	fs.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (fs *fakeService) last(t *testing.T) recordedRequest {
	t.Helper()
	require.NotEmpty(t, fs.requests)
	return fs.requests[len(fs.requests)-1]
}

func TestRegisterInfraEnv(t *testing.T) {
	fs := newFakeService(t)
	fs.respondJSON(http.StatusCreated, InfraEnv{ID: "env-123", Name: "test-env"})

	client := NewRealClient(fs.server.URL)
	infraEnv, err := client.RegisterInfraEnv(context.Background(), &InfraEnvCreateParams{
		Name:       "test-env",
		PullSecret: "{}",
	})
	require.NoError(t, err)
	assert.Equal(t, "env-123", infraEnv.ID)

	req := fs.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/assisted-install/v2/infra-envs", req.Path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	assert.Equal(t, "test-env", sent["name"])
	assert.NotContains(t, sent, "cluster_id", "unset optional fields stay out of the payload")
	assert.NotContains(t, sent, "proxy")
}

func TestRegisterInfraEnv_ErrorResponse(t *testing.T) {
	fs := newFakeService(t)
	fs.handler = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"reason": "pull secret invalid"}`, http.StatusBadRequest)
	}

	client := NewRealClient(fs.server.URL)
	_, err := client.RegisterInfraEnv(context.Background(), &InfraEnvCreateParams{Name: "x"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "pull secret invalid")
	assert.Contains(t, err.Error(), "HTTP 400")
}

func TestUpdateInfraEnv(t *testing.T) {
	fs := newFakeService(t)
	fs.respondJSON(http.StatusCreated, InfraEnv{ID: "env-123"})

	client := NewRealClient(fs.server.URL)
	imageType := "minimal-iso"
	_, err := client.UpdateInfraEnv(context.Background(), "env-123", &InfraEnvUpdateParams{ImageType: &imageType})
	require.NoError(t, err)

	req := fs.last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/api/assisted-install/v2/infra-envs/env-123", req.Path)
	assert.JSONEq(t, `{"image_type": "minimal-iso"}`, string(req.Body))
}

func TestGetInfraEnv_NotFound(t *testing.T) {
	fs := newFakeService(t)
	fs.handler = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "infra-env not found", http.StatusNotFound)
	}

	client := NewRealClient(fs.server.URL)
	_, err := client.GetInfraEnv(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDeregisterInfraEnv(t *testing.T) {
	fs := newFakeService(t)

	client := NewRealClient(fs.server.URL)
	require.NoError(t, client.DeregisterInfraEnv(context.Background(), "env-123"))

	req := fs.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/api/assisted-install/v2/infra-envs/env-123", req.Path)
}

func TestListHosts(t *testing.T) {
	fs := newFakeService(t)
	fs.respondJSON(http.StatusOK, []Host{
		{ID: "h1", Status: "known-unbound"},
		{ID: "h2", Status: "discovering-unbound"},
	})

	client := NewRealClient(fs.server.URL)
	hosts, err := client.ListHosts(context.Background(), "env-123")
	require.NoError(t, err)
	require.Len(t, hosts, 2)
	assert.Equal(t, "h1", hosts[0].ID)
	assert.Equal(t, "known-unbound", hosts[0].Status)

	assert.Equal(t, "/api/assisted-install/v2/infra-envs/env-123/hosts", fs.last(t).Path)
}

func TestUpdateHost_OmitsAbsentFields(t *testing.T) {
	fs := newFakeService(t)

	client := NewRealClient(fs.server.URL)
	role := "master"
	err := client.UpdateHost(context.Background(), "env-123", "h1", &HostUpdateParams{HostRole: &role})
	require.NoError(t, err)

	req := fs.last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/api/assisted-install/v2/infra-envs/env-123/hosts/h1", req.Path)
	assert.JSONEq(t, `{"host_role": "master"}`, string(req.Body))
}

func TestUpdateHostInstallerArgs(t *testing.T) {
	fs := newFakeService(t)

	client := NewRealClient(fs.server.URL)
	err := client.UpdateHostInstallerArgs(context.Background(), "env-123", "h1",
		[]string{"--append-karg", "nameserver=8.8.8.8"})
	require.NoError(t, err)

	req := fs.last(t)
	assert.Equal(t, "/api/assisted-install/v2/infra-envs/env-123/hosts/h1/installer-args", req.Path)
	assert.JSONEq(t, `{"args": ["--append-karg", "nameserver=8.8.8.8"]}`, string(req.Body))
}

func TestBindAndUnbindHost(t *testing.T) {
	fs := newFakeService(t)
	client := NewRealClient(fs.server.URL)

	require.NoError(t, client.BindHost(context.Background(), "env-123", "h1", "cluster-9"))
	req := fs.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/assisted-install/v2/infra-envs/env-123/hosts/h1/actions/bind", req.Path)
	assert.JSONEq(t, `{"cluster_id": "cluster-9"}`, string(req.Body))

	require.NoError(t, client.UnbindHost(context.Background(), "env-123", "h1"))
	req = fs.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/assisted-install/v2/infra-envs/env-123/hosts/h1/actions/unbind", req.Path)
}

func TestDownloadFile(t *testing.T) {
	fs := newFakeService(t)
	fs.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("#!ipxe\nchain http://example/boot\n"))
	}

	destPath := filepath.Join(t.TempDir(), "ipxe-script")
	client := NewRealClient(fs.server.URL)
	require.NoError(t, client.DownloadFile(context.Background(), "env-123", "ipxe-script", destPath))

	req := fs.last(t)
	assert.Equal(t, "/api/assisted-install/v2/infra-envs/env-123/downloads/files", req.Path)
	assert.Equal(t, "file_name=ipxe-script", req.Query)

	data, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#!ipxe")
}

func TestDownloadFromURL(t *testing.T) {
	fs := newFakeService(t)
	fs.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("iso-bytes"))
	}

	destPath := filepath.Join(t.TempDir(), "discovery.iso")
	client := NewRealClient(fs.server.URL)
	got, err := client.DownloadFromURL(context.Background(), fs.server.URL+"/images/env-123", destPath, true)
	require.NoError(t, err)
	assert.Equal(t, destPath, got)

	data, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, "iso-bytes", string(data))
}

func TestDownloadFromURL_ErrorResponse(t *testing.T) {
	fs := newFakeService(t)
	fs.handler = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "image expired", http.StatusNotFound)
	}

	client := NewRealClient(fs.server.URL)
	_, err := client.DownloadFromURL(context.Background(), fs.server.URL+"/images/env-123",
		filepath.Join(t.TempDir(), "discovery.iso"), true)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestGetDiscoveryIgnition(t *testing.T) {
	fs := newFakeService(t)
	fs.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ignition": {"version": "3.1.0"}}`))
	}

	client := NewRealClient(fs.server.URL)
	ignition, err := client.GetDiscoveryIgnition(context.Background(), "env-123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ignition": {"version": "3.1.0"}}`, ignition)

	req := fs.last(t)
	assert.Equal(t, "file_name=discovery.ign", req.Query)
}

func TestPatchDiscoveryIgnition(t *testing.T) {
	fs := newFakeService(t)
	fs.respondJSON(http.StatusCreated, InfraEnv{ID: "env-123"})

	client := NewRealClient(fs.server.URL)
	require.NoError(t, client.PatchDiscoveryIgnition(context.Background(), "env-123", `{"ignition": {}}`))

	req := fs.last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.JSONEq(t, `{"ignition_config_override": "{\"ignition\": {}}"}`, string(req.Body))
}

func TestAuthTokenHeader(t *testing.T) {
	fs := newFakeService(t)
	fs.respondJSON(http.StatusOK, []InfraEnv{})

	client := NewRealClient(fs.server.URL, WithAuthToken("secret-token"))
	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "Bearer secret-token", fs.last(t).Auth)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	fs := newFakeService(t)
	fs.respondJSON(http.StatusOK, []InfraEnv{})

	client := NewRealClient(fs.server.URL)
	require.NoError(t, client.Ping(context.Background()))
	assert.Empty(t, fs.last(t).Auth)
}
