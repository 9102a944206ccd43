package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-logr/logr"

	"github.com/omer-vishlitzky/assisted-test-infra/internal/consts"
)

const apiPrefix = "/api/assisted-install/v2"

// RealClient implements InventoryClient against a live assisted service.
type RealClient struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	log        logr.Logger
}

// Option configures a RealClient.
type Option func(*RealClient)

// WithAuthToken sets a bearer token attached to every request.
func WithAuthToken(token string) Option {
	return func(c *RealClient) {
		c.authToken = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(log logr.Logger) Option {
	return func(c *RealClient) {
		c.log = log
	}
}

// NewRealClient creates a client for the service at baseURL, e.g.
// "http://assisted-service.example:8090".
func NewRealClient(baseURL string, opts ...Option) *RealClient {
	c := &RealClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		log:        logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping checks that the service answers its infra-env listing endpoint.
func (c *RealClient) Ping(ctx context.Context) error {
	var infraEnvs []InfraEnv
	return c.do(ctx, "list_infra_envs", http.MethodGet, apiPrefix+"/infra-envs", nil, &infraEnvs)
}

// --- InfraEnvManager ---

func (c *RealClient) RegisterInfraEnv(ctx context.Context, params *InfraEnvCreateParams) (*InfraEnv, error) {
	var infraEnv InfraEnv
	path := apiPrefix + "/infra-envs"
	if err := c.do(ctx, "register_infra_env", http.MethodPost, path, params, &infraEnv); err != nil {
		return nil, err
	}
	return &infraEnv, nil
}

func (c *RealClient) UpdateInfraEnv(ctx context.Context, infraEnvID string, params *InfraEnvUpdateParams) (*InfraEnv, error) {
	var infraEnv InfraEnv
	path := fmt.Sprintf("%s/infra-envs/%s", apiPrefix, infraEnvID)
	if err := c.do(ctx, "update_infra_env", http.MethodPatch, path, params, &infraEnv); err != nil {
		return nil, err
	}
	return &infraEnv, nil
}

func (c *RealClient) GetInfraEnv(ctx context.Context, infraEnvID string) (*InfraEnv, error) {
	var infraEnv InfraEnv
	path := fmt.Sprintf("%s/infra-envs/%s", apiPrefix, infraEnvID)
	if err := c.do(ctx, "get_infra_env", http.MethodGet, path, nil, &infraEnv); err != nil {
		return nil, err
	}
	return &infraEnv, nil
}

func (c *RealClient) DeregisterInfraEnv(ctx context.Context, infraEnvID string) error {
	path := fmt.Sprintf("%s/infra-envs/%s", apiPrefix, infraEnvID)
	return c.do(ctx, "deregister_infra_env", http.MethodDelete, path, nil, nil)
}

// --- HostManager ---

func (c *RealClient) ListHosts(ctx context.Context, infraEnvID string) ([]*Host, error) {
	var hosts []*Host
	path := fmt.Sprintf("%s/infra-envs/%s/hosts", apiPrefix, infraEnvID)
	if err := c.do(ctx, "list_hosts", http.MethodGet, path, nil, &hosts); err != nil {
		return nil, err
	}
	return hosts, nil
}

func (c *RealClient) UpdateHost(ctx context.Context, infraEnvID, hostID string, params *HostUpdateParams) error {
	path := fmt.Sprintf("%s/infra-envs/%s/hosts/%s", apiPrefix, infraEnvID, hostID)
	return c.do(ctx, "update_host", http.MethodPatch, path, params, nil)
}

func (c *RealClient) UpdateHostInstallerArgs(ctx context.Context, infraEnvID, hostID string, args []string) error {
	path := fmt.Sprintf("%s/infra-envs/%s/hosts/%s/installer-args", apiPrefix, infraEnvID, hostID)
	payload := struct {
		Args []string `json:"args"`
	}{Args: args}
	return c.do(ctx, "update_host_installer_args", http.MethodPatch, path, payload, nil)
}

func (c *RealClient) BindHost(ctx context.Context, infraEnvID, hostID, clusterID string) error {
	path := fmt.Sprintf("%s/infra-envs/%s/hosts/%s/actions/bind", apiPrefix, infraEnvID, hostID)
	return c.do(ctx, "bind_host", http.MethodPost, path, &BindHostParams{ClusterID: clusterID}, nil)
}

func (c *RealClient) UnbindHost(ctx context.Context, infraEnvID, hostID string) error {
	path := fmt.Sprintf("%s/infra-envs/%s/hosts/%s/actions/unbind", apiPrefix, infraEnvID, hostID)
	return c.do(ctx, "unbind_host", http.MethodPost, path, nil, nil)
}

func (c *RealClient) DeregisterHost(ctx context.Context, infraEnvID, hostID string) error {
	path := fmt.Sprintf("%s/infra-envs/%s/hosts/%s", apiPrefix, infraEnvID, hostID)
	return c.do(ctx, "deregister_host", http.MethodDelete, path, nil, nil)
}

// --- FileDownloader ---

func (c *RealClient) DownloadFile(ctx context.Context, infraEnvID, fileName, destPath string) error {
	body, err := c.openFileStream(ctx, infraEnvID, fileName)
	if err != nil {
		return err
	}
	defer body.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, body); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	return nil
}

func (c *RealClient) DownloadFromURL(ctx context.Context, downloadURL, destPath string, verifyTLS bool) (string, error) {
	client := c.httpClient
	if !verifyTLS {
		client = &http.Client{
			Timeout: c.httpClient.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402
			},
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		observeRequest("download_url", 0, start)
		return "", fmt.Errorf("GET %s: %w", downloadURL, err)
	}
	defer resp.Body.Close()
	observeRequest("download_url", resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &APIError{Method: http.MethodGet, Path: downloadURL, StatusCode: resp.StatusCode, Body: string(body)}
	}

	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	return destPath, nil
}

func (c *RealClient) GetDiscoveryIgnition(ctx context.Context, infraEnvID string) (string, error) {
	body, err := c.openFileStream(ctx, infraEnvID, consts.DiscoveryIgnitionFileName)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read discovery ignition: %w", err)
	}
	return string(data), nil
}

func (c *RealClient) PatchDiscoveryIgnition(ctx context.Context, infraEnvID, ignition string) error {
	_, err := c.UpdateInfraEnv(ctx, infraEnvID, &InfraEnvUpdateParams{IgnitionConfigOverride: &ignition})
	return err
}

// openFileStream issues the infra-env file download request and returns the
// response body. The caller owns closing it.
func (c *RealClient) openFileStream(ctx context.Context, infraEnvID, fileName string) (io.ReadCloser, error) {
	path := fmt.Sprintf("%s/infra-envs/%s/downloads/files", apiPrefix, infraEnvID)
	u := c.baseURL + path + "?" + url.Values{"file_name": {fileName}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest("download_file", 0, start)
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	observeRequest("download_file", resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		return nil, &APIError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return resp.Body, nil
}

// do issues one JSON API call. Transport failures and non-2xx responses are
// returned to the caller unchanged in kind; there are no retries at this
// layer.
func (c *RealClient) do(ctx context.Context, operation, method, path string, in, out any) error {
	var bodyReader io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	c.log.V(1).Info("issuing API request", "method", method, "path", path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest(operation, 0, start)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	observeRequest(operation, resp.StatusCode, start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func (c *RealClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}
