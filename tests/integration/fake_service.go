//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/omer-vishlitzky/assisted-test-infra/internal/service"
)

// fakeAssistedService is a stateful in-memory stand-in for the assisted
// service. It implements just enough of the v2 REST API for the entity's
// lifecycle: infra-env CRUD, host listing and mutation, and file downloads.
type fakeAssistedService struct {
	mu        sync.Mutex
	server    *httptest.Server
	infraEnvs map[string]*service.InfraEnv
	hosts     map[string][]*service.Host
	ignitions map[string]string
	isoBytes  []byte
}

func newFakeAssistedService() *fakeAssistedService {
	fs := &fakeAssistedService{
		infraEnvs: make(map[string]*service.InfraEnv),
		hosts:     make(map[string][]*service.Host),
		ignitions: make(map[string]string),
		isoBytes:  []byte("fake-discovery-iso"),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/assisted-install/v2/infra-envs", fs.handleCollection)
	mux.HandleFunc("/api/assisted-install/v2/infra-envs/", fs.handleResource)
	mux.HandleFunc("/images/", fs.handleImage)
	fs.server = httptest.NewServer(mux)
	return fs
}

func (fs *fakeAssistedService) Close()      { fs.server.Close() }
func (fs *fakeAssistedService) URL() string { return fs.server.URL }

// addHost registers a host under an infra-env, simulating a machine that
// booted the discovery image.
func (fs *fakeAssistedService) addHost(infraEnvID, status string) string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	hostID := uuid.NewString()
	fs.hosts[infraEnvID] = append(fs.hosts[infraEnvID], &service.Host{
		ID:         hostID,
		InfraEnvID: infraEnvID,
		Status:     status,
	})
	return hostID
}

func (fs *fakeAssistedService) setHostStatus(infraEnvID, hostID, status string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for _, host := range fs.hosts[infraEnvID] {
		if host.ID == hostID {
			host.Status = status
		}
	}
}

func (fs *fakeAssistedService) handleCollection(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		envs := make([]*service.InfraEnv, 0, len(fs.infraEnvs))
		for _, env := range fs.infraEnvs {
			envs = append(envs, env)
		}
		writeJSON(w, http.StatusOK, envs)
	case http.MethodPost:
		var params service.InfraEnvCreateParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if params.Name == "" || params.PullSecret == "" {
			http.Error(w, "name and pull_secret are required", http.StatusBadRequest)
			return
		}
		id := uuid.NewString()
		env := &service.InfraEnv{
			ID:               id,
			Name:             params.Name,
			OpenshiftVersion: params.OpenshiftVersion,
			CPUArchitecture:  params.CPUArchitecture,
			SSHAuthorizedKey: params.SSHAuthorizedKey,
			Type:             params.ImageType,
			Proxy:            params.Proxy,
			KernelArguments:  params.KernelArguments,
			DownloadURL:      fs.server.URL + "/images/" + id,
		}
		fs.infraEnvs[id] = env
		fs.ignitions[id] = `{"ignition": {"version": "3.1.0"}}`
		if params.IgnitionConfigOverride != "" {
			fs.ignitions[id] = params.IgnitionConfigOverride
		}
		writeJSON(w, http.StatusCreated, env)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (fs *fakeAssistedService) handleResource(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	rest := strings.TrimPrefix(r.URL.Path, "/api/assisted-install/v2/infra-envs/")
	parts := strings.Split(rest, "/")
	infraEnvID := parts[0]

	env, ok := fs.infraEnvs[infraEnvID]
	if !ok {
		http.Error(w, fmt.Sprintf("infra-env %s not found", infraEnvID), http.StatusNotFound)
		return
	}

	switch {
	case len(parts) == 1:
		fs.handleInfraEnv(w, r, env)
	case len(parts) == 2 && parts[1] == "hosts":
		writeJSON(w, http.StatusOK, fs.hosts[infraEnvID])
	case len(parts) == 3 && parts[1] == "hosts":
		fs.handleHost(w, r, infraEnvID, parts[2])
	case len(parts) == 4 && parts[1] == "hosts" && parts[3] == "installer-args":
		w.WriteHeader(http.StatusCreated)
	case len(parts) == 5 && parts[1] == "hosts" && parts[3] == "actions":
		fs.handleHostAction(w, infraEnvID, parts[2], parts[4])
	case len(parts) == 3 && parts[1] == "downloads" && parts[2] == "files":
		fs.handleFileDownload(w, r, infraEnvID)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (fs *fakeAssistedService) handleInfraEnv(w http.ResponseWriter, r *http.Request, env *service.InfraEnv) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, env)
	case http.MethodPatch:
		var params service.InfraEnvUpdateParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if params.ImageType != nil {
			env.Type = *params.ImageType
		}
		if params.Proxy != nil {
			env.Proxy = params.Proxy
		}
		if params.KernelArguments != nil {
			env.KernelArguments = params.KernelArguments
		}
		if params.IgnitionConfigOverride != nil {
			fs.ignitions[env.ID] = *params.IgnitionConfigOverride
		}
		if params.StaticNetworkConfig != nil {
			data, _ := json.Marshal(params.StaticNetworkConfig)
			env.StaticNetworkConfig = string(data)
		}
		writeJSON(w, http.StatusCreated, env)
	case http.MethodDelete:
		if len(fs.hosts[env.ID]) > 0 {
			http.Error(w, "infra-env still has registered hosts", http.StatusConflict)
			return
		}
		delete(fs.infraEnvs, env.ID)
		delete(fs.ignitions, env.ID)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (fs *fakeAssistedService) handleHost(w http.ResponseWriter, r *http.Request, infraEnvID, hostID string) {
	idx := -1
	for i, host := range fs.hosts[infraEnvID] {
		if host.ID == hostID {
			idx = i
		}
	}
	if idx == -1 {
		http.Error(w, "host not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var params service.HostUpdateParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		host := fs.hosts[infraEnvID][idx]
		if params.HostRole != nil {
			host.Role = *params.HostRole
		}
		if params.HostName != nil {
			host.RequestedHostname = *params.HostName
		}
		writeJSON(w, http.StatusCreated, host)
	case http.MethodDelete:
		fs.hosts[infraEnvID] = append(fs.hosts[infraEnvID][:idx], fs.hosts[infraEnvID][idx+1:]...)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (fs *fakeAssistedService) handleHostAction(w http.ResponseWriter, infraEnvID, hostID, action string) {
	for _, host := range fs.hosts[infraEnvID] {
		if host.ID != hostID {
			continue
		}
		switch action {
		case "bind":
			host.Status = "binding"
		case "unbind":
			host.Status = "unbinding"
			host.ClusterID = ""
		default:
			http.Error(w, "unknown action", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, host)
		return
	}
	http.Error(w, "host not found", http.StatusNotFound)
}

func (fs *fakeAssistedService) handleFileDownload(w http.ResponseWriter, r *http.Request, infraEnvID string) {
	switch r.URL.Query().Get("file_name") {
	case "discovery.ign":
		_, _ = w.Write([]byte(fs.ignitions[infraEnvID]))
	case "ipxe-script":
		_, _ = w.Write([]byte("#!ipxe\nchain " + fs.server.URL + "/images/" + infraEnvID + "\n"))
	default:
		http.Error(w, "unknown file", http.StatusNotFound)
	}
}

func (fs *fakeAssistedService) handleImage(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	id := strings.TrimPrefix(r.URL.Path, "/images/")
	if _, ok := fs.infraEnvs[id]; !ok {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	_, _ = w.Write(fs.isoBytes)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
