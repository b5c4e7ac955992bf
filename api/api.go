// Package api exposes the node server over HTTP: the nodes and their drivers
// can be read, and commands queued for delivery to the controller.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/therealmysteryman/udi-milight-pg3/common"
	"github.com/therealmysteryman/udi-milight-pg3/host"
)

// Nodes lists the nodes known to the controller
type Nodes interface {
	Nodes() []host.Node
}

// Poster queues events for the controller
type Poster interface {
	Post(ev host.Event) error
}

// API holds the handler dependencies
type API struct {
	nodes  Nodes
	poster Poster
	log    common.Logger
}

type commandResponse struct {
	Address string             `json:"address"`
	Command common.CommandName `json:"command"`
	Value   *int               `json:"value,omitempty"`
}

// New returns an API reading nodes from nodes and posting commands to poster
func New(nodes Nodes, poster Poster, logger common.Logger) *API {
	return &API{nodes: nodes, poster: poster, log: common.LoggerOrStub(logger)}
}

// Router returns the HTTP handler serving the API
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", a.Health)
	r.Route("/nodes", func(r chi.Router) {
		r.Get("/", a.ListNodes)
		r.Get("/{address}", a.GetNode)
		r.Post("/{address}/commands/{command}", a.PostCommand)
	})
	return r
}

// Health handles GET /healthz
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListNodes handles GET /nodes
func (a *API) ListNodes(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.nodes.Nodes())
}

// GetNode handles GET /nodes/{address}
func (a *API) GetNode(w http.ResponseWriter, r *http.Request) {
	node, ok := a.find(chi.URLParam(r, "address"))
	if !ok {
		http.Error(w, "Node not found", http.StatusNotFound)
		return
	}
	a.writeJSON(w, http.StatusOK, node)
}

// PostCommand handles POST /nodes/{address}/commands/{command}, with an
// optional value query parameter.  The command is queued and runs
// asynchronously.
func (a *API) PostCommand(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	if _, ok := a.find(address); !ok {
		http.Error(w, "Node not found", http.StatusNotFound)
		return
	}

	cmd := common.NewCommand(common.CommandName(strings.ToUpper(chi.URLParam(r, "command"))))
	if raw := r.URL.Query().Get("value"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid value: "+err.Error(), http.StatusBadRequest)
			return
		}
		cmd.Value = &v
	}

	if err := a.poster.Post(host.Event{Type: host.EventCommand, Address: address, Command: cmd}); err != nil {
		a.log.Errorf("Unable to queue %s for %s: %v", cmd, address, err)
		if errors.Is(err, common.ErrClosed) {
			http.Error(w, "Node server is stopping", http.StatusServiceUnavailable)
		} else {
			http.Error(w, "Failed to queue command", http.StatusInternalServerError)
		}
		return
	}

	a.log.Debugf("Queued %s for %s", cmd, address)
	a.writeJSON(w, http.StatusAccepted, commandResponse{Address: address, Command: cmd.Name, Value: cmd.Value})
}

func (a *API) find(address string) (host.Node, bool) {
	for _, node := range a.nodes.Nodes() {
		if node.Address == address {
			return node, true
		}
	}
	return host.Node{}, false
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Errorf("Failed to encode response: %v", err)
	}
}
