// Package api exposes the chat engine and its collaborators over HTTP.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/notepid/flockr/internal/apperr"
	"github.com/notepid/flockr/internal/channel"
	"github.com/notepid/flockr/internal/message"
	"github.com/notepid/flockr/internal/metrics"
	"github.com/notepid/flockr/internal/stream"
	"github.com/notepid/flockr/internal/user"
)

// Deps are the services the HTTP layer calls into. Metrics, Gatherer and
// Streams are optional.
type Deps struct {
	Users    *user.Repo
	Sessions *user.Sessions
	Channels *channel.Repo
	Messages *message.Store
	Streams  *stream.Server
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// Server routes HTTP requests to the services.
type Server struct {
	users    *user.Repo
	sessions *user.Sessions
	channels *channel.Repo
	messages *message.Store
	streams  *stream.Server
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

// New creates an HTTP server over deps.
func New(deps Deps) *Server {
	return &Server{
		users:    deps.Users,
		sessions: deps.Sessions,
		channels: deps.Channels,
		messages: deps.Messages,
		streams:  deps.Streams,
		metrics:  deps.Metrics,
		gatherer: deps.Gatherer,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.countRequests)

	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	r.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.requireAuth(s.logout)).Methods(http.MethodPost)

	r.HandleFunc("/channels/create", s.requireAuth(s.createChannel)).Methods(http.MethodPost)
	r.HandleFunc("/channels/list", s.requireAuth(s.listChannels)).Methods(http.MethodGet)
	r.HandleFunc("/channels/listall", s.requireAuth(s.listAllChannels)).Methods(http.MethodGet)

	r.HandleFunc("/channel/invite", s.requireAuth(s.invite)).Methods(http.MethodPost)
	r.HandleFunc("/channel/details", s.requireAuth(s.details)).Methods(http.MethodGet)
	r.HandleFunc("/channel/messages", s.requireAuth(s.channelMessages)).Methods(http.MethodGet)
	r.HandleFunc("/channel/leave", s.requireAuth(s.leave)).Methods(http.MethodPost)
	r.HandleFunc("/channel/join", s.requireAuth(s.join)).Methods(http.MethodPost)
	r.HandleFunc("/channel/addowner", s.requireAuth(s.addOwner)).Methods(http.MethodPost)
	r.HandleFunc("/channel/removeowner", s.requireAuth(s.removeOwner)).Methods(http.MethodPost)
	r.HandleFunc("/channel/stream", s.requireAuth(s.stream)).Methods(http.MethodGet)

	r.HandleFunc("/message/send", s.requireAuth(s.send)).Methods(http.MethodPost)
	r.HandleFunc("/message/sendlater", s.requireAuth(s.sendLater)).Methods(http.MethodPost)
	r.HandleFunc("/message/edit", s.requireAuth(s.edit)).Methods(http.MethodPut)
	r.HandleFunc("/message/remove", s.requireAuth(s.remove)).Methods(http.MethodDelete)
	r.HandleFunc("/message/react", s.requireAuth(s.react)).Methods(http.MethodPost)
	r.HandleFunc("/message/unreact", s.requireAuth(s.unreact)).Methods(http.MethodPost)
	r.HandleFunc("/message/pin", s.requireAuth(s.pin)).Methods(http.MethodPost)
	r.HandleFunc("/message/unpin", s.requireAuth(s.unpin)).Methods(http.MethodPost)
	r.HandleFunc("/search", s.requireAuth(s.search)).Methods(http.MethodGet)

	r.HandleFunc("/standup/start", s.requireAuth(s.standupStart)).Methods(http.MethodPost)
	r.HandleFunc("/standup/active", s.requireAuth(s.standupActive)).Methods(http.MethodGet)
	r.HandleFunc("/standup/send", s.requireAuth(s.standupSend)).Methods(http.MethodPost)

	r.HandleFunc("/user/profile", s.requireAuth(s.profile)).Methods(http.MethodGet)
	r.HandleFunc("/user/profile/setname", s.requireAuth(s.setName)).Methods(http.MethodPut)
	r.HandleFunc("/user/profile/setemail", s.requireAuth(s.setEmail)).Methods(http.MethodPut)
	r.HandleFunc("/user/profile/sethandle", s.requireAuth(s.setHandle)).Methods(http.MethodPut)
	r.HandleFunc("/users/all", s.requireAuth(s.usersAll)).Methods(http.MethodGet)
	r.HandleFunc("/admin/userpermission/change", s.requireAuth(s.changePermission)).Methods(http.MethodPost)

	r.HandleFunc("/clear", s.requireAuth(s.clear)).Methods(http.MethodDelete)
	return r
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	ok(w, map[string]string{"status": "ok"})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v); err != nil {
		return apperr.InvalidArg("invalid json body")
	}
	return nil
}

func queryInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0, apperr.InvalidArg(name + " must be an integer")
	}
	return n, nil
}
