// Package api is the HTTP surface of the guestbook: the server side of the
// protocol the remote client strategy speaks.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"github.com/witch49/wedding-invitation/pkg/guestbook"
	"github.com/witch49/wedding-invitation/pkg/models"
	"github.com/witch49/wedding-invitation/pkg/storage"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Storage is what the server needs from a store: an offset/limit list with an
// exact total, plus the write and delete operations.
type Storage interface {
	List(ctx context.Context, offset, limit int) (posts []models.Post, total int, err error)
	Create(ctx context.Context, name, content, password string) error
	Delete(ctx context.Context, id int64, password string) error
}

type API struct {
	ServiceName string
	DB          Storage
	Router      *mux.Router
	kw          *kafka.Writer
}

func New(name string, db Storage, kafkaWriter *kafka.Writer) *API {
	api := API{
		ServiceName: name,
		DB:          db,
		Router:      mux.NewRouter(),
		kw:          kafkaWriter,
	}
	api.endpoints()

	return &api
}

func (api *API) endpoints() {
	api.Router.Use(api.requestIDMiddleware)
	api.Router.Use(api.headerMiddleware)

	if api.kw != nil {
		api.Router.Use(api.loggingMiddleware(api.kw))
	}

	api.Router.HandleFunc("/guestbook", api.listHandler).Methods(http.MethodGet)
	api.Router.HandleFunc("/guestbook", api.createHandler).Methods(http.MethodPost)
	api.Router.HandleFunc("/guestbook", api.deleteHandler).Methods(http.MethodPut)
}

func (api *API) listHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		http.Error(w, "Limit parameter is too big", http.StatusBadRequest)
		log.Debugf("[listHandler][%s] request with too big limit parameter", sID)
		return
	}

	posts, total, err := api.DB.List(r.Context(), offset, limit)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		log.Errorf("[listHandler][%s] List() returned error: %v", sID, err)
		return
	}

	resp := ListResponse{Posts: posts, Total: total}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		log.Errorf("[listHandler][%s] failed to encode response data: %v", sID, err)
		return
	}

	log.Debugf("[listHandler][%s] response sent to: %v", sID, r.RemoteAddr)
}

func (api *API) createHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request: invalid JSON", http.StatusBadRequest)
		log.Debugf("[createHandler][%s] invalid JSON: %v", sID, err)
		return
	}
	defer r.Body.Close()

	if err := guestbook.ValidateEntry(req.Name, req.Content, req.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Debugf("[createHandler][%s] rejected entry: %v", sID, err)
		return
	}

	if err := api.DB.Create(r.Context(), req.Name, req.Content, req.Password); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		log.Errorf("[createHandler][%s] Create() returned error: %v", sID, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	log.Debugf("[createHandler][%s] entry from %q created", sID, req.Name)
}

func (api *API) deleteHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request: invalid JSON", http.StatusBadRequest)
		log.Debugf("[deleteHandler][%s] invalid JSON: %v", sID, err)
		return
	}
	defer r.Body.Close()

	if err := guestbook.ValidatePassword(req.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Debugf("[deleteHandler][%s] rejected deletion: %v", sID, err)
		return
	}

	err := api.DB.Delete(r.Context(), req.ID, req.Password)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
		log.Debugf("[deleteHandler][%s] entry id:%d deleted", sID, req.ID)
	case errors.Is(err, storage.ErrWrongPassword):
		http.Error(w, "Forbidden", http.StatusForbidden)
		log.Debugf("[deleteHandler][%s] wrong password for entry id:%d", sID, req.ID)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Entry not found", http.StatusNotFound)
		log.Debugf("[deleteHandler][%s] entry id:%d not found", sID, req.ID)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		log.Errorf("[deleteHandler][%s] Delete() returned error: %v", sID, err)
	}
}

// shorten truncates a string to 6 characters if it is longer than 6, appends '...' at the end,
// otherwise it returns the string unchanged.
func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
