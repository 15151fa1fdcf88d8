package v1

import (
	"encoding/json"
	"errors"
	"github.com/gorilla/mux"
	"github.com/shimmeringbee/logwrap"
	"github.com/switchyard/controller/action"
	"github.com/switchyard/controller/interface/http/auth"
	"github.com/switchyard/controller/session"
	"io"
	"net/http"
)

type sessionController struct {
	sessions session.Mapper
	logger   logwrap.Logger
}

func (s *sessionController) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	name, ok := mux.Vars(r)["name"]
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}

	sess, found := s.sessions.Session(name)
	if !found {
		http.NotFound(w, r)
		return nil, false
	}

	return sess, true
}

func (s *sessionController) marshal(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, data)
}

func (s *sessionController) listSessions(w http.ResponseWriter, r *http.Request) {
	s.marshal(w, s.sessions.Names())
}

func (s *sessionController) getModel(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	s.marshal(w, sess.Catalog().Model())
}

func (s *sessionController) listActions(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	s.marshal(w, sess.Catalog().Descriptors())
}

func (s *sessionController) descriptor(w http.ResponseWriter, r *http.Request, sess *session.Session) (action.Descriptor, bool) {
	id, err := action.ParseID(mux.Vars(r)["action"])
	if err != nil {
		http.NotFound(w, r)
		return action.Descriptor{}, false
	}

	d, found := sess.Catalog().Lookup(id)
	if !found {
		http.NotFound(w, r)
		return action.Descriptor{}, false
	}

	return d, true
}

func (s *sessionController) getAction(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	if d, ok := s.descriptor(w, r, sess); ok {
		s.marshal(w, d)
	}
}

func (s *sessionController) invokeAction(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	d, ok := s.descriptor(w, r, sess)
	if !ok {
		return
	}

	opts := action.Options{}

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	if err := decoder.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if operator, found := auth.Identity(ctx); found {
		ctx = s.logger.AddOptionsToContext(ctx, logwrap.Datum("operator", operator))
	}

	err := sess.Invoke(ctx, d.ID.String(), opts)

	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, action.ErrOptionParse):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrActionNotAvailable):
		http.NotFound(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
