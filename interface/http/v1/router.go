package v1

import (
	"github.com/gorilla/mux"
	"github.com/shimmeringbee/logwrap"
	"github.com/switchyard/controller/interface/http/auth"
	"github.com/switchyard/controller/session"
	"github.com/switchyard/controller/state"
	"net/http"
)

func ConstructRouter(sessions session.Mapper, l logwrap.Logger, ap auth.AuthenticationProvider, eventbus state.EventSubscriber) http.Handler {
	protected := mux.NewRouter()

	sc := sessionController{
		sessions: sessions,
		logger:   l,
	}

	wc := websocketController{
		eventbus:    eventbus,
		eventMapper: catalogEventMapper{sessions: sessions},
		logger:      l,
	}

	for _, r := range []struct {
		path    string
		method  string
		handler http.HandlerFunc
	}{
		{"/models", http.MethodGet, listModels},
		{"/sessions", http.MethodGet, sc.listSessions},
		{"/sessions/{name}/model", http.MethodGet, sc.getModel},
		{"/sessions/{name}/actions", http.MethodGet, sc.listActions},
		{"/sessions/{name}/actions/{action}", http.MethodGet, sc.getAction},
		{"/sessions/{name}/actions/{action}", http.MethodPost, sc.invokeAction},
		{"/websocket", http.MethodGet, wc.serveWebsocket},
	} {
		protected.HandleFunc(r.path, r.handler).Methods(r.method)
	}

	// Only the provider type and the provider's own routes are reachable unauthenticated.
	apiRoot := mux.NewRouter()
	apiRoot.Handle("/auth/type", authenticationType(ap)).Methods(http.MethodGet)
	apiRoot.Handle("/auth/check", ap.AuthenticationMiddleware(http.HandlerFunc(authenticationCheck))).Methods(http.MethodGet)
	apiRoot.PathPrefix("/auth").Handler(ap.AuthenticationRouter())
	apiRoot.PathPrefix("/").Handler(ap.AuthenticationMiddleware(protected))

	return apiRoot
}

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
