package pprof

import (
	"github.com/gorilla/mux"
	"github.com/switchyard/controller/interface/http/auth"
	"net/http"
	"net/http/pprof"
	"strings"
)

// ConstructRouter serves the runtime profiles behind the configured authentication, for
// diagnosing a controller under a live show.
func ConstructRouter(ap auth.AuthenticationProvider) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/cmdline", pprof.Cmdline)
	r.HandleFunc("/profile", pprof.Profile)
	r.HandleFunc("/symbol", pprof.Symbol)
	r.HandleFunc("/trace", pprof.Trace)
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if name := strings.TrimPrefix(req.URL.Path, "/"); len(name) > 0 {
			pprof.Handler(name).ServeHTTP(w, req)
			return
		}

		pprof.Index(w, req)
	})

	return ap.AuthenticationMiddleware(r)
}
