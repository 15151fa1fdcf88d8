package v1

import (
	"encoding/json"
	"github.com/switchyard/controller/interface/http/auth"
	"net/http"
)

// AuthenticationCheckPayload tells an operator console whether its credential was accepted
// and who it was accepted as.
type AuthenticationCheckPayload struct {
	Authenticated bool   `json:"authenticated"`
	Identity      string `json:"identity,omitempty"`
}

func authenticationCheck(w http.ResponseWriter, r *http.Request) {
	identity, authenticated := auth.Identity(r.Context())

	data, err := json.Marshal(AuthenticationCheckPayload{Authenticated: authenticated, Identity: identity})
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, data)
}

func authenticationType(ap auth.AuthenticationProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := json.Marshal(ap.AuthenticationType())
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		writeJSON(w, data)
	}
}
