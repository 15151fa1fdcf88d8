package external

import (
	"github.com/gorilla/mux"
	"github.com/switchyard/controller/interface/http/auth"
	"net/http"
)

var _ auth.AuthenticationProvider = (*Authenticator)(nil)

// Authenticator trusts an operator name placed in a header by a fronting proxy.
type Authenticator struct {
	UserHeader string
}

const DefaultUserHeader = "X-Remote-User"

func (a Authenticator) header() string {
	if len(a.UserHeader) == 0 {
		return DefaultUserHeader
	}

	return a.UserHeader
}

func (a Authenticator) AuthenticationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operator := r.Header.Get(a.header())
		if len(operator) == 0 {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), operator)))
	})
}

func (a Authenticator) AuthenticationRouter() http.Handler {
	return mux.NewRouter()
}

func (a Authenticator) AuthenticationType() any {
	return auth.AuthenticatorType{
		Type: "external",
	}
}
