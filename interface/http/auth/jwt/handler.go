package jwt

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/switchyard/controller/interface/http/auth"
	"net/http"
	"strings"
	"time"
)

var clock = time.Now

var _ auth.AuthenticationProvider = (*Authenticator)(nil)

type tokenError string

func (e tokenError) Error() string {
	return string(e)
}

const (
	ErrMissingCredential     = tokenError("no bearer credential provided")
	ErrMalformedCredential   = tokenError("incomplete or incompatible authentication provided")
	ErrUnacceptableAlgorithm = tokenError("unacceptable algorithm in token")
	ErrUnknownKey            = tokenError("no public key found for token")
	ErrWrongSystem           = tokenError("token is not for this system")
)

// Authenticator accepts ES256 bearer tokens issued by this controller, identifying the
// operator by the token subject.
type Authenticator struct {
	SystemIdentifier string
	TTL              time.Duration

	KeyIdentifier string
	PrivateKey    *ecdsa.PrivateKey
}

type Type struct {
	auth.AuthenticatorType
	KeyIdentifier string `json:"keyIdentifier"`
}

func (a Authenticator) AuthenticationRouter() http.Handler {
	return mux.NewRouter()
}

func (a Authenticator) AuthenticationType() any {
	return Type{
		AuthenticatorType: auth.AuthenticatorType{Type: "jwt"},
		KeyIdentifier:     a.KeyIdentifier,
	}
}

func (a Authenticator) AuthenticationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearer(r)
		if err != nil {
			a.challenge(w, err)
			return
		}

		operator, err := a.Verify(token)
		if err != nil {
			a.challenge(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), operator)))
	})
}

func bearer(r *http.Request) (string, error) {
	header := r.Header.Values("Authorization")

	switch len(header) {
	case 0:
		return "", ErrMissingCredential
	case 1:
	default:
		return "", ErrMalformedCredential
	}

	scheme, token, found := strings.Cut(header[0], " ")
	if !found || scheme != "Bearer" || len(token) == 0 {
		return "", ErrMalformedCredential
	}

	return token, nil
}

func (a Authenticator) challenge(w http.ResponseWriter, err error) {
	realm := fmt.Sprintf("Bearer realm=\"%s\"", a.SystemIdentifier)
	code := http.StatusUnauthorized

	switch {
	case errors.Is(err, ErrMissingCredential):
	case errors.Is(err, ErrMalformedCredential):
		code = http.StatusBadRequest
		realm += ", error=\"invalid_request\""
	default:
		realm += ", error=\"invalid_token\""
	}

	w.Header().Add("WWW-Authenticate", realm)
	http.Error(w, http.StatusText(code), code)
}

// Sign issues a token naming the operator, valid for the authenticator's TTL.
func (a Authenticator) Sign(operator string) (string, error) {
	issued := clock()

	claims := jwt.StandardClaims{
		Id:        uuid.New().String(),
		Issuer:    a.SystemIdentifier,
		Subject:   operator,
		IssuedAt:  issued.Unix(),
		ExpiresAt: issued.Add(a.TTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = a.KeyIdentifier

	return token.SignedString(a.PrivateKey)
}

func (a Authenticator) Verify(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.StandardClaims{}, a.keyLookup)
	if err != nil {
		return "", fmt.Errorf("failed to parse and verify signature in token: %w", err)
	}

	claims := token.Claims.(*jwt.StandardClaims)
	if !claims.VerifyIssuer(a.SystemIdentifier, true) {
		return "", ErrWrongSystem
	}

	return claims.Subject, nil
}

func (a Authenticator) keyLookup(token *jwt.Token) (any, error) {
	if token.Method != jwt.SigningMethodES256 {
		return nil, ErrUnacceptableAlgorithm
	}

	if kid, found := token.Header["kid"]; found && kid == a.KeyIdentifier {
		return a.PrivateKey.Public(), nil
	}

	return nil, ErrUnknownKey
}
