package api

import (
	"net/http"
)

type Authentication interface {
	Login(w http.ResponseWriter, r *http.Request)
	LoginCallback(w http.ResponseWriter, r *http.Request)
}

// SetupRoutes installs the authentication endpoints. The callback path
// matches the "oauth" suffix providers derive from the canonical web
// URL.
func SetupRoutes(a Authentication) {
	http.HandleFunc("/login/", a.Login)
	http.HandleFunc("/oauth", a.LoginCallback)
}
