package httpapi

import "net/http"

// routes builds the ServeMux. Everything below /credentials and /networks
// requires a valid bearer token; the account endpoints do not.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /sign-up", s.handleSignUp)
	mux.HandleFunc("POST /sign-in", s.handleSignIn)

	mux.HandleFunc("GET /credentials", s.requireAuth(s.handleCredentialList))
	mux.HandleFunc("POST /credentials", s.requireAuth(s.handleCredentialCreate))
	mux.HandleFunc("GET /credentials/{id}", s.requireAuth(s.handleCredentialGet))
	mux.HandleFunc("DELETE /credentials/{id}", s.requireAuth(s.handleCredentialDelete))

	mux.HandleFunc("GET /networks", s.requireAuth(s.handleNetworkList))
	mux.HandleFunc("POST /networks", s.requireAuth(s.handleNetworkCreate))
	mux.HandleFunc("GET /networks/{id}", s.requireAuth(s.handleNetworkGet))
	mux.HandleFunc("DELETE /networks/{id}", s.requireAuth(s.handleNetworkDelete))

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK!"))
}
