package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/drivenpass/drivenpass/internal/common"
	"github.com/drivenpass/drivenpass/internal/logging"
	"github.com/drivenpass/drivenpass/internal/server/auth"
	"github.com/drivenpass/drivenpass/internal/server/models"
	"github.com/drivenpass/drivenpass/internal/server/services"
)

// --- fakes ---

type fakeAuthService struct {
	signUpOut *services.UserInfo
	signUpErr error

	signInOut *services.SignInResult
	signInErr error
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password string) (*services.UserInfo, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.signUpOut, nil
}

func (f *fakeAuthService) SignIn(ctx context.Context, email, password string) (*services.SignInResult, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.signInOut, nil
}

type fakeCredentialService struct {
	createOut *models.Credential
	createErr error

	listOut []*models.Credential
	listErr error

	getOut *models.Credential
	getErr error

	deleteErr error

	lastUserID int64
	lastID     int64
}

func (f *fakeCredentialService) Create(ctx context.Context, userID int64, c *models.Credential) (*models.Credential, error) {
	f.lastUserID = userID
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeCredentialService) ListForOwner(ctx context.Context, userID int64) ([]*models.Credential, error) {
	f.lastUserID = userID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeCredentialService) GetByID(ctx context.Context, userID int64, id int64) (*models.Credential, error) {
	f.lastUserID, f.lastID = userID, id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeCredentialService) Delete(ctx context.Context, userID int64, id int64) error {
	f.lastUserID, f.lastID = userID, id
	return f.deleteErr
}

type fakeNetworkService struct {
	createOut *models.Network
	createErr error

	listOut []*models.Network
	listErr error

	getOut *models.Network
	getErr error

	deleteErr error
}

func (f *fakeNetworkService) Create(ctx context.Context, userID int64, n *models.Network) (*models.Network, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeNetworkService) ListForOwner(ctx context.Context, userID int64) ([]*models.Network, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeNetworkService) GetByID(ctx context.Context, userID int64, id int64) (*models.Network, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeNetworkService) Delete(ctx context.Context, userID int64, id int64) error {
	return f.deleteErr
}

type fakeSessionStore struct {
	out *models.Session
	err error
}

func (f *fakeSessionStore) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

// --- helpers ---

const testSecret = "test-secret"

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type serverFakes struct {
	auth        *fakeAuthService
	credentials *fakeCredentialService
	networks    *fakeNetworkService
	sessions    *fakeSessionStore
}

func newTestServer(t *testing.T, f serverFakes) http.Handler {
	t.Helper()
	if f.auth == nil {
		f.auth = &fakeAuthService{}
	}
	if f.credentials == nil {
		f.credentials = &fakeCredentialService{}
	}
	if f.networks == nil {
		f.networks = &fakeNetworkService{}
	}
	if f.sessions == nil {
		f.sessions = &fakeSessionStore{err: common.ErrNotFound}
	}
	s := NewServer(":0", testLogger(), f.auth, f.credentials, f.networks, f.sessions, testSecret)
	return s.routes()
}

// bearerFor mints a valid token for userID and wires the session store to
// accept it.
func bearerFor(t *testing.T, userID int64, sessions *fakeSessionStore) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte(testSecret))
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	sessions.out = &models.Session{ID: 1, Token: token, UserID: userID}
	sessions.err = nil
	return "Bearer " + token
}

func doJSON(t *testing.T, h http.Handler, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode error: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// --- health ---

func TestHealth(t *testing.T) {
	h := newTestServer(t, serverFakes{})

	rec := doJSON(t, h, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "OK!" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

// --- sign-up / sign-in ---

func TestSignUpHandler_Success(t *testing.T) {
	h := newTestServer(t, serverFakes{
		auth: &fakeAuthService{signUpOut: &services.UserInfo{ID: 1, Email: "a@x.com"}},
	})

	rec := doJSON(t, h, http.MethodPost, "/sign-up", "", map[string]string{
		"email": "a@x.com", "password": "abcdefghij",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, body %s", rec.Code, rec.Body.String())
	}

	var out services.UserInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != 1 || out.Email != "a@x.com" {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestSignUpHandler_Validation(t *testing.T) {
	h := newTestServer(t, serverFakes{
		auth: &fakeAuthService{signUpOut: &services.UserInfo{ID: 1}},
	})

	tests := []struct {
		name string
		body map[string]string
	}{
		{"invalid email", map[string]string{"email": "not-an-email", "password": "abcdefghij"}},
		{"short password", map[string]string{"email": "a@x.com", "password": "short"}},
		{"empty body", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/sign-up", "", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("got %d, want 400", rec.Code)
			}
		})
	}
}

func TestSignUpHandler_EmailTaken(t *testing.T) {
	h := newTestServer(t, serverFakes{
		auth: &fakeAuthService{signUpErr: common.ErrConflict},
	})

	rec := doJSON(t, h, http.MethodPost, "/sign-up", "", map[string]string{
		"email": "a@x.com", "password": "abcdefghij",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rec.Code)
	}
}

func TestSignInHandler_Success(t *testing.T) {
	h := newTestServer(t, serverFakes{
		auth: &fakeAuthService{signInOut: &services.SignInResult{
			User: services.UserInfo{ID: 1, Email: "a@x.com"}, Token: "tok",
		}},
	})

	rec := doJSON(t, h, http.MethodPost, "/sign-in", "", map[string]string{
		"email": "a@x.com", "password": "abcdefghij",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}

	var out services.SignInResult
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Token != "tok" || out.User.ID != 1 || out.User.Email != "a@x.com" {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestSignInHandler_BadCredentials(t *testing.T) {
	h := newTestServer(t, serverFakes{
		auth: &fakeAuthService{signInErr: common.ErrUnauthorized},
	})

	rec := doJSON(t, h, http.MethodPost, "/sign-in", "", map[string]string{
		"email": "a@x.com", "password": "abcdefghij",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rec.Code)
	}
}

func TestSignInHandler_MissingFields(t *testing.T) {
	h := newTestServer(t, serverFakes{})

	rec := doJSON(t, h, http.MethodPost, "/sign-in", "", map[string]string{"email": "a@x.com"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
}

// --- middleware ---

func TestRequireAuth(t *testing.T) {
	sessions := &fakeSessionStore{err: common.ErrNotFound}
	h := newTestServer(t, serverFakes{
		credentials: &fakeCredentialService{listOut: []*models.Credential{}},
		sessions:    sessions,
	})

	t.Run("missing header", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/credentials", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("got %d, want 401", rec.Code)
		}
	})

	t.Run("not a bearer header", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/credentials", "Basic abc", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("got %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/credentials", "Bearer not.a.jwt", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("got %d, want 401", rec.Code)
		}
	})

	t.Run("signed token without session", func(t *testing.T) {
		token, err := auth.GenerateToken(42, []byte(testSecret))
		if err != nil {
			t.Fatalf("token error: %v", err)
		}
		sessions.out, sessions.err = nil, common.ErrNotFound
		rec := doJSON(t, h, http.MethodGet, "/credentials", "Bearer "+token, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("got %d, want 401", rec.Code)
		}
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token, err := auth.GenerateToken(42, []byte("other-secret"))
		if err != nil {
			t.Fatalf("token error: %v", err)
		}
		rec := doJSON(t, h, http.MethodGet, "/credentials", "Bearer "+token, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("got %d, want 401", rec.Code)
		}
	})

	t.Run("valid token with session", func(t *testing.T) {
		bearer := bearerFor(t, 42, sessions)
		rec := doJSON(t, h, http.MethodGet, "/credentials", bearer, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d, body %s", rec.Code, rec.Body.String())
		}
	})
}

// --- credentials ---

func TestCredentialListHandler(t *testing.T) {
	sessions := &fakeSessionStore{}
	creds := &fakeCredentialService{listOut: []*models.Credential{
		{ID: 1, Title: "a", URL: "https://a", Username: "u", Password: "p", UserID: 42},
	}}
	h := newTestServer(t, serverFakes{credentials: creds, sessions: sessions})
	bearer := bearerFor(t, 42, sessions)

	rec := doJSON(t, h, http.MethodGet, "/credentials", bearer, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	if creds.lastUserID != 42 {
		t.Fatalf("owner id not forwarded: %d", creds.lastUserID)
	}

	var out []*models.Credential
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Title != "a" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCredentialGetHandler_NonNumericID(t *testing.T) {
	sessions := &fakeSessionStore{}
	h := newTestServer(t, serverFakes{sessions: sessions})
	bearer := bearerFor(t, 42, sessions)

	rec := doJSON(t, h, http.MethodGet, "/credentials/abc", bearer, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
}

func TestCredentialGetHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", common.ErrNotFound, http.StatusNotFound},
		{"wrong owner", common.ErrUnauthorized, http.StatusUnauthorized},
		{"cipher failure", common.ErrCipher, http.StatusInternalServerError},
		{"internal", common.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &fakeSessionStore{}
			h := newTestServer(t, serverFakes{
				credentials: &fakeCredentialService{getErr: tt.err},
				sessions:    sessions,
			})
			bearer := bearerFor(t, 42, sessions)

			rec := doJSON(t, h, http.MethodGet, "/credentials/9", bearer, nil)
			if rec.Code != tt.want {
				t.Fatalf("got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestCredentialGetHandler_HidesInternalDetail(t *testing.T) {
	sessions := &fakeSessionStore{}
	h := newTestServer(t, serverFakes{
		credentials: &fakeCredentialService{getErr: common.ErrInternal},
		sessions:    sessions,
	})
	bearer := bearerFor(t, 42, sessions)

	rec := doJSON(t, h, http.MethodGet, "/credentials/9", bearer, nil)

	var out errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Error != "internal server error" {
		t.Fatalf("internal detail leaked: %q", out.Error)
	}
}

func TestCredentialCreateHandler(t *testing.T) {
	sessions := &fakeSessionStore{}
	creds := &fakeCredentialService{createOut: &models.Credential{ID: 7}}
	h := newTestServer(t, serverFakes{credentials: creds, sessions: sessions})
	bearer := bearerFor(t, 42, sessions)

	rec := doJSON(t, h, http.MethodPost, "/credentials", bearer, map[string]string{
		"title": "mail", "url": "https://mail.example", "username": "alice", "password": "p",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, body %s", rec.Code, rec.Body.String())
	}

	var out createdResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != 7 {
		t.Fatalf("unexpected id: %d", out.ID)
	}
}

func TestCredentialCreateHandler_MissingField(t *testing.T) {
	sessions := &fakeSessionStore{}
	h := newTestServer(t, serverFakes{sessions: sessions})
	bearer := bearerFor(t, 42, sessions)

	rec := doJSON(t, h, http.MethodPost, "/credentials", bearer, map[string]string{
		"title": "mail", "username": "alice", "password": "p",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
}

func TestCredentialCreateHandler_DuplicateTitle(t *testing.T) {
	sessions := &fakeSessionStore{}
	h := newTestServer(t, serverFakes{
		credentials: &fakeCredentialService{createErr: common.ErrConflict},
		sessions:    sessions,
	})
	bearer := bearerFor(t, 42, sessions)

	rec := doJSON(t, h, http.MethodPost, "/credentials", bearer, map[string]string{
		"title": "mail", "url": "https://mail.example", "username": "alice", "password": "p",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rec.Code)
	}
}

func TestCredentialDeleteHandler(t *testing.T) {
	sessions := &fakeSessionStore{}
	creds := &fakeCredentialService{}
	h := newTestServer(t, serverFakes{credentials: creds, sessions: sessions})
	bearer := bearerFor(t, 42, sessions)

	rec := doJSON(t, h, http.MethodDelete, "/credentials/9", bearer, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	if creds.lastUserID != 42 || creds.lastID != 9 {
		t.Fatalf("args not forwarded: user=%d id=%d", creds.lastUserID, creds.lastID)
	}
	if rec.Body.String() != "{}\n" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

// --- networks ---

func TestNetworkCreateHandler(t *testing.T) {
	sessions := &fakeSessionStore{}
	h := newTestServer(t, serverFakes{
		networks: &fakeNetworkService{createOut: &models.Network{ID: 3}},
		sessions: sessions,
	})
	bearer := bearerFor(t, 42, sessions)

	rec := doJSON(t, h, http.MethodPost, "/networks", bearer, map[string]string{
		"title": "home", "network": "HomeWifi", "password": "p",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, body %s", rec.Code, rec.Body.String())
	}

	var out createdResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != 3 {
		t.Fatalf("unexpected id: %d", out.ID)
	}
}

func TestNetworkGetHandler_WrongOwner(t *testing.T) {
	sessions := &fakeSessionStore{}
	h := newTestServer(t, serverFakes{
		networks: &fakeNetworkService{getErr: common.ErrUnauthorized},
		sessions: sessions,
	})
	bearer := bearerFor(t, 42, sessions)

	rec := doJSON(t, h, http.MethodGet, "/networks/1", bearer, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rec.Code)
	}
}

func TestNetworkDeleteHandler_NotFound(t *testing.T) {
	sessions := &fakeSessionStore{}
	h := newTestServer(t, serverFakes{
		networks: &fakeNetworkService{deleteErr: common.ErrNotFound},
		sessions: sessions,
	})
	bearer := bearerFor(t, 42, sessions)

	rec := doJSON(t, h, http.MethodDelete, "/networks/1", bearer, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rec.Code)
	}
}
