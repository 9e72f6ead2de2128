package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, "test-token", testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestDo_AttachesAccessToken(t *testing.T) {
	var gotToken, gotAccept string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Access-Token")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	}))

	if _, err := c.Get(context.Background(), "/api/projets"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotToken != "test-token" {
		t.Errorf("X-Access-Token = %q, want %q", gotToken, "test-token")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestDo_ReflectsXSRFCookieOnMutations(t *testing.T) {
	var gotHeader string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sanctum/csrf-cookie":
			http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "abc%3D123", Path: "/"})
			w.WriteHeader(http.StatusNoContent)
		default:
			gotHeader = r.Header.Get("X-XSRF-TOKEN")
			w.Write([]byte(`{}`))
		}
	}))

	ctx := context.Background()
	if err := c.EnsureCSRF(ctx); err != nil {
		t.Fatalf("EnsureCSRF: %v", err)
	}
	if _, err := c.Post(ctx, "/login", map[string]string{"email": "a@b.c"}); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if gotHeader != "abc=123" {
		t.Errorf("X-XSRF-TOKEN = %q, want decoded cookie value %q", gotHeader, "abc=123")
	}
}

func TestDo_NormalizesServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Le champ email est requis.","errors":{"email":["Le champ email est requis."]}}`))
	}))

	_, err := c.Post(context.Background(), "/register", map[string]string{})
	if err == nil {
		t.Fatal("expected an error")
	}
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("error is not an *APIError: %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422", apiErr.Status)
	}
	if apiErr.Message != "Le champ email est requis." {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if len(apiErr.Errors["email"]) != 1 {
		t.Errorf("Errors = %v, want one email error", apiErr.Errors)
	}
}

func TestDo_Unauthorized(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthenticated."}`))
	}))

	_, err := c.Get(context.Background(), "/api/utilisateur")
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("error is not an *APIError: %v", err)
	}
	if !apiErr.Unauthorized() {
		t.Errorf("Unauthorized() = false for status %d", apiErr.Status)
	}
}

func TestDo_ErrorWithoutJSONBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))

	_, err := c.Get(context.Background(), "/api/projets")
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("error is not an *APIError: %v", err)
	}
	if apiErr.Error() != "API error status: 502" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestDecodeEnvelope(t *testing.T) {
	type item struct {
		Id int64 `json:"id"`
	}

	got, err := DecodeEnvelope[[]item]([]byte(`{"data":[{"id":1},{"id":2}]}`))
	if err != nil {
		t.Fatalf("enveloped: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("enveloped: got %d items, want 2", len(got))
	}

	got, err = DecodeEnvelope[[]item]([]byte(`[{"id":3}]`))
	if err != nil {
		t.Fatalf("bare: %v", err)
	}
	if len(got) != 1 || got[0].Id != 3 {
		t.Errorf("bare: got %v", got)
	}

	single, err := DecodeEnvelope[item]([]byte(`{"id":7}`))
	if err != nil {
		t.Fatalf("bare object without data key: %v", err)
	}
	if single.Id != 7 {
		t.Errorf("bare object: got %+v", single)
	}

	if _, err := DecodeEnvelope[[]item]([]byte(`{"data":"definitely-not-a-list"}`)); err == nil {
		t.Error("mismatched envelope payload should fail loudly")
	}
	if _, err := DecodeEnvelope[[]item]([]byte(`"nonsense"`)); err == nil {
		t.Error("payload matching neither shape should fail")
	}
}
