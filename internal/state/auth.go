package state

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/taskforge/client-go/internal/client"
	"github.com/taskforge/client-go/internal/models"
	"github.com/taskforge/client-go/internal/service"
)

type AuthStatus string

const (
	AuthUnknown       AuthStatus = "unknown"
	AuthProbing       AuthStatus = "probing"
	AuthAuthenticated AuthStatus = "authenticated"
	AuthAnonymous     AuthStatus = "anonymous"
)

const (
	msgBadCredentials = "Email ou mot de passe incorrect."
	msgGenericAuth    = "Une erreur est survenue. Veuillez réessayer."
)

// Auth owns the current-session user. It moves through
// unknown → probing → authenticated|anonymous; the probe runs once at
// startup and any probe failure just means anonymous.
type Auth struct {
	mu      sync.RWMutex
	svc     AuthService
	log     *logrus.Logger
	status  AuthStatus
	user    *models.User
	loading bool
	errMsg  string
}

func NewAuth(svc AuthService, log *logrus.Logger) *Auth {
	return &Auth{svc: svc, log: log, status: AuthUnknown}
}

// Probe asks the server who the session belongs to. Failure of any
// kind (no session included) is benign and never blocks app usage.
func (a *Auth) Probe(ctx context.Context) AuthStatus {
	a.mu.Lock()
	a.status = AuthProbing
	a.mu.Unlock()

	u, err := a.svc.CurrentUser(ctx)
	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil || u == nil {
		if err != nil {
			a.log.WithError(err).Debug("session probe failed, treating as anonymous")
		}
		a.status = AuthAnonymous
		a.user = nil
		return a.status
	}
	a.status = AuthAuthenticated
	a.user = u
	return a.status
}

// Login authenticates and enters the authenticated state on success.
// When the login response omits the user payload, the current-user
// endpoint fills the gap. On failure the translated message is stored
// and the error is returned too, so the calling surface can react
// inline while a passive listener shows the same message.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	a.setLoading(true)
	defer a.setLoading(false)

	u, err := a.svc.Login(ctx, email, password)
	if err != nil {
		a.setError(loginErrorMessage(err))
		return err
	}
	if u == nil {
		u, err = a.svc.CurrentUser(ctx)
		if err != nil {
			a.setError(msgGenericAuth)
			return err
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	a.mu.Lock()
	a.status = AuthAuthenticated
	a.user = u
	a.errMsg = ""
	a.mu.Unlock()
	return nil
}

// Register mirrors Login; all field-level validation errors the
// server returns are aggregated into one message.
func (a *Auth) Register(ctx context.Context, in service.RegisterInput) error {
	a.setLoading(true)
	defer a.setLoading(false)

	u, err := a.svc.Register(ctx, in)
	if err != nil {
		a.setError(registerErrorMessage(err))
		return err
	}
	if u == nil {
		u, err = a.svc.CurrentUser(ctx)
		if err != nil {
			a.setError(msgGenericAuth)
			return err
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	a.mu.Lock()
	a.status = AuthAuthenticated
	a.user = u
	a.errMsg = ""
	a.mu.Unlock()
	return nil
}

// Logout clears local session state no matter what the network says.
func (a *Auth) Logout(ctx context.Context) {
	if err := a.svc.Logout(ctx); err != nil {
		a.log.WithError(err).Debug("logout call failed, clearing local session anyway")
	}
	a.mu.Lock()
	a.status = AuthAnonymous
	a.user = nil
	a.errMsg = ""
	a.mu.Unlock()
}

func (a *Auth) Status() AuthStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

func (a *Auth) User() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *Auth) Err() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.errMsg
}

func (a *Auth) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

func (a *Auth) setLoading(v bool) {
	a.mu.Lock()
	a.loading = v
	a.mu.Unlock()
}

func (a *Auth) setError(msg string) {
	a.mu.Lock()
	a.errMsg = msg
	a.mu.Unlock()
}

func isCredentialMismatch(msg string) bool {
	switch msg {
	case "These credentials do not match our records.",
		"Ces identifiants ne correspondent pas à nos enregistrements.":
		return true
	}
	return false
}

func loginErrorMessage(err error) string {
	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return msgGenericAuth
	}
	if apiErr.Unauthorized() || isCredentialMismatch(apiErr.Message) {
		return msgBadCredentials
	}
	if first := firstValidationError(apiErr); first != "" {
		if isCredentialMismatch(first) {
			return msgBadCredentials
		}
		return first
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return msgGenericAuth
}

func registerErrorMessage(err error) string {
	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return msgGenericAuth
	}
	if all := allValidationErrors(apiErr); all != "" {
		return all
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return msgGenericAuth
}

func firstValidationError(apiErr *client.APIError) string {
	for _, field := range sortedFields(apiErr) {
		for _, msg := range apiErr.Errors[field] {
			if msg != "" {
				return msg
			}
		}
	}
	return ""
}

func allValidationErrors(apiErr *client.APIError) string {
	var msgs []string
	for _, field := range sortedFields(apiErr) {
		msgs = append(msgs, apiErr.Errors[field]...)
	}
	return strings.Join(msgs, " ")
}

// sortedFields keeps aggregated messages deterministic.
func sortedFields(apiErr *client.APIError) []string {
	fields := make([]string, 0, len(apiErr.Errors))
	for f := range apiErr.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
