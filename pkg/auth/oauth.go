package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/tasks/v1"
)

// Scopes are the three read-only grants the report needs. They are
// requested together at consent time so one credential covers all
// sources.
var Scopes = []string{
	gmail.GmailReadonlyScope,
	tasks.TasksReadonlyScope,
	calendar.CalendarReadonlyScope,
}

const exchangeTimeout = 30 * time.Second

// LoadClientSecrets parses the downloaded credentials.json into an OAuth
// config carrying the report scopes. A missing file is a configuration
// error that should stop the run before any network call.
func LoadClientSecrets(path string) (*oauth2.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingClientSecrets, path)
		}
		return nil, fmt.Errorf("unable to read client secrets file %s: %w", path, err)
	}

	config, err := google.ConfigFromJSON(b, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secrets file %s: %w", path, err)
	}
	return config, nil
}

// Manager produces a currently valid credential using the cheapest
// available path: the stored token if still good, a silent refresh if it
// carries a refresh token, and the interactive consent flow as a last
// resort. Newly obtained or refreshed credentials are persisted before
// being returned, so the next run does not re-prompt.
type Manager struct {
	config  *oauth2.Config
	store   *TokenStore
	port    int
	timeout time.Duration

	// Seams for tests.
	consent func(ctx context.Context) (*oauth2.Token, error)
	now     func() time.Time
}

// NewManager wires a lifecycle manager. port is the local consent
// redirect port (0 picks a free one); timeout bounds the whole
// interactive flow.
func NewManager(config *oauth2.Config, store *TokenStore, port int, timeout time.Duration) *Manager {
	m := &Manager{
		config:  config,
		store:   store,
		port:    port,
		timeout: timeout,
		now:     time.Now,
	}
	m.consent = m.interactiveConsent
	return m
}

// Token returns a valid credential. At most one interactive consent
// prompt happens per call; refresh failures silently escalate to the
// consent flow, since a revoked token looks the same as a transient
// failure at this point.
func (m *Manager) Token(ctx context.Context) (*Credential, error) {
	cred, err := m.store.Load()
	if err != nil && !errors.Is(err, ErrNoToken) {
		// Unreadable token file: fall back to a fresh flow rather than
		// stranding the user, the save below rewrites it.
		log.Printf("ignoring unreadable token file: %v", err)
		cred = nil
	}

	if cred != nil && m.stillValid(cred) && cred.HasScopes(Scopes) {
		log.Printf("using stored token (expires %s)", cred.Expiry.Format(time.RFC3339))
		return cred, nil
	}

	// A refresh can never widen a grant, so a credential missing any
	// required scope goes straight to consent even if it could refresh.
	if cred != nil && cred.RefreshToken != "" && cred.HasScopes(Scopes) {
		refreshed, err := m.refresh(ctx, cred)
		if err == nil {
			if err := m.store.Save(refreshed); err != nil {
				return nil, err
			}
			log.Printf("refreshed token (expires %s)", refreshed.Expiry.Format(time.RFC3339))
			return refreshed, nil
		}
		log.Printf("token refresh failed, starting consent flow: %v", err)
	}

	tok, err := m.consent(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthorization, err)
	}
	fresh := &Credential{Token: *tok, Scopes: Scopes}
	if err := m.store.Save(fresh); err != nil {
		return nil, err
	}
	log.Printf("saved new token to %s", m.store.Path())
	return fresh, nil
}

// TokenSource exposes a self-refreshing token source for the Google API
// clients. Refreshes that happen mid-run are not persisted; the stored
// refresh token stays valid either way.
func (m *Manager) TokenSource(ctx context.Context, cred *Credential) oauth2.TokenSource {
	tok := cred.Token
	return m.config.TokenSource(ctx, &tok)
}

// stillValid checks expiry by wall clock. Tokens without an expiry are
// treated as valid, matching oauth2.Token semantics.
func (m *Manager) stillValid(cred *Credential) bool {
	if cred.AccessToken == "" {
		return false
	}
	if cred.Expiry.IsZero() {
		return true
	}
	return cred.Expiry.After(m.now())
}

// refresh exchanges the refresh token for a new access token. Exactly
// one network call; the scopes carry over from the original grant.
func (m *Manager) refresh(ctx context.Context, cred *Credential) (*Credential, error) {
	expired := cred.Token
	tok, err := m.config.TokenSource(ctx, &expired).Token()
	if err != nil {
		return nil, err
	}
	return &Credential{Token: *tok, Scopes: cred.Scopes}, nil
}

// interactiveConsent runs the full authorization code flow: a local
// callback listener, a consent URL for the user, and the code exchange.
func (m *Manager) interactiveConsent(ctx context.Context) (*oauth2.Token, error) {
	state := uuid.NewString()
	srv := newCallbackServer(m.port, state)
	if err := srv.start(); err != nil {
		return nil, err
	}
	defer srv.stop()

	// Per-flow copy: the redirect URI depends on the port the listener
	// actually got.
	config := *m.config
	config.RedirectURL = srv.redirectURI()

	// AccessTypeOffline ensures a refresh token comes back; prompt=consent
	// forces Google to reissue one even if the user authorized before.
	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Fprintf(os.Stderr, "Open the following URL in your browser to authorize daybrief:\n\n  %s\n\n", authURL)

	code, err := srv.waitForCode(ctx, m.timeout)
	if err != nil {
		return nil, err
	}

	exCtx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()
	tok, err := config.Exchange(exCtx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}
	return tok, nil
}
