package auth

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"time"
)

// callbackServer captures the OAuth redirect on a local port. The state
// parameter of the redirect must match the one sent with the consent URL.
type callbackServer struct {
	port          int
	expectedState string
	codeCh        chan string
	errCh         chan error
	server        *http.Server
	listener      net.Listener
}

func newCallbackServer(port int, expectedState string) *callbackServer {
	return &callbackServer{
		port:          port,
		expectedState: expectedState,
		codeCh:        make(chan string, 1),
		errCh:         make(chan error, 1),
	}
}

// start begins listening. Port 0 picks a free port; the chosen one is
// reflected in RedirectURI afterwards.
func (s *callbackServer) start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", s.handleCallback)

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to start local callback listener: %w", err)
	}
	s.listener = listener
	if addr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = addr.Port
	}

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case s.errCh <- err:
			default:
			}
		}
	}()
	return nil
}

func (s *callbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		s.fail(fmt.Errorf("consent denied: %s", errParam))
		writePage(w, "Authorization failed: "+html.EscapeString(errParam))
		return
	}
	if state := q.Get("state"); state != s.expectedState {
		s.fail(fmt.Errorf("state mismatch in OAuth redirect"))
		writePage(w, "Authorization failed: invalid state parameter")
		return
	}
	code := q.Get("code")
	if code == "" {
		s.fail(fmt.Errorf("no authorization code in redirect"))
		writePage(w, "Authorization failed: no code received")
		return
	}

	select {
	case s.codeCh <- code:
	default:
	}
	writePage(w, "Authorization successful! You can close this window.")
}

// fail reports a flow failure without blocking the handler. Only the
// first failure matters; repeat redirects (browser retries) are dropped.
func (s *callbackServer) fail(err error) {
	select {
	case s.errCh <- err:
	default:
	}
}

// waitForCode blocks until the redirect delivers a code, the flow fails,
// the timeout elapses, or ctx is cancelled.
func (s *callbackServer) waitForCode(ctx context.Context, timeout time.Duration) (string, error) {
	select {
	case code := <-s.codeCh:
		return code, nil
	case err := <-s.errCh:
		return "", err
	case <-time.After(timeout):
		return "", ErrConsentTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *callbackServer) stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(ctx)
	}
}

// redirectURI returns the URI Google should redirect to. Must match a
// localhost redirect registered on the OAuth client.
func (s *callbackServer) redirectURI() string {
	return fmt.Sprintf("http://localhost:%d/callback", s.port)
}

func writePage(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<html><body><h3>daybrief</h3><p>%s</p></body></html>", message)
}
