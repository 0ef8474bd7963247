package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Flow performs an interactive authentication handshake and returns a
// fresh credential, or fails with ErrConfigMissing or ErrUserCancelled.
type Flow interface {
	Authenticate(ctx context.Context) (*Credential, error)
}

// Refresher exchanges a credential's refresh token for a fresh
// credential.
type Refresher interface {
	Refresh(ctx context.Context, cred *Credential) (*Credential, error)
}

const (
	// callbackTimeout bounds the wait for the browser redirect.
	callbackTimeout = 5 * time.Minute

	// exchangeTimeout bounds the code-for-token exchange.
	exchangeTimeout = 30 * time.Second

	// refreshTimeout bounds a refresh-token exchange.
	refreshTimeout = 30 * time.Second

	// Callback server port range.
	callbackStartPort   = 8085
	callbackPortRetries = 5
)

// clientConfigFromFile reads the OAuth client configuration resource.
// A missing file is ErrConfigMissing.
func clientConfigFromFile(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth client configuration: %w", err)
	}
	cfg, err := google.ConfigFromJSON(data, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth client configuration: %w", err)
	}
	return cfg, nil
}

// BrowserFlow drives the OAuth authorization-code flow with PKCE
// through the user's browser and a localhost callback server.
type BrowserFlow struct {
	// ClientPath is the oauth_client.json location.
	ClientPath string

	// Prompt receives the authorization URL for the user to open.
	// Defaults to os.Stderr.
	Prompt io.Writer
}

// Authenticate implements Flow.
func (f *BrowserFlow) Authenticate(ctx context.Context) (*Credential, error) {
	cfg, err := clientConfigFromFile(f.ClientPath)
	if err != nil {
		return nil, err
	}

	port, listener, err := findAvailablePort()
	if err != nil {
		return nil, fmt.Errorf("could not bind a local port for the oauth callback: %w", err)
	}
	defer listener.Close()

	cfg.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)
	verifier := oauth2.GenerateVerifier()
	authURL := cfg.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	prompt := f.Prompt
	if prompt == nil {
		prompt = os.Stderr
	}
	fmt.Fprintln(prompt, "Open this URL in your browser:")
	fmt.Fprintln(prompt, authURL)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			errCh <- errors.New("no code in callback")
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		codeCh <- code
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-time.After(callbackTimeout):
		return nil, fmt.Errorf("%w: callback timed out", ErrUserCancelled)
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrUserCancelled, ctx.Err())
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()

	token, err := cfg.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	return &Credential{Token: *token, Scopes: []string{Scope}}, nil
}

// findAvailablePort tries ports starting from callbackStartPort.
func findAvailablePort() (int, net.Listener, error) {
	for i := 0; i < callbackPortRetries; i++ {
		port := callbackStartPort + i
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, errors.New("no available port found")
}

// ConfigRefresher refreshes tokens through the OAuth client
// configuration's token endpoint.
type ConfigRefresher struct {
	// ClientPath is the oauth_client.json location.
	ClientPath string
}

// Refresh implements Refresher. The granted scopes carry over; a
// response without a rotated refresh token keeps the old one.
func (r *ConfigRefresher) Refresh(ctx context.Context, cred *Credential) (*Credential, error) {
	if !cred.CanRefresh() {
		return nil, errors.New("no refresh token available")
	}
	cfg, err := clientConfigFromFile(r.ClientPath)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	stale := cred.Token
	token, err := cfg.TokenSource(ctx, &stale).Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	fresh := *token
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = stale.RefreshToken
	}
	return &Credential{Token: fresh, Scopes: cred.Scopes}, nil
}
