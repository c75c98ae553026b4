package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"
)

// LocalServerFlow implements ConsentFlow by serving the OAuth2 redirect on a
// loopback listener with an ephemeral port, opening the consent URL in the
// user's browser and exchanging the returned authorization code.
type LocalServerFlow struct {
	// OpenURL presents the consent URL to the user; nil means open the
	// system browser.
	OpenURL func(url string)
}

// Authorize runs one full consent round-trip. It blocks until the redirect
// arrives or ctx is done.
func (f *LocalServerFlow) Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generateState failed: %w", err)
	}

	// The listener opens only once nothing else can fail before the server
	// takes it over, so every exit path releases it through Shutdown.
	ln, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return nil, fmt.Errorf("net.Listen failed: %w", err)
	}

	// The registered redirect URL must match the listener we actually got.
	flowCfg := *cfg
	flowCfg.RedirectURL = fmt.Sprintf("http://%s/oauth", ln.Addr().String())

	codeCh := make(chan string, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "Missing authorization code", http.StatusBadRequest)
			return
		}

		_, _ = fmt.Fprintln(w, "Authorization complete. You may close this window.")

		select {
		case codeCh <- code:
		default:
		}
	})

	srv := &http.Server{Handler: mux}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Println(fmt.Errorf("consent flow srv.Serve failed: %w", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println(fmt.Errorf("consent flow srv.Shutdown failed: %w", err))
		}
	}()

	authURL := flowCfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	f.openURL(authURL)

	select {
	case code := <-codeCh:
		tok, err := flowCfg.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("cfg.Exchange failed: %w", err)
		}
		return tok, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *LocalServerFlow) openURL(url string) {
	if f.OpenURL != nil {
		f.OpenURL(url)
		return
	}
	openBrowser(url)
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read failed: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform")
	}

	if err != nil {
		log.Printf("Could not open browser automatically: %v; please copy and open link in the browser: %s\n", err, url)
	}
}
