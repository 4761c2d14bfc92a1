package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// ErrNoDriveToken is returned when an OAuth client has no readable cached token.
var ErrNoDriveToken = errors.New("no usable drive token")

// DriveHTTPClient builds an authorized client from a credentials file.
// Service-account keys are used directly; OAuth client secrets need a
// token cached at tokenFile by DriveLogin.
func DriveHTTPClient(ctx context.Context, credentialsFile, tokenFile string) (*http.Client, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read drive credentials: %w", err)
	}
	var kind struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &kind); err != nil {
		return nil, fmt.Errorf("parse drive credentials %q: %w", credentialsFile, err)
	}
	if kind.Type == "service_account" {
		cfg, err := google.JWTConfigFromJSON(b, drive.DriveScope)
		if err != nil {
			return nil, fmt.Errorf("parse service account: %w", err)
		}
		return cfg.Client(ctx), nil
	}

	cfg, err := google.ConfigFromJSON(b, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secret: %w", err)
	}
	tok, err := tokenFromFile(tokenFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoDriveToken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cached token %q: %v", ErrNoDriveToken, tokenFile, err)
	}
	return cfg.Client(ctx, tok), nil
}

// DriveLogin runs the OAuth consent flow on the terminal: it prints the
// consent URL to out, reads the authorization code from in and caches the
// token at tokenFile.
func DriveLogin(ctx context.Context, credentialsFile, tokenFile string, in io.Reader, out io.Writer) error {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return fmt.Errorf("read drive credentials: %w", err)
	}
	cfg, err := google.ConfigFromJSON(b, drive.DriveScope)
	if err != nil {
		return fmt.Errorf("parse client secret: %w", err)
	}
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(out, "Open this link in your browser, then paste the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Fscan(in, &code); err != nil {
		return fmt.Errorf("read authorization code: %w", err)
	}
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	return saveToken(tokenFile, tok)
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("cache drive token: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("cache drive token: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("encode drive token: %w", err)
	}
	return nil
}
