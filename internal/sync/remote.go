package sync

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/lomazzo/birthkeep/internal/config"
)

// RemoteStore defines the contract for the relay holding snapshots.
// This interface allows for mocking in tests and decoupling from the
// network layer.
type RemoteStore interface {
	Put(ctx context.Context, code string, payload []byte) error
	Get(ctx context.Context, code string) ([]byte, error)
}

// HTTPRemoteStore implements RemoteStore against a user-configured relay
// service using the standard net/http library.
type HTTPRemoteStore struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPRemoteStore creates a relay client with configured timeouts.
func NewHTTPRemoteStore(baseURL string) *HTTPRemoteStore {
	return &HTTPRemoteStore{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: config.HTTPTimeout},
	}
}

// Put uploads a snapshot payload under the given code.
func (r *HTTPRemoteStore) Put(ctx context.Context, code string, payload []byte) error {
	target, log, err := r.endpoint(code)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	r.setHeaders(req)
	req.Header.Set(config.HeaderContentType, config.MimeJSON)

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("network error during push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		log.Warn("Relay returned error status", slog.Int(config.LogKeyStatus, resp.StatusCode))
		return fmt.Errorf("relay returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	log.Info(config.MsgSnapshotPushed, slog.Int(config.LogKeySizeBytes, len(payload)))
	return nil
}

// Get downloads the snapshot payload stored under the given code. A missing
// or already consumed code surfaces as ErrSyncCode.
func (r *HTTPRemoteStore) Get(ctx context.Context, code string) ([]byte, error) {
	target, log, err := r.endpoint(code)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	r.setHeaders(req)

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during pull: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil, fmt.Errorf("%s: %d", config.ErrSyncCode, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		log.Warn("Relay returned error status", slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("relay returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	// Limit the read size to protect against oversized payloads.
	payload, err := io.ReadAll(io.LimitReader(resp.Body, config.MaxSyncPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("reading relay response: %w", err)
	}

	log.Info(config.MsgSnapshotPulled, slog.Int(config.LogKeySizeBytes, len(payload)))
	return payload, nil
}

// endpoint validates the configured base URL and builds the per-code target
// plus a logger carrying a sanitized URL (no query, no token).
func (r *HTTPRemoteStore) endpoint(code string) (string, *slog.Logger, error) {
	if r.BaseURL == "" {
		return "", nil, fmt.Errorf("%s", config.ErrSyncURLEmpty)
	}

	u, err := url.Parse(r.BaseURL)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return "", nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	safeURL := u.Scheme + "://" + u.Host + u.Path
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompSync),
		slog.String(config.LogKeyURL, safeURL),
	)

	return strings.TrimSuffix(r.BaseURL, "/") + "/" + url.PathEscape(code), log, nil
}

// setHeaders applies the User-Agent and, when present in the system keyring,
// the relay auth token.
func (r *HTTPRemoteStore) setHeaders(req *http.Request) {
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)

	token, err := keyring.Get(config.KeyringService, config.KeyringSyncToken)
	if err != nil {
		slog.Debug(config.MsgTokenFail, config.LogKeyError, err)
		return
	}
	if token != "" {
		req.Header.Set(config.HeaderAuthorization, config.BearerPrefix+token)
	}
}

// SaveToken stores the relay auth token in the system keyring.
func SaveToken(token string) error {
	return keyring.Set(config.KeyringService, config.KeyringSyncToken, token)
}
