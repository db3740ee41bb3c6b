package sheets

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	spreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"
	jwtBearerGrant    = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// Tokens are refreshed this long before their declared expiry so an
	// in-flight request never carries a token that expires mid-call.
	expirySkew = 60 * time.Second
)

// TokenSource mints and caches OAuth access tokens for a service account.
// It builds and signs the JWT assertion itself; the only network call is
// the exchange against the token endpoint.
//
// The cache is safe under concurrent use. Two requests racing to refresh
// an expired token may both hit the token endpoint, but neither will ever
// observe a partially written token.
type TokenSource struct {
	httpClient *http.Client
	key        *rsa.PrivateKey
	email      string
	tokenURL   string

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewTokenSource parses the service-account key and returns a token source.
// Key problems are reported here, before any network traffic.
func NewTokenSource(email, privateKeyPEM, tokenURL string, httpClient *http.Client) (*TokenSource, error) {
	if email == "" {
		return nil, newError(KindAuth, "service account email is required")
	}

	normalized, err := normalizePrivateKey(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	key, err := parseRSAPrivateKey(normalized)
	if err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &TokenSource{
		email:      email,
		key:        key,
		tokenURL:   tokenURL,
		httpClient: httpClient,
	}, nil
}

// Token returns a valid bearer token, reusing the cached one until 60
// seconds before its expiry.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && time.Now().Before(ts.expiry.Add(-expirySkew)) {
		return ts.token, nil
	}

	token, expiry, err := ts.exchange(ctx)
	if err != nil {
		return "", err
	}

	ts.token = token
	ts.expiry = expiry
	return token, nil
}

// exchange signs a fresh assertion and trades it for an access token.
// A non-2xx response is a fatal authentication failure: the generic retry
// policy must not touch it.
func (ts *TokenSource) exchange(ctx context.Context) (string, time.Time, error) {
	now := time.Now()

	assertion, err := ts.signedAssertion(now)
	if err != nil {
		return "", time.Time{}, err
	}

	form := url.Values{}
	form.Set("grant_type", jwtBearerGrant)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, &Error{Kind: KindAuth, Message: "token exchange failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, &Error{Kind: KindAuth, Message: "reading token response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", time.Time{}, &Error{
			Kind:       KindAuth,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("token exchange rejected (HTTP %d): %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", time.Time{}, &Error{Kind: KindAuth, Message: "malformed token response", Err: err}
	}
	if payload.AccessToken == "" {
		return "", time.Time{}, newError(KindAuth, "token response contained no access token")
	}

	expiresIn := payload.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}

	return payload.AccessToken, now.Add(time.Duration(expiresIn) * time.Second), nil
}

// signedAssertion builds the RS256 JWT: base64url(header).base64url(claims)
// signed with the service-account key.
func (ts *TokenSource) signedAssertion(now time.Time) (string, error) {
	header := map[string]string{"alg": "RS256", "typ": "JWT"}
	claims := map[string]any{
		"iss":   ts.email,
		"scope": spreadsheetsScope,
		"aud":   ts.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encoding JWT header: %w", err)
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encoding JWT claims: %w", err)
	}

	enc := base64.RawURLEncoding
	signingInput := enc.EncodeToString(headerJSON) + "." + enc.EncodeToString(claimsJSON)

	digest := sha256.Sum256([]byte(signingInput))
	signature, err := rsa.SignPKCS1v15(rand.Reader, ts.key, crypto.SHA256, digest[:])
	if err != nil {
		return "", &Error{Kind: KindAuth, Message: "signing JWT assertion", Err: err}
	}

	return signingInput + "." + enc.EncodeToString(signature), nil
}

// parseRSAPrivateKey accepts both PKCS#8 and PKCS#1 encoded keys; Google
// issues PKCS#8 but older exported keys are PKCS#1.
func parseRSAPrivateKey(pemData string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, newError(KindAuth, "private key PEM block could not be decoded")
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, newError(KindAuth, "private key is not an RSA key")
		}
		return rsaKey, nil
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, &Error{Kind: KindAuth, Message: "parsing private key", Err: err}
	}
	return key, nil
}
