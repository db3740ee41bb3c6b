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
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKeyPEM generates a fresh RSA key and returns it PKCS#8 PEM encoded
// alongside the public half for signature checks.
func testKeyPEM(t *testing.T) (string, *rsa.PublicKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return string(pemBytes), &key.PublicKey
}

func TestTokenExchange(t *testing.T) {
	keyPEM, pubKey := testKeyPEM(t)

	var exchanges atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exchanges.Add(1)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, jwtBearerGrant, r.Form.Get("grant_type"))

		assertion := r.Form.Get("assertion")
		parts := strings.Split(assertion, ".")
		require.Len(t, parts, 3)

		headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
		require.NoError(t, err)
		var header map[string]string
		require.NoError(t, json.Unmarshal(headerJSON, &header))
		assert.Equal(t, "RS256", header["alg"])
		assert.Equal(t, "JWT", header["typ"])

		claimsJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
		require.NoError(t, err)
		var claims map[string]any
		require.NoError(t, json.Unmarshal(claimsJSON, &claims))
		assert.Equal(t, "svc@example.iam.gserviceaccount.com", claims["iss"])
		assert.Equal(t, spreadsheetsScope, claims["scope"])

		signature, err := base64.RawURLEncoding.DecodeString(parts[2])
		require.NoError(t, err)
		digest := sha256.Sum256([]byte(parts[0] + "." + parts[1]))
		assert.NoError(t, rsa.VerifyPKCS1v15(pubKey, crypto.SHA256, digest[:], signature),
			"assertion signature must verify against the service account key")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
	}))
	defer server.Close()

	ts, err := NewTokenSource("svc@example.iam.gserviceaccount.com", keyPEM, server.URL, server.Client())
	require.NoError(t, err)

	token, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	// Second call is served from the cache.
	token, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, int32(1), exchanges.Load())
}

func TestTokenExchangeRejectionIsNotRetried(t *testing.T) {
	keyPEM, _ := testKeyPEM(t)

	var exchanges atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		exchanges.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	ts, err := NewTokenSource("svc@example.iam.gserviceaccount.com", keyPEM, server.URL, server.Client())
	require.NoError(t, err)

	_, err = ts.Token(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindAuth, ErrKind(err))
	assert.Equal(t, int32(1), exchanges.Load(), "auth failures must surface after exactly one attempt")
}

func TestTokenRefreshNearExpiry(t *testing.T) {
	keyPEM, _ := testKeyPEM(t)

	var exchanges atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := exchanges.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n == 1 {
			// Expires inside the 60s skew window, so the next call refreshes.
			_, _ = w.Write([]byte(`{"access_token":"tok-short","expires_in":30}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-long","expires_in":3600}`))
	}))
	defer server.Close()

	ts, err := NewTokenSource("svc@example.iam.gserviceaccount.com", keyPEM, server.URL, server.Client())
	require.NoError(t, err)

	token, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-short", token)

	token, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-long", token)
	assert.Equal(t, int32(2), exchanges.Load())
}

func TestNewTokenSourceBadKey(t *testing.T) {
	_, err := NewTokenSource("svc@example.iam.gserviceaccount.com", "not a key", "http://unused", nil)
	require.Error(t, err)
	assert.Equal(t, KindAuth, ErrKind(err))
}

func TestTokenSourceConcurrentRefresh(t *testing.T) {
	keyPEM, _ := testKeyPEM(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
	}))
	defer server.Close()

	ts, err := NewTokenSource("svc@example.iam.gserviceaccount.com", keyPEM, server.URL, server.Client())
	require.NoError(t, err)

	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			token, tokenErr := ts.Token(context.Background())
			require.NoError(t, tokenErr)
			done <- token
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, "tok-1", <-done, "no caller may ever observe a partial token")
	}
}
