package server_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/ipni/cidgen"
	"github.com/ipni/cidgen/server"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	tests := []struct {
		name         string
		onMethod     string
		onTarget     string
		onBody       string
		expectStatus int
		expectBody   string
	}{
		{
			name:         "GET /cid is 405",
			onMethod:     http.MethodGet,
			onTarget:     "/cid",
			expectStatus: http.StatusMethodNotAllowed,
		},
		{
			name:         "POST /cid returns base32 CID of body",
			onMethod:     http.MethodPost,
			onTarget:     "/cid",
			onBody:       "hello",
			expectStatus: http.StatusOK,
			expectBody:   `{"cid":"bafkreibm6jg3ux5qumhcn2b3flc3tyu6dmlb4xa7u5bf44yegnrjhc4yeq"}`,
		},
		{
			name:         "POST /cid with base58 returns base58 CID of body",
			onMethod:     http.MethodPost,
			onTarget:     "/cid?base=base58",
			onBody:       "hello",
			expectStatus: http.StatusOK,
			expectBody:   `{"cid":"zb2rhZfjRh2FHHB2RkHVEvL2vJnCTcu7kwRqgVsf9gpkLgteo"}`,
		},
		{
			name:         "POST /cid with unrecognized base is 400",
			onMethod:     http.MethodPost,
			onTarget:     "/cid?base=base64",
			onBody:       "hello",
			expectStatus: http.StatusBadRequest,
			expectBody:   "base must be one of base32 or base58, got: base64",
		},
		{
			name:         "POST /cid with unimplemented hash is 400",
			onMethod:     http.MethodPost,
			onTarget:     "/cid?hash=sha1",
			onBody:       "hello",
			expectStatus: http.StatusBadRequest,
			expectBody:   "hash type sha1 has no digest implementation",
		},
		{
			name:         "POST /cid with unknown hash name is 400",
			onMethod:     http.MethodPost,
			onTarget:     "/cid?hash=fish",
			onBody:       "hello",
			expectStatus: http.StatusBadRequest,
			expectBody:   "unknown hash type: fish",
		},
		{
			name:         "POST /cid/record returns CID of canonical record",
			onMethod:     http.MethodPost,
			onTarget:     "/cid/record",
			onBody:       `{"key": "value"}`,
			expectStatus: http.StatusOK,
			expectBody:   `{"cid":"bafkreihehk6pgn2sisbzyajpsyz7swdc2izkswya2w6hgsftbgfz73l7gi"}`,
		},
		{
			name:         "POST /cid/record with base58 returns base58 CID",
			onMethod:     http.MethodPost,
			onTarget:     "/cid/record?base=base58",
			onBody:       `{"key": "value"}`,
			expectStatus: http.StatusOK,
			expectBody:   `{"cid":"zb2rhn1C6ZDoX6rdgiqkqsaeK7RPKTBgEi8scchkf3xdsi8Bj"}`,
		},
		{
			name:         "POST /cid/record with invalid JSON is 400",
			onMethod:     http.MethodPost,
			onTarget:     "/cid/record",
			onBody:       "{]",
			expectStatus: http.StatusBadRequest,
		},
		{
			name:         "POST /cid/record with numeric body is 400",
			onMethod:     http.MethodPost,
			onTarget:     "/cid/record",
			onBody:       "1234",
			expectStatus: http.StatusBadRequest,
		},
		{
			name:         "POST /cid/record with array body is 400",
			onMethod:     http.MethodPost,
			onTarget:     "/cid/record",
			onBody:       `["a", 1]`,
			expectStatus: http.StatusBadRequest,
		},
		{
			name:         "GET /ready is 200",
			onMethod:     http.MethodGet,
			onTarget:     "/ready",
			expectStatus: http.StatusOK,
		},
		{
			name:         "GET /fish is 404",
			onMethod:     http.MethodGet,
			onTarget:     "/fish",
			expectStatus: http.StatusNotFound,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			subject, err := server.New("")
			require.NoError(t, err)

			given := httptest.NewRequest(test.onMethod, test.onTarget, bytes.NewBufferString(test.onBody))
			got := httptest.NewRecorder()
			subject.Handler().ServeHTTP(got, given)
			require.Equal(t, test.expectStatus, got.Code)

			gotBody, err := io.ReadAll(got.Body)
			require.NoError(t, err)
			if test.expectBody != "" {
				require.Equal(t, test.expectBody, strings.TrimSpace(string(gotBody)))
			}
		})
	}
}

func TestServer_Blake3MatchesReferenceCid(t *testing.T) {
	subject, err := server.New("", server.WithDefaultHashType(cidgen.BLAKE3))
	require.NoError(t, err)

	given := httptest.NewRequest(http.MethodPost, "/cid", bytes.NewBufferString("hello"))
	got := httptest.NewRecorder()
	subject.Handler().ServeHTTP(got, given)
	require.Equal(t, http.StatusOK, got.Code)

	mh, err := multihash.Sum([]byte("hello"), multihash.BLAKE3, -1)
	require.NoError(t, err)
	want := `{"cid":"` + cid.NewCidV1(uint64(multicodec.Raw), mh).String() + `"}`
	require.JSONEq(t, want, got.Body.String())
}
