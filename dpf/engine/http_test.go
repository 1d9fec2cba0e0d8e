// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheGoldfish01/dpf-go/dpf"
)

func TestHttpServer_Pages(t *testing.T) {
	t.Parallel()
	s := newPassServer()
	s.SetServiceName("Post-processing")
	ts := httptest.NewServer(NewHttpServer(s))
	defer ts.Close()

	testCases := []struct {
		path     string
		status   int
		contains string
	}{
		{"/dpf", http.StatusOK, "1 operators registered"},
		{"/dpf/describe", http.StatusOK, "passes a field through"},
		{"/elsewhere", http.StatusNotFound, "Post-processing"},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tc.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
			assert.Contains(t, string(body), tc.contains)
		})
	}
}

func TestHttpServer_RejectsContentType(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(NewHttpServer(newPassServer()))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/dpf/"+dpf.MethodRun, "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	assert.Equal(t, dpf.ArrowContentType, resp.Header.Get("Content-Type"))
}

func TestHttpServer_MethodMismatch(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(NewHttpServer(newPassServer()))
	defer ts.Close()

	var req bytes.Buffer
	require.NoError(t, dpf.WriteRequest(&req, dpf.MethodRun, dpf.OperatorParams{OperatorID: "x"}, nil))
	resp, err := http.Post(ts.URL+"/dpf/"+dpf.MethodRelease, dpf.ArrowContentType, &req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decoded, err := dpf.ReadResponse(resp.Body)
	require.NoError(t, err)
	require.NotNil(t, decoded.Err)
	assert.Equal(t, "ProtocolError", decoded.Err.Type)
}

func TestHttpServer_CompressesLargeResponses(t *testing.T) {
	t.Parallel()
	s := newPassServer()
	for _, name := range []string{"pass_a", "pass_b", "pass_c", "pass_d", "pass_e"} {
		s.Register(Registration{Name: name, Specification: passSpec, Kernel: passKernel})
	}
	hs := NewHttpServer(s)
	require.NoError(t, hs.SetCompressionLevel(3))

	var req bytes.Buffer
	require.NoError(t, dpf.WriteRequest(&req, dpf.MethodDescribe, nil, nil))
	r := httptest.NewRequest(http.MethodPost, "/dpf/"+dpf.MethodDescribe, &req)
	r.Header.Set("Content-Type", dpf.ArrowContentType)
	r.Header.Set("Accept-Encoding", "zstd")
	w := httptest.NewRecorder()

	hs.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "zstd", w.Header().Get("Content-Encoding"))
	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	body, err := dec.DecodeAll(w.Body.Bytes(), nil)
	require.NoError(t, err)

	resp, err := dpf.ReadResponse(bytes.NewReader(body))
	require.NoError(t, err)
	require.Nil(t, resp.Err)
	assert.EqualValues(t, 6, resp.Result.NumRows())
	resp.Result.Release()

	require.NoError(t, hs.SetCompressionLevel(0))
	assert.Nil(t, hs.encoder)
}

func TestStatusFor(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{&dpf.RemoteError{Type: "TypeError"}, http.StatusBadRequest},
		{&dpf.RemoteError{Type: "ValueError"}, http.StatusBadRequest},
		{&dpf.RemoteError{Type: "KeyError"}, http.StatusNotFound},
		{&dpf.RemoteError{Type: "AttributeError"}, http.StatusNotFound},
		{&dpf.RemoteError{Type: "RuntimeError"}, http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, statusFor(tc.err), "%v", tc.err)
	}
}
