// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/TheGoldfish01/dpf-go/dpf"
)

// minCompressSize is the smallest response body worth compressing.
const minCompressSize = 1024

// HttpServer serves the wire protocol over HTTP: POST {prefix}/{method}.
type HttpServer struct {
	server  *Server
	prefix  string
	mux     *http.ServeMux
	encoder *zstd.Encoder

	landingHTML  []byte
	describeHTML []byte
	notFoundHTML []byte
}

// NewHttpServer creates an HTTP front end for server under
// dpf.DefaultHTTPPrefix. Pages are rendered from the operators registered
// at this point.
func NewHttpServer(server *Server) *HttpServer {
	h := &HttpServer{
		server: server,
		prefix: dpf.DefaultHTTPPrefix,
	}
	h.mux = http.NewServeMux()
	h.mux.HandleFunc(fmt.Sprintf("POST %s/{method}", h.prefix), h.handleCall)
	h.mux.HandleFunc(fmt.Sprintf("GET %s", h.prefix), h.handleLandingPage)
	h.mux.HandleFunc(fmt.Sprintf("GET %s/describe", h.prefix), h.handleDescribePage)
	h.mux.HandleFunc("/", h.handleNotFound)

	h.landingHTML = buildLandingHTML(h.prefix, server.serviceLabel(), server.serverID, h.prefix+"/describe", len(server.Operators()))
	h.describeHTML = buildDescribeHTML(server, server.serviceLabel())
	h.notFoundHTML = buildNotFoundHTML(h.prefix, server.serviceLabel())
	return h
}

// SetCompressionLevel enables zstd compression of responses for clients
// sending Accept-Encoding: zstd. level follows the zstd command line
// (1 fastest .. 19 smallest); 0 disables compression.
func (h *HttpServer) SetCompressionLevel(level int) error {
	if h.encoder != nil {
		h.encoder.Close()
		h.encoder = nil
	}
	if level <= 0 {
		return nil
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	h.encoder = enc
	return nil
}

// ServeHTTP implements http.Handler.
func (h *HttpServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// handleCall dispatches one call.
func (h *HttpServer) handleCall(w http.ResponseWriter, r *http.Request) {
	method := r.PathValue("method")

	if ct := r.Header.Get("Content-Type"); ct != dpf.ArrowContentType {
		h.writeHttpError(w, r, http.StatusUnsupportedMediaType,
			&dpf.RemoteError{Type: "ValueError", Message: fmt.Sprintf("unsupported content type: %s", ct)})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeHttpError(w, r, http.StatusBadRequest, err)
		return
	}
	req, err := dpf.ReadRequest(bytes.NewReader(body))
	if err != nil {
		h.writeHttpError(w, r, http.StatusBadRequest, err)
		return
	}
	defer req.Batch.Release()

	if req.Method != method {
		h.writeHttpError(w, r, http.StatusBadRequest, &dpf.RemoteError{
			Type:    "ProtocolError",
			Message: fmt.Sprintf("path names method %q but request batch names %q", method, req.Method),
		})
		return
	}

	req.Metadata["remote_addr"] = r.RemoteAddr
	req.Metadata["user_agent"] = r.UserAgent()

	var buf bytes.Buffer
	handlerErr, err := h.server.dispatch(r.Context(), &buf, req)
	if err != nil {
		slog.Error("engine: writing http response", "method", method, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeArrow(w, r, statusFor(handlerErr), buf.Bytes())
}

// statusFor maps a handler error onto an HTTP status.
func statusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var re *dpf.RemoteError
	if errors.As(err, &re) {
		switch re.Type {
		case "TypeError", "ValueError":
			return http.StatusBadRequest
		case "KeyError", "AttributeError":
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}

func (h *HttpServer) writeHttpError(w http.ResponseWriter, r *http.Request, statusCode int, err error) {
	var buf bytes.Buffer
	_ = dpf.WriteErrorResponse(&buf, nil, nil, err, h.server.serverID, "", h.server.debugErrors)
	h.writeArrow(w, r, statusCode, buf.Bytes())
}

func (h *HttpServer) writeArrow(w http.ResponseWriter, r *http.Request, statusCode int, data []byte) {
	w.Header().Set("Content-Type", dpf.ArrowContentType)
	if h.encoder != nil && len(data) >= minCompressSize && strings.Contains(r.Header.Get("Accept-Encoding"), "zstd") {
		data = h.encoder.EncodeAll(data, nil)
		w.Header().Set("Content-Encoding", "zstd")
	}
	w.WriteHeader(statusCode)
	_, _ = w.Write(data)
}
