// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

// Command dpf-conformance-engine serves the catalog operators with echo
// kernels over stdio, a unix socket (--unix PATH) or HTTP (--http).
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/TheGoldfish01/dpf-go/conformance"
	"github.com/TheGoldfish01/dpf-go/dpf/engine"
)

func main() {
	server := engine.NewServer()
	server.SetServiceName("dpf-conformance-engine")
	server.SetDebugErrors(true)
	if err := conformance.RegisterOperators(server); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register operators: %v\n", err)
		os.Exit(1)
	}

	switch {
	case len(os.Args) > 1 && os.Args[1] == "--http":
		serveHTTP(server)
	case len(os.Args) > 2 && os.Args[1] == "--unix":
		serveUnix(server, os.Args[2])
	default:
		server.RunStdio()
	}
}

func serveHTTP(server *engine.Server) {
	httpServer := engine.NewHttpServer(server)
	httpServer.SetCompressionLevel(3)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to listen: %v\n", err)
		os.Exit(1)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	fmt.Printf("PORT:%d\n", port)
	os.Stdout.Sync()

	srv := &http.Server{Handler: httpServer}

	// Exit cleanly on SIGTERM/SIGINT so coverage data is flushed when
	// built with -cover.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigCh
		srv.Shutdown(context.Background())
	}()

	if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "http serve error: %v\n", err)
		os.Exit(1)
	}
}

func serveUnix(server *engine.Server, path string) {
	os.Remove(path)

	listener, err := net.Listen("unix", path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to listen on unix socket: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("UNIX:%s\n", path)
	os.Stdout.Sync()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigCh
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			break
		}
		server.Serve(conn, conn)
		conn.Close()
	}
	os.Remove(path)
}
