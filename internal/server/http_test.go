package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainListener_Listen(t *testing.T) {
	l := NewPlainListener()

	listener, err := l.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	assert.NotNil(t, listener.Addr())
}

func TestTLSListener_Listen_MissingCertificate(t *testing.T) {
	l := NewTLSListener("missing-cert.pem", "missing-key.pem")

	_, err := l.Listen("tcp", "127.0.0.1:0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load TLS certificate")
}

func TestHTTPServer_StartAndStop(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	srv := NewHTTPServer(handler, addr)
	assert.Equal(t, addr, srv.Address())

	done := make(chan error, 1)
	go func() {
		done <- srv.Start(NewPlainListener())
	}()

	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Get(fmt.Sprintf("http://%s/", addr))
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))
	require.NoError(t, <-done)
}
