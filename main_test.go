package main

import (
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballot-ledger/cliparse"
	"github.com/danielhkuo/ballot-ledger/testutil"
)

func TestServe_WaitsForInFlightRequests(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte("vote recorded"))
	})}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	stop := make(chan os.Signal, 1)
	served := make(chan error, 1)
	go func() { served <- serve(server, ln, stop, 5*time.Second) }()

	type reply struct {
		body string
		err  error
	}
	replies := make(chan reply, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/")
		if err != nil {
			replies <- reply{err: err}
			return
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		replies <- reply{body: string(body), err: err}
	}()

	<-entered
	stop <- syscall.SIGTERM

	select {
	case err := <-served:
		t.Fatalf("serve returned while a request was in flight: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(release)

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the request finished")
	}

	r := <-replies
	require.NoError(t, r.err)
	assert.Equal(t, "vote recorded", r.body)
}

func TestNewProvider(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.AssertionMode = cliparse.AssertionSimulated
	cfg.AssertionSuccessRate = 0

	p := newProvider(cfg)
	a, err := p.Verify(t.Context(), "ada@example.com")
	require.NoError(t, err)
	assert.False(t, a.Success, "a configured success rate of 0 rejects every voter")
}
