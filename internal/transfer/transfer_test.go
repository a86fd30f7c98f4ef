package transfer

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdrive/internal/relay"
)

func waitSettled(t *testing.T, task *Task) {
	t.Helper()
	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not settle in time")
	}
}

func TestDirectUploadSucceeds(t *testing.T) {
	var gotSecret, gotKey string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotSecret = r.Header.Get(relay.AuthHeader)
		gotKey = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var refreshes atomic.Int32
	refreshed := make(chan struct{}, 1)
	o := NewOrchestrator(srv.Client(), func() {
		refreshes.Add(1)
		refreshed <- struct{}{}
	})

	var mu sync.Mutex
	var reported []int
	payload := bytes.Repeat([]byte("x"), 64*1024)

	task := o.StartDirect(context.Background(), srv.URL, "s3cret", "big.bin",
		bytes.NewReader(payload), int64(len(payload)), "application/octet-stream",
		func(percent int) {
			mu.Lock()
			reported = append(reported, percent)
			mu.Unlock()
		})

	waitSettled(t, task)

	select {
	case <-refreshed:
	case <-time.After(5 * time.Second):
		t.Fatal("refresh was not triggered")
	}

	assert.Equal(t, StateSucceeded, task.State())
	assert.Nil(t, task.Err())
	assert.Equal(t, 100, task.Progress())
	assert.Equal(t, "big.bin", task.Key())

	assert.Equal(t, "s3cret", gotSecret)
	assert.Equal(t, "/big.bin", gotKey)
	assert.Equal(t, payload, gotBody)
	assert.Equal(t, int32(1), refreshes.Load())

	// Progress is monotonically non-decreasing and ends at 100.
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, reported)
	prev := 0
	for _, p := range reported {
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}
	assert.Equal(t, 100, reported[len(reported)-1])
}

func TestUploadFailureSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	var refreshes atomic.Int32
	o := NewOrchestrator(srv.Client(), func() { refreshes.Add(1) })

	task := o.StartDirect(context.Background(), srv.URL, "s3cret", "a.txt",
		bytes.NewReader([]byte("data")), 4, "text/plain", nil)

	waitSettled(t, task)

	assert.Equal(t, StateFailed, task.State())
	require.NotNil(t, task.Err())
	assert.Equal(t, http.StatusInternalServerError, task.Err().Status)
	assert.Contains(t, task.Err().Message, "boom")

	// A failed upload must leave the listing untouched.
	assert.Equal(t, int32(0), refreshes.Load())
}

func TestCancelMidTransfer(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	var refreshes atomic.Int32
	o := NewOrchestrator(srv.Client(), func() { refreshes.Add(1) })

	pr, pw := io.Pipe()
	defer pw.Close()

	task := o.StartDirect(context.Background(), srv.URL, "s3cret", "slow.bin",
		pr, 1<<20, "application/octet-stream", nil)

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("upload never reached the server")
	}

	task.Cancel()
	waitSettled(t, task)

	assert.Equal(t, StateCancelled, task.State())
	assert.Nil(t, task.Err())
	assert.Equal(t, int32(0), refreshes.Load())
}

func TestCancelAfterCompletionIsNoOp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var refreshes atomic.Int32
	o := NewOrchestrator(srv.Client(), func() { refreshes.Add(1) })

	task := o.StartDirect(context.Background(), srv.URL, "s3cret", "a.txt",
		bytes.NewReader([]byte("data")), 4, "text/plain", nil)

	waitSettled(t, task)
	require.Equal(t, StateSucceeded, task.State())

	// A late cancel neither flips the terminal state nor re-triggers the
	// refresh: the first settlement wins and everything after is a no-op.
	task.Cancel()
	task.Cancel()

	assert.Equal(t, StateSucceeded, task.State())
	assert.Eventually(t, func() bool { return refreshes.Load() == 1 },
		2*time.Second, 10*time.Millisecond)
}

func TestCancelRacingTaskStartup(t *testing.T) {
	// A cancel issued right after Start* returns may beat the transfer
	// goroutine to the task. The settlement must stick: Done() closing
	// implies a terminal state, and the state never drifts back to
	// uploading afterwards.
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	o := NewOrchestrator(srv.Client(), nil)

	for i := 0; i < 50; i++ {
		task := o.StartDirect(context.Background(), srv.URL, "s3cret", "a.txt",
			bytes.NewReader([]byte("data")), 4, "text/plain", nil)
		task.Cancel()

		waitSettled(t, task)
		require.Equal(t, StateCancelled, task.State(), "iteration %d", i)

		// A straggling progress report must not resurface after settlement.
		progress := task.Progress()
		task.report(4)
		assert.Equal(t, StateCancelled, task.State(), "iteration %d", i)
		assert.Equal(t, progress, task.Progress(), "iteration %d", i)
	}
}

func TestExactlyOneTerminalState(t *testing.T) {
	// Hammer a settled task with racing cancels; the state must never
	// change once terminal.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	o := NewOrchestrator(srv.Client(), nil)

	for i := 0; i < 20; i++ {
		task := o.StartDirect(context.Background(), srv.URL, "s3cret", "a.txt",
			bytes.NewReader([]byte("data")), 4, "text/plain", nil)

		var wg sync.WaitGroup
		for j := 0; j < 4; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				task.Cancel()
			}()
		}
		waitSettled(t, task)
		wg.Wait()

		first := task.State()
		require.True(t, first.Terminal())
		for j := 0; j < 10; j++ {
			assert.Equal(t, first, task.State())
		}
	}
}

func TestMultipartUploadReportsServerKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "notes.txt", header.Filename)
		body, _ := io.ReadAll(file)
		assert.Equal(t, "hello", string(body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"key":"1700-notes.txt"}`))
	}))
	defer srv.Close()

	o := NewOrchestrator(srv.Client(), nil)

	task := o.StartMultipart(context.Background(), srv.URL, "notes.txt",
		bytes.NewReader([]byte("hello")), 5, "text/plain", nil)

	waitSettled(t, task)

	assert.Equal(t, StateSucceeded, task.State())
	assert.Equal(t, "1700-notes.txt", task.Key())
}

func TestPresignedUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "image/svg+xml", r.Header.Get("Content-Type"))
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	o := NewOrchestrator(srv.Client(), nil)

	task := o.StartPresigned(context.Background(), srv.URL+"/put", "1700-logo.svg",
		bytes.NewReader([]byte("<svg/>")), 6, "image/svg+xml", nil)

	waitSettled(t, task)

	assert.Equal(t, StateSucceeded, task.State())
	assert.Equal(t, "1700-logo.svg", task.Key())
}
