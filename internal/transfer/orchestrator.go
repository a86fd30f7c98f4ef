package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"rdrive/internal/pkg/errs"
	"rdrive/internal/pkg/logx"
	"rdrive/internal/relay"
)

// Orchestrator starts upload tasks and owns the shared listing-refresh
// trigger. The trigger must be idempotent; it fires once per successful
// upload and never for failed or cancelled ones.
type Orchestrator struct {
	client *http.Client

	// onRefresh re-fetches the listing after a successful upload so the UI
	// reconciles with the server-assigned state. May be nil.
	onRefresh func()
}

// NewOrchestrator returns an Orchestrator using the given HTTP client
// (http.DefaultClient when nil) and refresh trigger.
func NewOrchestrator(client *http.Client, onRefresh func()) *Orchestrator {
	if client == nil {
		client = http.DefaultClient
	}
	return &Orchestrator{client: client, onRefresh: onRefresh}
}

// progressReader counts bytes as the transport drains the body and reports
// them to the task on every read.
type progressReader struct {
	r      io.Reader
	read   int64
	report func(sent int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report(p.read)
	}
	return n, err
}

// StartDirect uploads through the edge relay: a raw PUT of the body to
// {relayURL}/{name} with the shared-secret header. The caller-supplied name
// becomes the object key verbatim.
func (o *Orchestrator) StartDirect(ctx context.Context, relayURL, secret, name string, body io.Reader, size int64, contentType string, onProgress func(int)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	task := newTask(size, cancel, onProgress)
	task.setKey(name)

	target := strings.TrimSuffix(relayURL, "/") + "/" + url.PathEscape(name)

	go o.run(ctx, task, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, target,
			io.NopCloser(&progressReader{r: body, report: task.report}))
		if err != nil {
			return nil, err
		}
		req.ContentLength = size
		req.Header.Set(relay.AuthHeader, secret)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		return req, nil
	}, nil)

	return task
}

// StartPresigned uploads by PUT to a presigned URL obtained from the
// gateway's issuer. The content type must match the one the grant was
// signed for; key is the grant's target key, recorded on the task.
func (o *Orchestrator) StartPresigned(ctx context.Context, presignedURL, key string, body io.Reader, size int64, contentType string, onProgress func(int)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	task := newTask(size, cancel, onProgress)
	task.setKey(key)

	go o.run(ctx, task, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL,
			io.NopCloser(&progressReader{r: body, report: task.report}))
		if err != nil {
			return nil, err
		}
		req.ContentLength = size
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		return req, nil
	}, nil)

	return task
}

// StartMultipart uploads via the gateway's multipart endpoint. The server
// synthesizes the key and returns it; the task's key is set from the
// acknowledgement. Progress is tracked on the file bytes, not the multipart
// framing.
func (o *Orchestrator) StartMultipart(ctx context.Context, gatewayURL, name string, body io.Reader, size int64, contentType string, onProgress func(int)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	task := newTask(size, cancel, onProgress)

	target := strings.TrimSuffix(gatewayURL, "/") + "/files"

	pipeReader, pipeWriter := io.Pipe()
	form := multipart.NewWriter(pipeWriter)

	go func() {
		part, err := createFormFile(form, "file", name, contentType)
		if err != nil {
			pipeWriter.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, &progressReader{r: body, report: task.report}); err != nil {
			pipeWriter.CloseWithError(err)
			return
		}
		pipeWriter.CloseWithError(form.Close())
	}()

	go o.run(ctx, task, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, pipeReader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", form.FormDataContentType())
		return req, nil
	}, func(respBody []byte) {
		var ack struct {
			Success bool   `json:"success"`
			Key     string `json:"key"`
		}
		if err := json.Unmarshal(respBody, &ack); err == nil && ack.Key != "" {
			task.setKey(ack.Key)
		}
	})

	return task
}

// run executes one upload attempt and settles the task exactly once.
func (o *Orchestrator) run(ctx context.Context, task *Task, makeReq func() (*http.Request, error), onAck func([]byte)) {
	task.start()

	req, err := makeReq()
	if err != nil {
		task.settle(StateFailed, errs.Transport(err, "Failed to build upload request"))
		return
	}

	resp, err := o.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			task.settle(StateCancelled, nil)
			return
		}
		task.settle(StateFailed, errs.Transport(err, "Upload failed: network error"))
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		appErr := errs.Transport(nil, "Upload failed with status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(respBody)))
		appErr.Status = resp.StatusCode
		task.settle(StateFailed, appErr)
		return
	}

	if onAck != nil {
		onAck(respBody)
	}

	task.report(task.total)

	if task.settle(StateSucceeded, nil) {
		logx.Info("Upload completed", "key", task.Key())
		if o.onRefresh != nil {
			o.onRefresh()
		}
	}
}

// createFormFile mirrors multipart.Writer.CreateFormFile but lets the part
// declare the file's real content type instead of octet-stream.
func createFormFile(w *multipart.Writer, fieldName, fileName, contentType string) (io.Writer, error) {
	if contentType == "" {
		return w.CreateFormFile(fieldName, fileName)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, fileName))
	h.Set("Content-Type", contentType)
	return w.CreatePart(h)
}
