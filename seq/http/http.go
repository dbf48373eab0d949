// Package http adapts HTTP responses into lazyseq sequences. Request
// sequences are restartable: each execution issues the request again, on
// the first pull, so a sequence definition behaves like a view over the
// remote resource.
//
// Streaming decoders compose through BodyOpener: seqio.Lines and
// seqjson.DecodeStream accept the opener directly, so a response body can
// be consumed line by line or document by document without buffering it.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/lguimbarda/lazyseq/seq/core"
	seqio "github.com/lguimbarda/lazyseq/seq/io"
	"github.com/lguimbarda/lazyseq/seq/seqerrors"
)

// Response holds a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// StatusError reports a non-success response where a body stream was
// requested.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http: %s returned status %d", e.URL, e.StatusCode)
}

// BodyOpener returns an open function that issues the request and hands
// over the response body. It runs lazily, once per execution, on the first
// pull; a status of 400 or above fails the open with a StatusError. The
// body is closed when the execution is torn down.
func BodyOpener(ctx context.Context, client *http.Client, method, url string) func() (io.ReadCloser, error) {
	if client == nil {
		client = http.DefaultClient
	}
	return func() (io.ReadCloser, error) {
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
		}
		return resp.Body, nil
	}
}

// Get returns a single-element sequence holding the GET response. The
// request runs per execution; the status code is reported as data, not as
// an error.
func Get(ctx context.Context, url string) core.Seq[Response] {
	return GetWithClient(ctx, http.DefaultClient, url)
}

// GetWithClient is Get with a custom client.
func GetWithClient(ctx context.Context, client *http.Client, url string) core.Seq[Response] {
	if client == nil {
		panic("http.GetWithClient: client cannot be nil")
	}
	return core.FromCursorFunc(func() core.Cursor[Response] {
		return &fetchCursor{ctx: ctx, client: client, urls: &singleURL{url: url}}
	})
}

// GetEach fetches every URL of urls in order, yielding one Response per
// URL. Requests run on demand: taking a prefix fetches only that prefix.
// A failed request fails the execution.
func GetEach(ctx context.Context, client *http.Client, urls core.Seq[string]) core.Seq[Response] {
	if client == nil {
		panic("http.GetEach: client cannot be nil")
	}
	if urls == nil {
		panic("http.GetEach: urls cannot be nil")
	}
	return core.FromCursorFunc(func() core.Cursor[Response] {
		return &fetchCursor{ctx: ctx, client: client, urls: urls.Cursor()}
	})
}

// GetLines returns the response body of a GET request as a sequence of
// lines. A status of 400 or above fails the execution with a StatusError.
func GetLines(ctx context.Context, url string) core.Seq[string] {
	return GetLinesWithClient(ctx, http.DefaultClient, url)
}

// GetLinesWithClient is GetLines with a custom client.
func GetLinesWithClient(ctx context.Context, client *http.Client, url string) core.Seq[string] {
	if client == nil {
		panic("http.GetLinesWithClient: client cannot be nil")
	}
	return seqio.Lines(BodyOpener(ctx, client, http.MethodGet, url))
}

// singleURL is the one-shot URL cursor backing Get.
type singleURL struct {
	url     string
	yielded bool
}

func (s *singleURL) Next() bool {
	if s.yielded {
		return false
	}
	s.yielded = true
	return true
}

func (s *singleURL) Value() string { return s.url }
func (s *singleURL) Err() error    { return nil }
func (s *singleURL) Close() error  { return nil }

type fetchCursor struct {
	ctx    context.Context
	client *http.Client
	urls   core.Cursor[string]

	current Response
	err     error
	started bool
	done    bool
}

func (c *fetchCursor) Next() bool {
	if c.done {
		return false
	}
	c.started = true
	if !c.urls.Next() {
		c.err = c.urls.Err()
		c.done = true
		return false
	}
	resp, err := c.fetch(c.urls.Value())
	if err != nil {
		c.err = err
		c.done = true
		return false
	}
	c.current = resp
	return true
}

func (c *fetchCursor) fetch(url string) (Response, error) {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}
	return Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

func (c *fetchCursor) Value() Response {
	switch {
	case !c.started:
		panic(seqerrors.MsgNotStarted)
	case c.done:
		panic(seqerrors.MsgFinished)
	}
	return c.current
}

func (c *fetchCursor) Err() error { return c.err }

func (c *fetchCursor) Close() error {
	c.done = true
	return c.urls.Close()
}
