package geotiff

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// remoteReader adapts a stateless ReadAt-style fetch function into the
// io.ReadSeeker the decode pipeline wants. The mutex only protects the
// cursor used by sequential Read/Seek; ReadAt callers bypass it entirely.
type remoteReader struct {
	size    int64
	fetchAt func(p []byte, off int64) (int, error)

	mu     sync.Mutex
	offset int64
}

func (r *remoteReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.offset >= r.size {
		return 0, io.EOF
	}
	n, err := r.readAt(p, r.offset)
	if n > 0 {
		r.offset += int64(n)
	}
	return n, err
}

func (r *remoteReader) Seek(offset int64, whence int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = r.offset + offset
	case io.SeekEnd:
		next = r.size + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if next < 0 {
		return 0, errors.New("cannot seek to negative offset")
	}
	r.offset = next
	return r.offset, nil
}

// ReadAt implements io.ReaderAt. It is stateless and safe for concurrent use.
func (r *remoteReader) ReadAt(p []byte, off int64) (int, error) {
	return r.readAt(p, off)
}

func (r *remoteReader) readAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off < 0 {
		return 0, fmt.Errorf("readAt: invalid offset %d", off)
	}
	if off >= r.size {
		return 0, io.EOF
	}
	length := int64(len(p))
	if off+length > r.size {
		length = r.size - off
	}
	return r.fetchAt(p[:length], off)
}

// HTTPRangeReader reads a remote file over HTTP using byte-range requests,
// satisfying the io.ReadSeeker and io.ReaderAt interfaces.
type HTTPRangeReader struct {
	remoteReader
	url    string
	client *http.Client
}

// NewHTTPRangeReader probes url with a HEAD request and returns a reader for
// it. The server must advertise byte-range support.
func NewHTTPRangeReader(url string, client *http.Client) (*HTTPRangeReader, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Head(url)
	if err != nil {
		return nil, fmt.Errorf("http head request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status for http head request: %s", resp.Status)
	}
	if resp.Header.Get("Accept-Ranges") != "bytes" {
		return nil, errors.New("server does not accept byte range requests")
	}
	if resp.ContentLength <= 0 {
		return nil, errors.New("could not determine content length or file is empty")
	}

	h := &HTTPRangeReader{
		url:    url,
		client: client,
	}
	h.remoteReader = remoteReader{size: resp.ContentLength, fetchAt: h.fetchRange}
	return h, nil
}

func (h *HTTPRangeReader) fetchRange(p []byte, off int64) (int, error) {
	req, err := http.NewRequest(http.MethodGet, h.url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", off, off+int64(len(p))-1))

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusPartialContent {
		return 0, fmt.Errorf("expected status 206 Partial Content, got: %s", resp.Status)
	}
	return io.ReadFull(resp.Body, p)
}
