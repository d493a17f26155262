package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxDocumentBytes caps the size of a fetched catalog document.
const maxDocumentBytes = 1 << 20

//go:embed builtin.yaml
var builtinDocument []byte

// Source loads a catalog once at startup.
type Source interface {
	// Load returns the catalog, or an error wrapping ErrLoadFailure.
	Load(ctx context.Context) (*Catalog, error)
	// String describes the source for logs.
	String() string
}

// BuiltinSource serves the catalog compiled into the binary.
type BuiltinSource struct{}

// Load implements Source.
func (BuiltinSource) Load(context.Context) (*Catalog, error) {
	return Parse(builtinDocument)
}

func (BuiltinSource) String() string { return "builtin" }

// FileSource reads the catalog from a YAML or JSON file.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(context.Context) (*Catalog, error) {
	return LoadFile(s.Path)
}

func (s FileSource) String() string { return "file:" + s.Path }

// HTTPSource fetches the catalog document with a single GET request.
// There is no retry: a failed fetch is final for the session.
type HTTPSource struct {
	URL string
	// Client defaults to http.DefaultClient when nil.
	Client *http.Client
	// Timeout bounds the whole fetch; zero means no timeout beyond ctx.
	Timeout time.Duration
}

// Load implements Source.
//
// Postcondition: Returns a validated Catalog, or an error wrapping ErrLoadFailure
// on transport errors, non-200 status, or an unparsable payload.
func (s HTTPSource) Load(ctx context.Context) (*Catalog, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %w", ErrLoadFailure, s.URL, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %w", ErrLoadFailure, s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching %s: unexpected status %d", ErrLoadFailure, s.URL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrLoadFailure, s.URL, err)
	}
	if len(data) > maxDocumentBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrLoadFailure, s.URL, maxDocumentBytes)
	}
	return Parse(data)
}

func (s HTTPSource) String() string { return s.URL }

// NewSource selects a Source from a reference: "builtin" or empty for the
// compiled-in table, an http(s) URL for a fetched document, anything else is
// a file path.
func NewSource(ref string, timeout time.Duration) Source {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "" || ref == "builtin":
		return BuiltinSource{}
	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		return HTTPSource{URL: ref, Timeout: timeout}
	default:
		return FileSource{Path: ref}
	}
}
