package lspdap

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/coreseekdev/glyph/pkg/buffer"
)

// DocumentIdentity is the (uri, version) pair LSP's TextDocumentIdentifier
// and VersionedTextDocumentIdentifier carry, the first of the three items
// spec.md §6 names as crossing the core/collaborator boundary.
type DocumentIdentity struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

// Identity builds b's DocumentIdentity. Buffers without a Path (new,
// unsaved buffers) get a "buffer:" pseudo-URI carrying the buffer ID,
// since LSP's "file://" scheme requires a real filesystem location.
func Identity(b *buffer.Buffer) DocumentIdentity {
	return DocumentIdentity{URI: uriFor(b), Version: b.Version()}
}

func uriFor(b *buffer.Buffer) string {
	if b.Path == "" {
		return fmt.Sprintf("buffer:%s", b.ID)
	}
	abs, err := filepath.Abs(b.Path)
	if err != nil {
		abs = b.Path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}
