package server

import (
	"bytes"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"regexp"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

type asset struct {
	contentType string
	data        []byte
}

// assetHandler serves the html, css and js files of a frontend minified, and
// everything else as is.
type assetHandler struct {
	assets  map[string]asset
	files   http.Handler
	modTime time.Time
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	return m
}

func minifiable(name string) (string, bool) {
	switch path.Ext(name) {
	case ".html":
		return "text/html", true
	case ".css":
		return "text/css", true
	case ".js":
		return "application/javascript", true
	}
	return "", false
}

func newAssetHandler(fsys fs.FS) (*assetHandler, error) {
	m := newMinifier()
	assets := make(map[string]asset)

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		mediaType, ok := minifiable(name)
		if !ok {
			return nil
		}
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		out, err := m.Bytes(mediaType, raw)
		if err != nil {
			return fmt.Errorf("minify %s: %w", name, err)
		}
		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType == "" {
			contentType = mediaType
		}
		assets["/"+name] = asset{contentType: contentType, data: out}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &assetHandler{
		assets:  assets,
		files:   http.FileServer(http.FS(fsys)),
		modTime: time.Now(),
	}, nil
}

func (h *assetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Path
	if name == "" || name[len(name)-1] == '/' {
		name += "index.html"
	}
	a, ok := h.assets[name]
	if !ok {
		h.files.ServeHTTP(w, r)
		return
	}
	w.Header().Set("Content-Type", a.contentType)
	http.ServeContent(w, r, name, h.modTime, bytes.NewReader(a.data))
}
