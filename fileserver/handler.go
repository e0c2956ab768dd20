package fileserver

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var indexNames = []string{"index.html", "index.htm"}

// Handler serves files and directory listings from a root directory. It
// responds to GET and HEAD only, resolves request paths strictly under the
// root, and renders an HTML listing for directories without an index file.
type Handler struct {
	root   string
	logger *slog.Logger
}

func New(root string, logger *slog.Logger) (*Handler, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", abs)
	}

	return &Handler{
		root:   abs,
		logger: logger.With("component", "fileserver"),
	}, nil
}

// Root returns the absolute path of the served root.
func (h *Handler) Root() string {
	return h.root
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	default:
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	// Cleaning the rooted path collapses any ".." segments, so the joined
	// name cannot escape the root.
	urlPath := path.Clean("/" + r.URL.Path)
	name := filepath.Join(h.root, filepath.FromSlash(urlPath))

	info, err := os.Stat(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if info.IsDir() {
		if !strings.HasSuffix(r.URL.Path, "/") {
			http.Redirect(w, r, urlPath+"/", http.StatusMovedPermanently)
			return
		}

		index, indexInfo := h.findIndex(name)
		if index == "" {
			h.serveListing(w, r, urlPath, name)
			return
		}
		name, info = index, indexInfo
	}

	h.serveFile(w, r, name, info)
}

func (h *Handler) findIndex(dir string) (string, fs.FileInfo) {
	for _, index := range indexNames {
		name := filepath.Join(dir, index)
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name, info
		}
	}
	return "", nil
}

func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, name string, info fs.FileInfo) {
	f, err := os.Open(name)
	if err != nil {
		h.logger.Warn("cannot open file", "path", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

type listingData struct {
	Path    string
	Entries []listingEntry
}

type listingEntry struct {
	Name string
	Href string
	Size int64
	Dir  bool
}

var listingTmpl = template.Must(template.New("listing").Parse(`<!DOCTYPE HTML>
<html>
<head>
<meta charset="utf-8">
<title>Directory listing for {{.Path}}</title>
</head>
<body>
<h1>Directory listing for {{.Path}}</h1>
<hr>
<ul>
{{- range .Entries}}
<li><a href="{{.Href}}">{{.Name}}</a>{{if not .Dir}} ({{.Size}} bytes){{end}}</li>
{{- end}}
</ul>
<hr>
</body>
</html>
`))

func (h *Handler) serveListing(w http.ResponseWriter, r *http.Request, urlPath string, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		h.logger.Warn("cannot read directory", "path", dir, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	displayPath := urlPath
	if !strings.HasSuffix(displayPath, "/") {
		displayPath += "/"
	}

	data := listingData{Path: displayPath}
	for _, entry := range entries {
		le := listingEntry{
			Name: entry.Name(),
			Href: url.PathEscape(entry.Name()),
			Dir:  entry.IsDir(),
		}
		if entry.IsDir() {
			le.Name += "/"
			le.Href += "/"
		} else if info, err := entry.Info(); err == nil {
			le.Size = info.Size()
		}
		data.Entries = append(data.Entries, le)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := listingTmpl.Execute(w, data); err != nil {
		h.logger.Warn("cannot render listing", "path", dir, "err", err)
	}
}
