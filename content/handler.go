package content

import (
	"io/fs"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// BundleDir is where bundles live inside the site directory.
const BundleDir = "content"

// Handler serves a static site, filling CMS placeholders in HTML pages on the
// way out.
type Handler struct {
	site       fs.FS
	loader     Loader
	fileServer http.Handler
}

func NewHandler(site fs.FS, sources Sources) *Handler {
	return &Handler{
		site:       site,
		loader:     FileLoader{FS: site, Sources: sources},
		fileServer: http.FileServer(http.FS(site)),
	}
}

// WithLoader replaces the bundle loader, e.g. with an HTTPLoader.
func (h *Handler) WithLoader(loader Loader) *Handler {
	h.loader = loader
	return h
}

// BundleHandler serves GET /content/{file}. Only JSON bundles are served.
func (h *Handler) BundleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file := r.PathValue("file")
		if file == "" {
			file = path.Base(r.URL.Path)
		}
		if path.Ext(file) != ".json" || strings.Contains(file, "/") {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}

		data, err := fs.ReadFile(h.site, path.Join(BundleDir, file))
		if err != nil {
			log.Debug().Err(err).Str("file", file).Msg("Content bundle not found")
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(data)
	}
}

// PageHandler serves site files. HTML pages are rendered with their bundle;
// everything else goes to the file server untouched.
func (h *Handler) PageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pageName(h.site, r.URL.Path)
		if !isHTMLPage(name) {
			h.fileServer.ServeHTTP(w, r)
			return
		}

		page, err := fs.ReadFile(h.site, name)
		if err != nil {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}

		out, res := RenderPage(r.Context(), h.loader, page)
		if !res.IsLoaded() {
			log.Debug().Err(res.Reason).Str("page", name).Msg("Content not injected")
		}

		ctype := mime.TypeByExtension(filepath.Ext(name))
		if ctype == "" {
			ctype = "text/html; charset=utf-8"
		}
		w.Header().Set("Content-Type", ctype)
		_, _ = w.Write(out)
	}
}

// pageName maps a URL path to a file in the site: "/" and directories resolve
// to their index.html, extensionless paths try "<path>.html".
func pageName(site fs.FS, urlPath string) string {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		return "index.html"
	}
	if info, err := fs.Stat(site, name); err == nil {
		if info.IsDir() {
			return path.Join(name, "index.html")
		}
		return name
	}
	if path.Ext(name) == "" {
		if _, err := fs.Stat(site, name+".html"); err == nil {
			return name + ".html"
		}
	}
	return name
}

func isHTMLPage(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".html" || ext == ".htm"
}
