package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// portfolioSections is the allowlist of section names served by GET /api/sections/{name}.
var portfolioSections = map[string]bool{
	"about":     true,
	"hero":      true,
	"projects":  true,
	"techstack": true,
	"footer":    true,
}

// SectionHandler serves the portfolio's static sections as Markdown documents.
type SectionHandler struct {
	contentDir string
}

// NewSectionHandler creates a SectionHandler reading <name>.md files from contentDir.
func NewSectionHandler(contentDir string) *SectionHandler {
	return &SectionHandler{contentDir: contentDir}
}

// Section handles GET /api/sections/{name}.
// Unknown names are 404 without touching the filesystem, so the name can never
// address a file outside contentDir.
func (h *SectionHandler) Section(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !portfolioSections[name] {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	content, err := os.ReadFile(filepath.Join(h.contentDir, name+".md"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "failed to read section", "section", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(content)
}
