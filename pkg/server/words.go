package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wordwall/pkg/buildinfo"
	"github.com/matzehuels/wordwall/pkg/errors"
	vocabio "github.com/matzehuels/wordwall/pkg/io"
	"github.com/matzehuels/wordwall/pkg/vocab"
)

type wordRequest struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

type importResponse struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}

type resetResponse struct {
	Reset int `json:"reset"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, vocab.Search(s.store.All(), r.URL.Query().Get("q")))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	word, err := s.store.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, word)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := errors.ValidateWord(req.Word); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Translation) == "" && s.opts.Translator != nil {
		tr, err := s.opts.Translator.Suggest(r.Context(), req.Word)
		if err != nil {
			s.writeError(w, err)
			return
		}
		req.Translation = tr
	}
	word, err := s.store.Add(r.Context(), req.Word, req.Translation)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, word)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	word, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), req.Word, req.Translation)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, word)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	word, err := s.store.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, word)
}

func (s *Server) handleMastered(mastered bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		word, _, err := s.store.SetMastered(r.Context(), chi.URLParam(r, "id"), mastered)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, word)
	}
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.ResetMastered(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resetResponse{Reset: n})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Stats())
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if s.opts.Translator == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "no translation provider configured"))
		return
	}
	word := r.URL.Query().Get("word")
	tr, err := s.opts.Translator.Suggest(r.Context(), word)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, wordRequest{Word: word, Translation: tr})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = vocabio.FormatJSON
	}
	var buf bytes.Buffer
	if err := vocabio.Write(&buf, s.store.All(), format); err != nil {
		s.writeError(w, err)
		return
	}
	ct := "application/json"
	if format == vocabio.FormatYAML {
		ct = "application/yaml"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", vocabio.DefaultExportName(time.Now(), format)))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	words, err := readWords(body, r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	n := len(words)
	if r.URL.Query().Get("merge") == "true" {
		n, err = s.store.Merge(r.Context(), words)
	} else {
		err = s.store.ReplaceAll(r.Context(), words)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, importResponse{Imported: n, Total: s.store.Len()})
}

func readWords(r io.Reader, format string) ([]vocab.Word, error) {
	switch format {
	case "", vocabio.FormatJSON:
		return vocabio.ReadJSON(r)
	case vocabio.FormatYAML, "yml":
		return vocabio.ReadYAML(r)
	case vocabio.FormatText, "text":
		return vocabio.ReadText(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported import format %q", format)
	}
}
