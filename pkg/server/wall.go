package server

import (
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/wordwall/pkg/errors"
	"github.com/matzehuels/wordwall/pkg/pipeline"
)

const qrSize = 256

// wallOptions applies the canvas, seed and style query parameters on top
// of the server defaults.
func (s *Server) wallOptions(r *http.Request, format string) (pipeline.Options, error) {
	opts := s.opts.Pipeline
	opts.Formats = []string{format}

	var err error
	if opts.Width, err = queryFloat(r, "width", opts.Width); err != nil {
		return opts, err
	}
	if opts.Height, err = queryFloat(r, "height", opts.Height); err != nil {
		return opts, err
	}
	if opts.Seed, err = queryUint(r, "seed", opts.Seed); err != nil {
		return opts, err
	}
	if style := r.URL.Query().Get("style"); style != "" {
		if err := pipeline.ValidateStyle(style); err != nil {
			return opts, err
		}
		opts.Style = style
		opts.ThemePath = ""
		opts.Theme = nil
	}
	return opts, nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, format string) {
	opts, err := s.wallOptions(r, format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), s.store.All(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleWallSVG(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pipeline.FormatSVG)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pipeline.FormatJSON)
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSuffix(s.opts.PublicURL, "/")
	if url == "" {
		url = "http://" + r.Host
	}
	png, err := qrcode.Encode(url+"/wall.svg", qrcode.Medium, qrSize)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode QR code"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
