package api

import (
	"bytes"
	"errors"
	"image/png"
	"net/http"
	"strconv"

	"github.com/labelforge/labelforge/label"
)

func (s *Server) handleSymbologies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]label.Symbology{"symbologies": label.Supported()})
}

// handleLabelPNG renders a single label on the fly and serves it as a PNG.
// Query parameters: data (required), symbology, name, price, logo.
func (s *Server) handleLabelPNG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	symStr := q.Get("symbology")
	if symStr == "" {
		symStr = s.Config.DefaultSymbology
	}
	sym, err := label.ParseSymbology(symStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	includeLogo := false
	if v := q.Get("logo"); v != "" {
		includeLogo, _ = strconv.ParseBool(v)
	}

	spec := label.Spec{
		Data:        q.Get("data"),
		Symbology:   sym,
		ProductName: q.Get("name"),
		Price:       q.Get("price"),
		IncludeLogo: includeLogo,
	}

	img, err := label.Render(spec, s.renderOptions())
	if err != nil {
		var verr *label.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		s.Log.Error("render label", "data", spec.Data, "error", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		s.Log.Error("encode label png", "error", err)
		writeError(w, http.StatusInternalServerError, "encode failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
