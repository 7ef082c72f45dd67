package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/labelforge/labelforge/batch"
	"github.com/labelforge/labelforge/export"
	"github.com/labelforge/labelforge/label"
	"github.com/labelforge/labelforge/store"
)

type expandRequest struct {
	Start      string `json:"start"`
	NamePrefix string `json:"name_prefix"`
	Price      string `json:"price"`
	Count      int    `json:"count"`
}

type itemPatch struct {
	Data  *string `json:"data"`
	Name  *string `json:"name"`
	Price *string `json:"price"`
}

type exportRequest struct {
	Format    string `json:"format"`
	Path      string `json:"path"`
	Symbology string `json:"symbology"`
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.Store.ListItems()
	if err != nil {
		s.Log.Error("list items", "error", err)
		writeError(w, http.StatusInternalServerError, "list items failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// handleAddItems expands a starting identifier into count items and appends
// them to the stored batch.
func (s *Server) handleAddItems(w http.ResponseWriter, r *http.Request) {
	var req expandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Count < 1 || req.Count > batch.MaxCount {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("count must be between 1 and %d, got %d", batch.MaxCount, req.Count))
		return
	}

	price := label.FormatPrice(req.Price, s.Config.Currency)
	items, err := batch.Expand(req.Start, req.NamePrefix, price, req.Count)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.Store.AddItems(items); err != nil {
		s.Log.Error("add items", "error", err)
		writeError(w, http.StatusInternalServerError, "add items failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"added": len(items),
		"items": items,
	})
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var patch itemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := s.Store.GetItem(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.Log.Error("get item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "get item failed")
		return
	}

	if patch.Data != nil {
		item.Data = *patch.Data
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Price != nil {
		item.Price = label.FormatPrice(*patch.Price, s.Config.Currency)
	}

	if err := s.Store.UpdateItem(item); err != nil {
		s.Log.Error("update item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "update item failed")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	if err := s.Store.RemoveItems(id); err != nil {
		s.Log.Error("remove item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "remove item failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": id})
}

func (s *Server) handleClearItems(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.ClearItems(); err != nil {
		s.Log.Error("clear items", "error", err)
		writeError(w, http.StatusInternalServerError, "clear items failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handleExport runs the same pipeline as `labelforge batch export` against
// the stored batch.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	symStr := req.Symbology
	if symStr == "" {
		symStr = s.Config.DefaultSymbology
	}
	sym, err := label.ParseSymbology(symStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.Store.ListItems()
	if err != nil {
		s.Log.Error("list items", "error", err)
		writeError(w, http.StatusInternalServerError, "list items failed")
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusBadRequest, "batch is empty")
		return
	}

	paths, err := export.Batch(items, export.Options{
		Symbology: sym,
		Render:    s.renderOptions(),
		Layout:    s.Layout,
		Format:    format,
		Path:      req.Path,
	})
	if err != nil {
		var verr *label.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.Log.Error("export batch", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.Log.Info("batch exported", "format", format, "items", len(items), "files", len(paths))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exported": len(items),
		"paths":    paths,
	})
}
