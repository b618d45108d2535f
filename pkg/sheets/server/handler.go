package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/websocket"

	"github.com/dhruv-33/google-sheets/pkg/sheets"
)

// Export formats accepted by /export.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

var contentTypes = map[string]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatJSON: "application/json",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// NewHandler returns the HTTP routes of the editor back-end:
//
//	/ws      websocket carrying commands and state frames
//	/export  ?format=csv|json|xlsx[&sheet=name]
//	/health  liveness probe
func NewHandler(h *Hub) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", h.serveWS)
	mux.HandleFunc("GET /export", h.serveExport)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	return mux
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	client := newClient(h, conn)
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}
	go client.writePump()
	go client.readPump()
}

func (h *Hub) serveExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatCSV
	}
	contentType, ok := contentTypes[format]
	if !ok {
		http.Error(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
		return
	}
	sheet := r.URL.Query().Get("sheet")

	var (
		buf      bytes.Buffer
		filename string
		err      error
	)
	doErr := h.Do(r.Context(), func(wb *sheets.Workbook) {
		name := sheet
		if name == "" {
			name = wb.Active()
		}
		filename = name + "." + format
		switch format {
		case FormatCSV:
			err = wb.ExportCSV(&buf, name)
		case FormatJSON:
			err = wb.ExportJSON(&buf, name)
		case FormatXLSX:
			filename = "workbook.xlsx"
			err = wb.ExportXLSX(&buf)
		}
	})
	if doErr != nil {
		http.Error(w, doErr.Error(), http.StatusServiceUnavailable)
		return
	}
	if errors.Is(err, sheets.ErrSheetNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("format", format).Error("Export failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(buf.Bytes()))
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(buf.Bytes())
}
