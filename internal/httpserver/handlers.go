package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"tbo-go/internal/dispatch"
	"tbo-go/internal/tbo"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dispatchHandler answers every decodable request with 200 and an envelope;
// failures are reported inside it, as the extension expects.
func dispatchHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusRequestEntityTooLarge, dispatch.Failure(fmt.Errorf("reading request body: %w", err)))
			return
		}
		writeJSON(w, http.StatusOK, d.Dispatcher.Handle(r.Context(), body))
	}
}

func attachment(w http.ResponseWriter, contentType, name string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

func exportJSON(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := d.Store.ExportToJSON(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, dispatch.Failure(err))
			return
		}
		attachment(w, "application/json", tbo.ExportFileName("json", d.Clock.Now()))
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(snapshot)
	}
}

func exportCSV(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Buffer so a failure can still be reported with a proper status.
		var buf bytes.Buffer
		if err := d.Store.ExportCSV(r.Context(), &buf); err != nil {
			writeJSON(w, http.StatusInternalServerError, dispatch.Failure(err))
			return
		}
		attachment(w, "text/csv; charset=utf-8", tbo.ExportFileName("csv", d.Clock.Now()))
		_, _ = buf.WriteTo(w)
	}
}
