package api

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/dgallion1/notegen/internal/markup"
)

type classifiedLine struct {
	Line int    `json:"line"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// handleClassify reports how each line of the posted markup is read. The
// body is plain text or JSON {"text": "..."}.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var text string
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
			return
		}
		text = body.Text
	} else {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			jsonError(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
			return
		}
		text = string(data)
	}

	lines := []classifiedLine{}
	ignored := 0
	for i, line := range markup.Lines(text) {
		c, ok := markup.Classify(line)
		if !ok {
			ignored++
			continue
		}
		lines = append(lines, classifiedLine{Line: i + 1, Kind: c.Kind.String(), Text: c.Text})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"lines":   lines,
		"ignored": ignored,
	})
}
