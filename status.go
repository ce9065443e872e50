package docindex

import (
	json "github.com/goccy/go-json"
)

// StatusBanner is the small JSON document the server prints to stdout
// once it has bound its FIFOs and is ready to accept requests. Tools
// that launch dserver as a subprocess can parse a single line instead
// of scraping free-form startup text.
type StatusBanner struct {
	DocumentFolder string `json:"document_folder"`
	CacheType      string `json:"cache_type"`
	CacheSize      int    `json:"cache_size"`
	ServerFIFO     string `json:"server_fifo"`
}

// Encode renders the banner as a single compact JSON line, newline
// included.
func (b StatusBanner) Encode() ([]byte, error) {
	buf, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return append(buf, '\n'), nil
}
