package formatter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/kataras/gads-extractor/pkg/extractor"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteJSON encodes snap as a two-space indented JSON document.
func WriteJSON(w io.Writer, snap *extractor.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// WriteFile writes the JSON document to path, creating parent directories as needed.
func WriteFile(path string, snap *extractor.Snapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WriteJSON(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
