package prereq

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/use-agent/clubfeed/models"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Write.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Entry is one course and its prerequisites.
type Entry struct {
	Course        string   `json:"course" yaml:"course"`
	Prerequisites []string `json:"prerequisites" yaml:"prerequisites"`
}

// Write encodes v as JSON or YAML. Map keys come out sorted in both.
func Write(w io.Writer, v any, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return models.NewScrapeError(models.ErrCodeInvalidInput, "unknown output format "+format, nil)
	}
}
