package schedule

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reeltok/reeltok/internal/models"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// timetableFile is the on-disk document for import and export.
type timetableFile struct {
	Slots []models.ActivitySlot `json:"slots" yaml:"slots"`
}

// FormatForPath guesses the file format from its extension, defaulting to YAML.
func FormatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

func DecodeTimetable(data []byte, format string) ([]models.ActivitySlot, error) {
	var doc timetableFile
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse timetable JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse timetable YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported timetable format %q", format)
	}
	return doc.Slots, nil
}

func EncodeTimetable(slots []models.ActivitySlot, format string) ([]byte, error) {
	doc := timetableFile{Slots: slots}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unsupported timetable format %q", format)
	}
}
