package item

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/usecase/settings"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

// ExportRow is the flattened, human-readable shape of an exported item.
type ExportRow struct {
	Number      string `json:"number" yaml:"number"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Status      string `json:"status" yaml:"status"`
	Priority    string `json:"priority" yaml:"priority"`
	EndDate     string `json:"endDate" yaml:"end_date"`
	Tags        string `json:"tags" yaml:"tags"`
	CreatedAt   string `json:"createdAt" yaml:"created_at"`
	UpdatedAt   string `json:"updatedAt" yaml:"updated_at"`
}

var csvHeader = []string{"number", "title", "description", "status", "priority", "endDate", "tags", "createdAt", "updatedAt"}

func toRows(items []domain.Item, labels settings.Typed) []ExportRow {
	rows := make([]ExportRow, 0, len(items))
	for _, it := range items {
		number := it.CustomNumber
		if number == "" {
			number = it.ID
		}
		rows = append(rows, ExportRow{
			Number:      number,
			Title:       it.Title,
			Description: it.Description,
			Status:      labels.StatusLabel(it.Status).Text,
			Priority:    labels.PriorityLabel(it.Priority).Text,
			EndDate:     it.EndDate.String(),
			Tags:        strings.Join(it.Tags, ", "),
			CreatedAt:   formatStamp(it.CreatedAt),
			UpdatedAt:   formatStamp(it.UpdatedAt),
		})
	}
	return rows
}

func formatStamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Export renders items as json (default), csv or yaml.
func Export(items []domain.Item, format string, labels settings.Typed) ([]byte, error) {
	rows := toRows(items, labels)
	switch strings.ToLower(format) {
	case "", FormatJSON:
		return json.MarshalIndent(rows, "", "  ")
	case FormatCSV:
		if len(rows) == 0 {
			return []byte{}, nil
		}
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(csvHeader); err != nil {
			return nil, err
		}
		for _, r := range rows {
			if err := w.Write([]string{r.Number, r.Title, r.Description, r.Status, r.Priority, r.EndDate, r.Tags, r.CreatedAt, r.UpdatedAt}); err != nil {
				return nil, err
			}
		}
		w.Flush()
		return buf.Bytes(), w.Error()
	case FormatYAML:
		return yaml.Marshal(rows)
	}
	return nil, domain.NewError(domain.ErrCodeValidation, "unsupported export format "+format)
}
