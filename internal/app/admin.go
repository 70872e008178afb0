package app

import (
	"encoding/json"
	"fmt"

	"pastfool/internal/domain"
)

// ImportUnsupportedMessage is the only response the import action ever gives.
const ImportUnsupportedMessage = "Import is not supported without a backend. The bundled question bank was not changed."

// Admin renders the question bank for export. Import is intentionally inert.
type Admin struct {
	bank    []domain.Question
	enabled bool
}

func NewAdmin(bank []domain.Question, enabled bool) *Admin {
	return &Admin{bank: bank, enabled: enabled}
}

// Enabled reports whether the panel is available.
func (a *Admin) Enabled() bool {
	return a.enabled
}

// ExportDocument formats the bank as an indented JSON document.
func (a *Admin) ExportDocument() ([]byte, error) {
	if !a.enabled {
		return nil, domain.ErrAdminDisabled
	}
	return ExportDocument(a.bank)
}

// ImportDocument does not touch the bank; it only reports that import is unsupported.
func (a *Admin) ImportDocument(_ string) (string, error) {
	if !a.enabled {
		return "", domain.ErrAdminDisabled
	}
	return ImportUnsupportedMessage, nil
}

// Filename is the name the exported document is downloaded as.
func (a *Admin) Filename() string {
	return domain.ExportFilename
}

// ExportDocument formats questions as export records, dropping round tags.
func ExportDocument(bank []domain.Question) ([]byte, error) {
	records := make([]domain.ExportRecord, 0, len(bank))
	for _, q := range bank {
		records = append(records, domain.ExportRecord{
			ID:        q.ID,
			Statement: q.Statement,
			IsTrue:    q.IsTrue,
			Blurb:     q.Blurb,
			Source:    q.Source,
		})
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}
