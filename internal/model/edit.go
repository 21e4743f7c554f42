package model

import "time"

// EditAction names the operation an EditRecord describes.
type EditAction string

const (
	ActionImport          EditAction = "import"
	ActionEditAccount     EditAction = "edit_account"
	ActionEditMapping     EditAction = "edit_mapping"
	ActionAddAdjustment   EditAction = "add_adjustment"
	ActionResetAdjustment EditAction = "reset_adjustment"
	ActionAutoMap         EditAction = "auto_map"
)

// FieldChange is one field-level diff entry.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

// EditRecord is an append-only audit entry.
type EditRecord struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	UserID      string        `json:"userId"`
	Action      EditAction    `json:"action"`
	AccountID   string        `json:"accountId,omitempty"`
	Changes     []FieldChange `json:"changes"`
	Description string        `json:"description"`

	// Import carries the raw inputs of an import so the log can be replayed.
	Import *ImportPayload `json:"import,omitempty"`
}

// ImportPayload is the replayable body of an import record.
type ImportPayload struct {
	Accounts   []RawAccount   `json:"accounts"`
	Mappings   AccountMapping `json:"mappings,omitempty"`
	SourceFile string         `json:"sourceFile,omitempty"`
}

// Change returns the diff entry for field, if present.
func (r EditRecord) Change(field string) (FieldChange, bool) {
	for _, c := range r.Changes {
		if c.Field == field {
			return c, true
		}
	}
	return FieldChange{}, false
}
