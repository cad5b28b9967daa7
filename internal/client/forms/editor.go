package forms

import (
	"fmt"

	"pubkeeper/internal/client/models"
)

const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldStatus  = "status"
)

// EditorForm collects the editable fields of a publication. It does not
// submit itself: the list controller owns create/update so the result can be
// reconciled into list state.
type EditorForm struct {
	Form
	// EditingID is the identifier being edited, or "" when creating.
	EditingID string
}

func NewEditorForm() *EditorForm {
	f := &EditorForm{Form: newForm(FieldTitle, FieldContent, FieldStatus)}
	f.Set(FieldStatus, string(models.StatusDraft))
	return f
}

// LoadFrom prefills the form from an existing record for editing.
func (f *EditorForm) LoadFrom(p models.Publication) {
	f.Reset()
	f.Set(FieldTitle, p.Title)
	f.Set(FieldContent, p.Content)
	f.Set(FieldStatus, string(p.Status))
	f.EditingID = p.ID
}

func (f *EditorForm) Validate() {
	f.errors = make(map[string]string, len(f.fields))
	f.requireField(FieldTitle, "Title")
	f.requireField(FieldContent, "Content")
	if _, err := models.ParseStatus(f.Value(FieldStatus)); err != nil {
		f.errors[FieldStatus] = "Status must be draft or published"
	}
}

// Draft validates and converts the form into the request payload.
func (f *EditorForm) Draft() (models.Draft, error) {
	f.Validate()
	if !f.Valid() {
		return models.Draft{}, fmt.Errorf("fix the highlighted fields")
	}
	status, _ := models.ParseStatus(f.Value(FieldStatus))
	return models.Draft{
		Title:   f.Value(FieldTitle),
		Content: f.Value(FieldContent),
		Status:  status,
	}, nil
}

// Clear resets the form back to a fresh create state.
func (f *EditorForm) Clear() {
	f.Reset()
	f.Set(FieldStatus, string(models.StatusDraft))
	f.EditingID = ""
}
