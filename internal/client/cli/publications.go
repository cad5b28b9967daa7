package cli

import (
	"context"
	"fmt"
	"os"

	"pubkeeper/internal/client/forms"
	"pubkeeper/internal/client/models"
	"pubkeeper/internal/client/publications"
)

// List prints the current projection: the filtered, sorted view with
// selection markers. The list is fetched lazily on login, so this renders
// local state only.
func (a *App) List(ctx context.Context) error {
	proj := a.controller.Projection()
	if len(proj) == 0 {
		printlnFn("No publications found")
		return nil
	}

	for _, p := range proj {
		marker := " "
		if a.controller.IsSelected(p.ID) {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("[%s] %s  %-9s  %s  (created %s)",
			marker, p.ID, p.Status, p.Title, p.CreatedAt.Format("2006-01-02 15:04")))
	}

	if n := len(a.controller.Selected()); n > 0 {
		printlnFn(fmt.Sprintf("%d selected", n))
	}
	return nil
}

// Add collects a new publication through the editor form and creates it.
func (a *App) Add(ctx context.Context) error {
	form := forms.NewEditorForm()
	if err := a.fillEditor(form); err != nil {
		return err
	}

	draft, err := form.Draft()
	if err != nil {
		printFieldErrors(form.Errors())
		return err
	}

	if _, err := a.controller.Create(ctx, draft); err != nil {
		return err
	}
	form.Clear()
	return nil
}

// Edit prefills the editor form from an existing record and updates it.
// Pressing Enter on a prompt keeps the current value.
func (a *App) Edit(ctx context.Context, id string) error {
	current, ok := a.controller.Get(id)
	if !ok {
		printlnFn("No publication with id", id)
		return nil
	}

	form := forms.NewEditorForm()
	form.LoadFrom(current)
	if err := a.fillEditorKeeping(form, current); err != nil {
		return err
	}

	draft, err := form.Draft()
	if err != nil {
		printFieldErrors(form.Errors())
		return err
	}

	return a.controller.Update(ctx, id, draft)
}

// Show prints one record in full.
func (a *App) Show(ctx context.Context, id string) error {
	p, ok := a.controller.Get(id)
	if !ok {
		printlnFn("No publication with id", id)
		return nil
	}

	printlnFn("Title:  " + p.Title)
	printlnFn("Status: " + string(p.Status))
	printlnFn("Created: " + p.CreatedAt.Format("2006-01-02 15:04:05"))
	printlnFn("Updated: " + p.UpdatedAt.Format("2006-01-02 15:04:05"))
	printlnFn("")
	printlnFn(p.Content)
	return nil
}

// Delete removes one record after backend confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	return a.controller.Delete(ctx, id)
}

// Select toggles one id in the selection set.
func (a *App) Select(ctx context.Context, id string) error {
	a.controller.ToggleSelect(id)
	printlnFn(fmt.Sprintf("%d selected", len(a.controller.Selected())))
	return nil
}

// SelectAll selects the whole projection, or clears an already-full selection.
func (a *App) SelectAll(ctx context.Context) error {
	a.controller.ToggleSelectAll()
	printlnFn(fmt.Sprintf("%d selected", len(a.controller.Selected())))
	return nil
}

// ClearSelection unchecks everything.
func (a *App) ClearSelection(ctx context.Context) error {
	a.controller.ClearSelection()
	return nil
}

// BulkDelete deletes the current selection.
func (a *App) BulkDelete(ctx context.Context) error {
	if len(a.controller.Selected()) == 0 {
		printlnFn("Nothing selected")
		return nil
	}
	return a.controller.BulkDeleteSelected(ctx)
}

// Undo re-creates the most recently deleted publication (with a new id).
func (a *App) Undo(ctx context.Context) error {
	if !a.controller.CanUndo() {
		printlnFn("Nothing to undo")
		return nil
	}
	_, err := a.controller.Undo(ctx)
	return err
}

// Status changes one record's status.
func (a *App) Status(ctx context.Context, id, status string) error {
	parsed, err := models.ParseStatus(status)
	if err != nil {
		printlnFn("Status must be draft or published")
		return nil
	}
	return a.controller.ChangeStatus(ctx, id, parsed)
}

// Search sets the projection's search text; empty text clears it.
func (a *App) Search(ctx context.Context, text string) error {
	a.controller.SetSearch(text)
	return a.List(ctx)
}

// Filter sets the projection's status filter.
func (a *App) Filter(ctx context.Context, filter string) error {
	parsed, err := publications.ParseStatusFilter(filter)
	if err != nil {
		printlnFn("Filter must be all, draft or published")
		return nil
	}
	a.controller.SetStatusFilter(parsed)
	return a.List(ctx)
}

// Sort sets the projection's sort key.
func (a *App) Sort(ctx context.Context, key string) error {
	parsed, err := publications.ParseSortKey(key)
	if err != nil {
		printlnFn("Sort must be newest, oldest or title")
		return nil
	}
	a.controller.SetSort(parsed)
	return a.List(ctx)
}

// fillEditor prompts for all editor fields of a new publication.
func (a *App) fillEditor(form *forms.EditorForm) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	form.Set(forms.FieldTitle, title)

	content, err := getMultiline(a.reader, "Enter content:", os.Stdout)
	if err != nil {
		return err
	}
	form.Set(forms.FieldContent, content)

	status, err := getSimpleText(a.reader, "Enter status (draft/published) [draft]", os.Stdout)
	if err != nil {
		return err
	}
	if status != "" {
		form.Set(forms.FieldStatus, status)
	}
	return nil
}

// fillEditorKeeping prompts like fillEditor but keeps the current value of
// any field left empty.
func (a *App) fillEditorKeeping(form *forms.EditorForm, current models.Publication) error {
	title, err := getSimpleText(a.reader, fmt.Sprintf("Enter title [%s]", current.Title), os.Stdout)
	if err != nil {
		return err
	}
	if title != "" {
		form.Set(forms.FieldTitle, title)
	}

	content, err := getMultiline(a.reader, "Enter content (empty keeps current):", os.Stdout)
	if err != nil {
		return err
	}
	if content != "" {
		form.Set(forms.FieldContent, content)
	}

	status, err := getSimpleText(a.reader, fmt.Sprintf("Enter status (draft/published) [%s]", current.Status), os.Stdout)
	if err != nil {
		return err
	}
	if status != "" {
		form.Set(forms.FieldStatus, status)
	}
	return nil
}
