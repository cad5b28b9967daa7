package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pubkeeper/internal/client/models"
)

// seededApp builds an App whose controller already holds n publications.
func seededApp(t *testing.T, n int, input string) (*App, *fakeAPI) {
	t.Helper()
	client := &fakeAPI{}
	ctx := context.Background()
	for i := 0; i < n; i++ {
		_, err := client.CreatePublication(ctx, models.Draft{
			Title:   "title " + string(rune('a'+i)),
			Content: "content",
			Status:  models.StatusDraft,
		})
		require.NoError(t, err)
	}
	a := newTestApp(t, client, input)
	require.NoError(t, a.controller.Load(ctx))
	return a, client
}

func TestAdd_CreatesPublication(t *testing.T) {
	muteOutput(t)

	// title, multiline content terminated by an empty line, status.
	input := "My title\nline one\nline two\n\npublished\n"
	a, client := seededApp(t, 0, input)

	require.NoError(t, a.Add(context.Background()))

	require.Len(t, client.pubs, 1)
	require.Equal(t, "My title", client.pubs[0].Title)
	require.Equal(t, "line one\nline two", client.pubs[0].Content)
	require.Equal(t, models.StatusPublished, client.pubs[0].Status)
	require.Equal(t, 1, a.controller.Len())
}

func TestAdd_EmptyTitleFailsBeforeNetwork(t *testing.T) {
	muteOutput(t)

	input := "\nsome content\n\n\n"
	a, client := seededApp(t, 0, input)

	require.Error(t, a.Add(context.Background()))
	require.Empty(t, client.pubs)
	require.Equal(t, 0, a.controller.Len())
}

func TestEdit_KeepsUnchangedFields(t *testing.T) {
	muteOutput(t)

	// New title, empty content (keep current), empty status (keep current).
	input := "renamed\n\n\n"
	a, client := seededApp(t, 1, input)
	id := client.pubs[0].ID

	require.NoError(t, a.Edit(context.Background(), id))

	got, ok := a.controller.Get(id)
	require.True(t, ok)
	require.Equal(t, "renamed", got.Title)
	require.Equal(t, "content", got.Content)
	require.Equal(t, models.StatusDraft, got.Status)
}

func TestEdit_UnknownIDIsNoop(t *testing.T) {
	out := muteOutput(t)

	a, _ := seededApp(t, 1, "")
	require.NoError(t, a.Edit(context.Background(), "nope"))
	require.Contains(t, *out, "No publication with id nope")
}

func TestDeleteAndUndo(t *testing.T) {
	muteOutput(t)

	a, client := seededApp(t, 1, "")
	id := client.pubs[0].ID

	require.NoError(t, a.Delete(context.Background(), id))
	require.Equal(t, 0, a.controller.Len())
	require.Empty(t, client.pubs)

	require.NoError(t, a.Undo(context.Background()))
	require.Equal(t, 1, a.controller.Len())
	// Restored under a fresh server-assigned identifier.
	require.Len(t, client.pubs, 1)
	require.NotEqual(t, id, client.pubs[0].ID)
}

func TestUndo_EmptyStack(t *testing.T) {
	out := muteOutput(t)

	a, _ := seededApp(t, 0, "")
	require.NoError(t, a.Undo(context.Background()))
	require.Contains(t, *out, "Nothing to undo")
}

func TestSelectAndBulkDelete(t *testing.T) {
	muteOutput(t)

	a, client := seededApp(t, 3, "")
	ids := []string{client.pubs[0].ID, client.pubs[1].ID}

	require.NoError(t, a.Select(context.Background(), ids[0]))
	require.NoError(t, a.Select(context.Background(), ids[1]))
	require.NoError(t, a.BulkDelete(context.Background()))

	require.Equal(t, 1, a.controller.Len())
	require.Empty(t, a.controller.Selected())
}

func TestBulkDelete_NothingSelected(t *testing.T) {
	out := muteOutput(t)

	a, client := seededApp(t, 2, "")
	require.NoError(t, a.BulkDelete(context.Background()))
	require.Len(t, client.pubs, 2)
	require.Contains(t, *out, "Nothing selected")
}

func TestStatusCommand(t *testing.T) {
	muteOutput(t)

	a, client := seededApp(t, 1, "")
	id := client.pubs[0].ID

	require.NoError(t, a.Status(context.Background(), id, "published"))
	got, ok := a.controller.Get(id)
	require.True(t, ok)
	require.Equal(t, models.StatusPublished, got.Status)
}

func TestStatusCommand_BadValue(t *testing.T) {
	out := muteOutput(t)

	a, client := seededApp(t, 1, "")
	require.NoError(t, a.Status(context.Background(), client.pubs[0].ID, "archived"))
	require.Contains(t, *out, "Status must be draft or published")
	require.Equal(t, models.StatusDraft, client.pubs[0].Status)
}

func TestSearchFilterSortNarrowList(t *testing.T) {
	muteOutput(t)

	a, client := seededApp(t, 3, "")
	require.NoError(t, a.Status(context.Background(), client.pubs[0].ID, "published"))

	require.NoError(t, a.Filter(context.Background(), "published"))
	require.Len(t, a.controller.Projection(), 1)

	require.NoError(t, a.Filter(context.Background(), "all"))
	require.NoError(t, a.Search(context.Background(), "title b"))
	require.Len(t, a.controller.Projection(), 1)

	require.NoError(t, a.Search(context.Background(), ""))
	require.NoError(t, a.Sort(context.Background(), "title"))
	proj := a.controller.Projection()
	require.Len(t, proj, 3)
	require.Equal(t, "title a", proj[0].Title)
}

func TestFilter_BadValue(t *testing.T) {
	out := muteOutput(t)

	a, _ := seededApp(t, 1, "")
	require.NoError(t, a.Filter(context.Background(), "archived"))
	require.Contains(t, *out, "Filter must be all, draft or published")
}

func TestShow_PrintsRecord(t *testing.T) {
	out := muteOutput(t)

	a, client := seededApp(t, 1, "")
	require.NoError(t, a.Show(context.Background(), client.pubs[0].ID))
	require.Contains(t, *out, "Title:  title a")
}
