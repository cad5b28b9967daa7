package publications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pubkeeper/internal/client/models"
)

func pub(id, title, content string, status models.Status, created time.Time) models.Publication {
	return models.Publication{ID: id, Title: title, Content: content, Status: status, CreatedAt: created}
}

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sampleItems() []models.Publication {
	return []models.Publication{
		pub("1", "Go generics", "notes on type params", models.StatusDraft, t0),
		pub("2", "Release plan", "ship the GO build", models.StatusPublished, t0.Add(time.Hour)),
		pub("3", "Groceries", "milk and eggs", models.StatusDraft, t0.Add(2*time.Hour)),
	}
}

func TestProject_EmptySearchIsNoOp(t *testing.T) {
	items := sampleItems()
	got := project(items, "", FilterAll, SortNewest)
	require.Len(t, got, len(items))
}

func TestProject_SearchMatchesTitleOrContentCaseInsensitive(t *testing.T) {
	got := project(sampleItems(), "go", FilterAll, SortNewest)
	ids := idsOf(got)
	// "go" hits "Go generics" (title) and "ship the GO build" (content).
	require.ElementsMatch(t, []string{"1", "2"}, ids)
}

func TestProject_SearchNoMatches(t *testing.T) {
	got := project(sampleItems(), "zzz", FilterAll, SortNewest)
	require.Empty(t, got)
}

func TestProject_StatusFilter(t *testing.T) {
	got := project(sampleItems(), "", FilterPublished, SortNewest)
	require.Equal(t, []string{"2"}, idsOf(got))

	got = project(sampleItems(), "", FilterDraft, SortNewest)
	require.ElementsMatch(t, []string{"1", "3"}, idsOf(got))

	got = project(sampleItems(), "", FilterAll, SortNewest)
	require.Len(t, got, 3)
}

func TestProject_SortNewestNonIncreasing(t *testing.T) {
	got := project(sampleItems(), "", FilterAll, SortNewest)
	for i := 1; i < len(got); i++ {
		require.False(t, got[i-1].CreatedAt.Before(got[i].CreatedAt))
	}
	require.Equal(t, []string{"3", "2", "1"}, idsOf(got))
}

func TestProject_SortOldestNonDecreasing(t *testing.T) {
	got := project(sampleItems(), "", FilterAll, SortOldest)
	require.Equal(t, []string{"1", "2", "3"}, idsOf(got))
}

func TestProject_SortTitleLexicographic(t *testing.T) {
	got := project(sampleItems(), "", FilterAll, SortTitle)
	require.Equal(t, []string{"1", "3", "2"}, idsOf(got))
}

func TestProject_StableOnEqualCreatedAt(t *testing.T) {
	items := []models.Publication{
		pub("a", "x", "", models.StatusDraft, t0),
		pub("b", "x", "", models.StatusDraft, t0),
		pub("c", "x", "", models.StatusDraft, t0),
	}
	got := project(items, "", FilterAll, SortNewest)
	require.Equal(t, []string{"a", "b", "c"}, idsOf(got), "backend order kept on ties")
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	project(items, "", FilterAll, SortTitle)
	require.Equal(t, []string{"1", "2", "3"}, idsOf(items))
}

func TestParseStatusFilter(t *testing.T) {
	for _, ok := range []string{"all", "draft", "published"} {
		_, err := ParseStatusFilter(ok)
		require.NoError(t, err)
	}
	_, err := ParseStatusFilter("archived")
	require.Error(t, err)
}

func TestParseSortKey(t *testing.T) {
	for _, ok := range []string{"newest", "oldest", "title"} {
		_, err := ParseSortKey(ok)
		require.NoError(t, err)
	}
	_, err := ParseSortKey("random")
	require.Error(t, err)
}

func idsOf(pubs []models.Publication) []string {
	ids := make([]string, 0, len(pubs))
	for _, p := range pubs {
		ids = append(ids, p.ID)
	}
	return ids
}
