// Package publications implements the list controller: the single
// authoritative source of truth for the user's publication set, the derived
// filtered/sorted projection the UI renders, the multi-select set, and the
// undo stack of deleted records.
//
// Every mutation follows the same shape: validate locally, issue the request,
// and on resolution apply one atomic state transition. Nothing is applied
// optimistically before backend confirmation. Mutations targeting the same
// identifier are serialized through a per-id lock, so two in-flight requests
// on one record can never both apply.
package publications

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"pubkeeper/internal/client/api"
	"pubkeeper/internal/client/models"
	"pubkeeper/internal/common"
	"pubkeeper/internal/logging"
)

// bulkDeleteConcurrency bounds the parallel delete requests issued by
// BulkDelete.
const bulkDeleteConcurrency = 4

type Controller struct {
	client api.Client
	log    logging.Logger
	notify *Notifier

	mu       sync.Mutex
	items    []models.Publication
	search   string
	filter   StatusFilter
	sort     SortKey
	selected map[string]struct{}
	undo     []models.Publication
	rev      uint64
	cache    *projCache

	lockMu  sync.Mutex
	idLocks map[string]*sync.Mutex
}

func NewController(client api.Client, notify *Notifier, log logging.Logger) *Controller {
	return &Controller{
		client:   client,
		log:      log.With("component", "publications"),
		notify:   notify,
		filter:   FilterAll,
		sort:     SortNewest,
		selected: make(map[string]struct{}),
		idLocks:  make(map[string]*sync.Mutex),
	}
}

// idLock returns the mutex serializing mutations for one identifier.
func (c *Controller) idLock(id string) *sync.Mutex {
	c.lockMu.Lock()
	defer c.lockMu.Unlock()
	l, ok := c.idLocks[id]
	if !ok {
		l = &sync.Mutex{}
		c.idLocks[id] = l
	}
	return l
}

// Load fetches the full set from the backend and replaces list state
// wholesale. On failure the previous state is kept untouched.
func (c *Controller) Load(ctx context.Context) error {
	pubs, err := c.client.ListPublications(ctx)
	if err != nil {
		c.log.Error(ctx, "load failed", "err", err)
		c.notify.Error(api.Message(err, "Failed to load publications"))
		return err
	}

	c.mu.Lock()
	c.items = pubs
	c.pruneSelectionLocked()
	c.rev++
	c.mu.Unlock()

	c.log.Debug(ctx, "loaded publications", "count", len(pubs))
	return nil
}

// Create validates locally and, when clean, sends the draft to the backend.
// The server-assigned record is inserted at the head of list state.
func (c *Controller) Create(ctx context.Context, draft models.Draft) (*models.Publication, error) {
	if err := validateDraft(draft); err != nil {
		c.notify.Error("Please fill all fields")
		return nil, err
	}

	pub, err := c.client.CreatePublication(ctx, draft)
	if err != nil {
		c.log.Error(ctx, "create failed", "err", err)
		c.notify.Error(api.Message(err, "Failed to add publication"))
		return nil, err
	}

	c.mu.Lock()
	c.items = append([]models.Publication{*pub}, c.items...)
	c.rev++
	c.mu.Unlock()

	c.notify.Success("Publication added successfully")
	return pub, nil
}

// Update replaces the editable fields of an existing record, preserving its
// identifier and created timestamp. Absent ids are a silent no-op.
func (c *Controller) Update(ctx context.Context, id string, draft models.Draft) error {
	if err := validateDraft(draft); err != nil {
		c.notify.Error("Please fill all fields")
		return err
	}
	if _, ok := c.Get(id); !ok {
		return nil
	}

	lock := c.idLock(id)
	lock.Lock()
	defer lock.Unlock()

	pub, err := c.client.UpdatePublication(ctx, id, draft)
	if err != nil {
		c.log.Error(ctx, "update failed", "id", id, "err", err)
		c.notify.Error(api.Message(err, "Operation failed"))
		return err
	}

	c.applyUpdate(id, *pub)
	c.notify.Success("Publication updated successfully")
	return nil
}

// Delete removes one record. The entry stays in list state until the backend
// confirms; on success its snapshot is pushed onto the undo stack.
func (c *Controller) Delete(ctx context.Context, id string) error {
	lock := c.idLock(id)
	lock.Lock()
	defer lock.Unlock()

	// Snapshot under the lock: a concurrent update that won the lock first
	// must not leave pre-update content on the undo stack.
	snapshot, ok := c.Get(id)
	if !ok {
		return nil
	}

	if err := c.client.DeletePublication(ctx, id); err != nil {
		c.log.Error(ctx, "delete failed", "id", id, "err", err)
		c.notify.Error(api.Message(err, "Failed to delete publication"))
		return err
	}

	c.mu.Lock()
	c.removeLocked(id)
	c.undo = append(c.undo, snapshot)
	c.rev++
	c.mu.Unlock()

	c.notify.Success("Publication deleted successfully")
	return nil
}

// BulkDelete issues one delete per id concurrently and joins on all of them,
// then applies the success subset in a single state transition: successes
// leave list state and selection and join the undo stack, failures stay put.
// A non-nil error reports the failure count.
func (c *Controller) BulkDelete(ctx context.Context, ids []string) error {
	// Snapshot up front; ids not present are skipped outright.
	snapshots := make([]models.Publication, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.Get(id); ok {
			snapshots = append(snapshots, p)
		}
	}
	if len(snapshots) == 0 {
		return nil
	}

	succeeded := make([]bool, len(snapshots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkDeleteConcurrency)
	for i, snap := range snapshots {
		i, snap := i, snap
		g.Go(func() error {
			lock := c.idLock(snap.ID)
			lock.Lock()
			defer lock.Unlock()

			// Re-read under the lock so the undo snapshot reflects any
			// mutation that completed before ours.
			current, ok := c.Get(snap.ID)
			if !ok {
				return nil
			}
			if err := c.client.DeletePublication(gctx, snap.ID); err != nil {
				c.log.Error(gctx, "bulk delete failed for record", "id", snap.ID, "err", err)
				return nil // keep the group going; failure is recorded per id
			}
			snapshots[i] = current
			succeeded[i] = true
			return nil
		})
	}
	_ = g.Wait()

	var removed, failed int
	c.mu.Lock()
	for i, snap := range snapshots {
		if !succeeded[i] {
			failed++
			continue
		}
		c.removeLocked(snap.ID)
		c.undo = append(c.undo, snap)
		removed++
	}
	if removed > 0 {
		c.rev++
	}
	c.mu.Unlock()

	if removed > 0 {
		c.notify.Success(fmt.Sprintf("%d publications deleted successfully", removed))
	}
	if failed > 0 {
		c.notify.Error(fmt.Sprintf("Failed to delete %d publications", failed))
		return fmt.Errorf("%d of %d deletes failed", failed, len(snapshots))
	}
	return nil
}

// BulkDeleteSelected deletes the current selection.
func (c *Controller) BulkDeleteSelected(ctx context.Context) error {
	return c.BulkDelete(ctx, c.Selected())
}

// Undo re-creates the most recently deleted record. The backend assigns a
// new identifier: undo is a re-creation, not a restoration. If the create
// fails the popped snapshot is lost; the failure is surfaced to the user.
func (c *Controller) Undo(ctx context.Context) (*models.Publication, error) {
	c.mu.Lock()
	if len(c.undo) == 0 {
		c.mu.Unlock()
		return nil, common.ErrNothingToUndo
	}
	snapshot := c.undo[len(c.undo)-1]
	c.undo = c.undo[:len(c.undo)-1]
	c.mu.Unlock()

	pub, err := c.client.CreatePublication(ctx, models.DraftOf(snapshot))
	if err != nil {
		c.log.Error(ctx, "undo failed", "title", snapshot.Title, "err", err)
		c.notify.Error("Failed to restore publication")
		return nil, err
	}

	c.mu.Lock()
	c.items = append([]models.Publication{*pub}, c.items...)
	c.rev++
	c.mu.Unlock()

	c.notify.Success("Publication restored")
	return pub, nil
}

// ChangeStatus re-submits the full record with only the status changed.
// Absent ids are a silent no-op.
func (c *Controller) ChangeStatus(ctx context.Context, id string, status models.Status) error {
	current, ok := c.Get(id)
	if !ok {
		return nil
	}

	draft := models.DraftOf(current)
	draft.Status = status

	lock := c.idLock(id)
	lock.Lock()
	defer lock.Unlock()

	pub, err := c.client.UpdatePublication(ctx, id, draft)
	if err != nil {
		c.log.Error(ctx, "status change failed", "id", id, "err", err)
		c.notify.Error(api.Message(err, "Failed to update status"))
		return err
	}

	c.applyUpdate(id, *pub)
	c.notify.Success(fmt.Sprintf("Status updated to %s", status))
	return nil
}

// SetSearch updates the search text. Pure local state; always succeeds.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = text
}

// SetStatusFilter updates the status filter.
func (c *Controller) SetStatusFilter(filter StatusFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = filter
}

// SetSort updates the sort key.
func (c *Controller) SetSort(key SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = key
}

// Projection returns the derived filtered/sorted view. The result is
// memoized until list state or any view input changes, and must be treated
// as read-only by callers.
func (c *Controller) Projection() []models.Publication {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionLocked()
}

func (c *Controller) projectionLocked() []models.Publication {
	if cached := c.cache; cached != nil &&
		cached.rev == c.rev && cached.search == c.search &&
		cached.filter == c.filter && cached.sort == c.sort {
		return cached.result
	}

	result := project(c.items, c.search, c.filter, c.sort)
	c.cache = &projCache{
		rev:    c.rev,
		search: c.search,
		filter: c.filter,
		sort:   c.sort,
		result: result,
	}
	return result
}

// ToggleSelect flips one id in the selection set. Ids outside the current
// projection are ignored.
func (c *Controller) ToggleSelect(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	inProjection := false
	for _, p := range c.projectionLocked() {
		if p.ID == id {
			inProjection = true
			break
		}
	}
	if !inProjection {
		return
	}

	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
}

// ToggleSelectAll selects every record in the current projection, or clears
// the selection when everything is already selected.
func (c *Controller) ToggleSelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	proj := c.projectionLocked()
	if len(c.selected) == len(proj) {
		c.selected = make(map[string]struct{})
		return
	}
	c.selected = make(map[string]struct{}, len(proj))
	for _, p := range proj {
		c.selected[p.ID] = struct{}{}
	}
}

// ClearSelection empties the selection set.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = make(map[string]struct{})
}

// Selected returns the selected identifiers in list-state order.
func (c *Controller) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.selected))
	for _, p := range c.items {
		if _, ok := c.selected[p.ID]; ok {
			out = append(out, p.ID)
		}
	}
	return out
}

// IsSelected reports whether an id is currently checked.
func (c *Controller) IsSelected(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.selected[id]
	return ok
}

// Get returns the record for id from the authoritative list state.
func (c *Controller) Get(id string) (models.Publication, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.items {
		if p.ID == id {
			return p, true
		}
	}
	return models.Publication{}, false
}

// Len returns the size of the authoritative list state.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CanUndo reports whether the undo stack is non-empty.
func (c *Controller) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.undo) > 0
}

// applyUpdate merges a server-confirmed update into list state, keeping the
// record's position, identifier and created timestamp.
func (c *Controller) applyUpdate(id string, pub models.Publication) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		created := c.items[i].CreatedAt
		owner := c.items[i].User
		c.items[i].Title = pub.Title
		c.items[i].Content = pub.Content
		c.items[i].Status = pub.Status
		c.items[i].Revision = pub.Revision
		c.items[i].UpdatedAt = pub.UpdatedAt
		if c.items[i].UpdatedAt.IsZero() {
			c.items[i].UpdatedAt = time.Now()
		}
		if pub.User != "" {
			owner = pub.User
		}
		c.items[i].User = owner
		c.items[i].CreatedAt = created
		c.rev++
		return
	}
}

// removeLocked drops one id from list state and the selection set.
// Callers hold c.mu.
func (c *Controller) removeLocked(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	delete(c.selected, id)
}

// pruneSelectionLocked drops selected ids no longer present in list state.
// Callers hold c.mu.
func (c *Controller) pruneSelectionLocked() {
	present := make(map[string]struct{}, len(c.items))
	for _, p := range c.items {
		present[p.ID] = struct{}{}
	}
	for id := range c.selected {
		if _, ok := present[id]; !ok {
			delete(c.selected, id)
		}
	}
}

func validateDraft(d models.Draft) error {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Content) == "" {
		return common.ErrValidation
	}
	if _, err := models.ParseStatus(string(d.Status)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return nil
}
