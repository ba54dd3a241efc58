package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mithrel/foliate/internal/store"
	"github.com/mithrel/foliate/pkg/api"
)

const DefaultDebounceWindow = 300 * time.Millisecond

// Controller owns "what is currently being edited". It is the only
// writer of document content: presenters hand it intents and read
// snapshots back. All operations run under one lock, so the only
// ordering hazard is a pending debounce timer racing a structural
// change; every structural path flushes first and then invalidates the
// timer (flush-then-cancel), never the other way around.
type Controller struct {
	mu       sync.Mutex
	docs     *store.Documents
	settings *store.Settings
	kv       store.KV
	log      *zap.Logger
	window   time.Duration
	publish  func(Snapshot)

	catalog    []api.CatalogEntry
	activeID   string
	buffer     string
	savedSum   string
	active     api.Settings
	dirty      bool
	storageErr string

	// Debounce token: a timer fire with a stale generation is ignored.
	timer *time.Timer
	gen   uint64
}

type Options struct {
	// DebounceWindow is the quiet period before a durable content
	// save; edits inside the window restart it.
	DebounceWindow time.Duration
	Logger         *zap.Logger
	// Publish, when set, receives a snapshot after every state change.
	// It must not call back into the controller.
	Publish func(Snapshot)
}

// New wires a controller from its stores. Both stores and the KV
// (for the recovery pointer) are injected so tests run on isolated
// instances.
func New(docs *store.Documents, settings *store.Settings, kv store.KV, opts Options) *Controller {
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = DefaultDebounceWindow
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		docs:     docs,
		settings: settings,
		kv:       kv,
		log:      opts.Logger,
		window:   opts.DebounceWindow,
		publish:  opts.Publish,
	}
}

// Apply dispatches a typed intent. This is the presenter's single entry
// point into session logic.
func (c *Controller) Apply(ctx context.Context, in Intent) error {
	switch in := in.(type) {
	case CreateDocument:
		_, err := c.Create(ctx, in.Name)
		return err
	case SwitchTo:
		return c.SwitchTo(ctx, in.ID)
	case DeleteDocument:
		return c.Delete(ctx, in.ID)
	case RenameDocument:
		return c.Rename(ctx, in.ID, in.Name)
	case EditContent:
		return c.Edit(ctx, in.Text)
	case ChangeSettings:
		return c.UpdateSettings(ctx, in.Settings)
	case Shutdown:
		return c.Close(ctx)
	default:
		return fmt.Errorf("unknown intent %T", in)
	}
}

// Start recovers the session: load the catalog, create a first document
// when it is empty, and resolve the active document from the persisted
// pointer when that pointer still names a live document. After Start
// the active id is always set while the catalog is non-empty.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat, err := c.docs.Catalog(ctx)
	if err != nil {
		return err
	}
	if len(cat) == 0 {
		if _, err := c.docs.Create(ctx, ""); err != nil {
			return err
		}
		if cat, err = c.docs.Catalog(ctx); err != nil {
			return err
		}
	}
	c.catalog = cat

	active := cat[0].ID
	if st, err := store.LoadAppState(ctx, c.kv); err == nil && st.LastActiveID != "" {
		for _, e := range cat {
			if e.ID == st.LastActiveID {
				active = st.LastActiveID
				break
			}
		}
	}
	if err := c.activateLocked(ctx, active); err != nil {
		return err
	}
	c.log.Info("session started", zap.String("active", c.activeID), zap.Int("documents", len(c.catalog)))
	c.publishLocked()
	return nil
}

// Edit replaces the in-memory buffer immediately and schedules a
// debounced durable save. Rapid edits collapse into one write fired
// after the quiet window; each edit restarts the window.
func (c *Controller) Edit(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeID == "" {
		return nil
	}
	c.buffer = text
	c.dirty = api.ContentSum(text) != c.savedSum
	if !c.dirty {
		// Buffer matches the durable record again; drop any pending write.
		c.cancelTimerLocked()
		c.publishLocked()
		return nil
	}
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, func() { c.debounceFired(gen) })
	c.publishLocked()
	return nil
}

func (c *Controller) debounceFired(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.timer = nil
	if err := c.flushLocked(context.Background()); err != nil {
		c.log.Warn("autosave failed", zap.String("doc", c.activeID), zap.Error(err))
	}
	c.publishLocked()
}

// SwitchTo flushes the outgoing document synchronously, then activates
// id. Switching must never lose data, so the flush happens regardless
// of the debounce timer's remaining delay; a flush that cannot land
// (full store) aborts the switch instead of dropping the buffer.
func (c *Controller) SwitchTo(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == c.activeID {
		return nil
	}
	if err := c.flushLocked(ctx); err != nil {
		c.publishLocked()
		return err
	}
	cat, err := c.docs.Catalog(ctx)
	if err != nil {
		return err
	}
	c.catalog = cat
	if err := c.activateLocked(ctx, id); err != nil {
		return err
	}
	c.publishLocked()
	return nil
}

// Create flushes pending edits, creates the document, and makes it
// active.
func (c *Controller) Create(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.flushLocked(ctx); err != nil {
		c.publishLocked()
		return "", err
	}
	entry, err := c.docs.Create(ctx, name)
	if err != nil {
		return "", err
	}
	cat, err := c.docs.Catalog(ctx)
	if err != nil {
		return "", err
	}
	c.catalog = cat
	if err := c.activateLocked(ctx, entry.ID); err != nil {
		return "", err
	}
	c.log.Info("document created", zap.String("doc", entry.ID), zap.String("name", entry.Name))
	c.publishLocked()
	return entry.ID, nil
}

// Delete removes the document and its settings. Deleting the active
// document reselects: the catalog entry immediately before it in
// display order, else the one after, else a fresh default document —
// the catalog is never left empty while the session runs. Deleting a
// non-active document never changes the active id.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	wasActive := id == c.activeID
	if wasActive {
		if err := c.flushLocked(ctx); err != nil && !errors.Is(err, store.ErrNotFound) {
			c.publishLocked()
			return err
		}
	}
	idx := -1
	for i, e := range c.catalog {
		if e.ID == id {
			idx = i
			break
		}
	}
	if err := c.docs.Remove(ctx, id); err != nil {
		return err
	}
	if err := c.settings.Remove(ctx, id); err != nil {
		return err
	}
	cat, err := c.docs.Catalog(ctx)
	if err != nil {
		return err
	}
	c.catalog = cat
	c.log.Info("document deleted", zap.String("doc", id))

	if !wasActive {
		c.publishLocked()
		return nil
	}

	if len(cat) == 0 {
		entry, err := c.docs.Create(ctx, "")
		if err != nil {
			return err
		}
		if c.catalog, err = c.docs.Catalog(ctx); err != nil {
			return err
		}
		if err := c.activateLocked(ctx, entry.ID); err != nil {
			return err
		}
		c.publishLocked()
		return nil
	}

	// Previous in display order, else next. After removal the previous
	// entry sits at idx-1 and the next at idx.
	target := idx - 1
	if target < 0 {
		target = 0
	}
	if target >= len(cat) {
		target = len(cat) - 1
	}
	if err := c.activateLocked(ctx, cat[target].ID); err != nil {
		return err
	}
	c.publishLocked()
	return nil
}

// Rename updates a document's label. Renaming a vanished document is a
// local no-op.
func (c *Controller) Rename(ctx context.Context, id, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.docs.Rename(ctx, id, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.log.Warn("rename of missing document ignored", zap.String("doc", id))
			return nil
		}
		return err
	}
	cat, err := c.docs.Catalog(ctx)
	if err != nil {
		return err
	}
	c.catalog = cat
	c.publishLocked()
	return nil
}

// UpdateSettings writes through immediately — no debounce — and
// republishes derived display state.
func (c *Controller) UpdateSettings(ctx context.Context, s api.Settings) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeID == "" {
		return nil
	}
	saved, err := c.settings.Save(ctx, c.activeID, s)
	if err != nil {
		if errors.Is(err, store.ErrQuotaExceeded) {
			c.storageErr = quotaMessage
			c.publishLocked()
			return err
		}
		return err
	}
	c.active = saved
	c.publishLocked()
	return nil
}

// Flush forces any pending debounced write to complete now.
func (c *Controller) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.flushLocked(ctx)
	c.publishLocked()
	return err
}

// Close drains pending edits and persists the recovery pointer. A
// failed drain is logged but does not block teardown.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.flushLocked(ctx); err != nil {
		c.log.Error("flush on shutdown failed", zap.String("doc", c.activeID), zap.Error(err))
	}
	if c.activeID != "" {
		if err := store.SaveAppState(ctx, c.kv, api.AppState{LastActiveID: c.activeID}); err != nil {
			c.log.Warn("could not persist session pointer", zap.Error(err))
		}
	}
	return nil
}

// Snapshot returns a copy of presenter-visible state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) ActiveID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID
}

func (c *Controller) ActiveContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer
}

func (c *Controller) ActiveSettings() api.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Controller) Catalog() []api.CatalogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]api.CatalogEntry(nil), c.catalog...)
}

const quotaMessage = "storage is full: delete a document or free up space; latest edits are kept in memory and retried on the next save"

// flushLocked drains Dirty to Clean. The write happens before the timer
// is invalidated so a concurrent fire can never drop the latest edit.
func (c *Controller) flushLocked(ctx context.Context) error {
	defer c.cancelTimerLocked()
	if !c.dirty || c.activeID == "" {
		return nil
	}
	err := c.docs.Save(ctx, c.activeID, c.buffer)
	switch {
	case err == nil:
		c.dirty = false
		c.savedSum = api.ContentSum(c.buffer)
		c.storageErr = ""
		return nil
	case errors.Is(err, store.ErrQuotaExceeded):
		// The durable copy stays stale; the buffer is authoritative.
		c.storageErr = quotaMessage
		return err
	case errors.Is(err, store.ErrNotFound):
		// Document removed out from under us; nothing left to save.
		c.dirty = false
		c.log.Warn("active document vanished before save", zap.String("doc", c.activeID))
		return err
	default:
		c.storageErr = err.Error()
		return err
	}
}

func (c *Controller) cancelTimerLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// activateLocked loads content and settings for id and records it as
// the persisted recovery pointer. A missing id falls back to the first
// catalog entry (creating one when the catalog is empty) so the session
// always lands on an editable document.
func (c *Controller) activateLocked(ctx context.Context, id string) error {
	doc, err := c.docs.Load(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		if len(c.catalog) == 0 {
			entry, err := c.docs.Create(ctx, "")
			if err != nil {
				return err
			}
			if c.catalog, err = c.docs.Catalog(ctx); err != nil {
				return err
			}
			return c.activateLocked(ctx, entry.ID)
		}
		if c.catalog[0].ID == id {
			return fmt.Errorf("document %s: %w", id, store.ErrNotFound)
		}
		c.log.Warn("requested document missing, falling back to first", zap.String("doc", id))
		return c.activateLocked(ctx, c.catalog[0].ID)
	}

	c.activeID = doc.ID
	c.buffer = doc.Content
	c.savedSum = api.ContentSum(doc.Content)
	c.dirty = false

	s, err := c.settings.Load(ctx, doc.ID)
	if err != nil {
		c.log.Warn("settings load failed, using defaults", zap.String("doc", doc.ID), zap.Error(err))
	}
	c.active = s

	if err := c.docs.Touch(ctx, doc.ID); err != nil {
		c.log.Warn("could not stamp last access", zap.String("doc", doc.ID), zap.Error(err))
	} else if cat, err := c.docs.Catalog(ctx); err == nil {
		c.catalog = cat
	}
	if err := store.SaveAppState(ctx, c.kv, api.AppState{LastActiveID: doc.ID}); err != nil {
		c.log.Warn("could not persist session pointer", zap.Error(err))
	}
	return nil
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Catalog:    append([]api.CatalogEntry(nil), c.catalog...),
		ActiveID:   c.activeID,
		Content:    c.buffer,
		Settings:   c.active,
		Dirty:      c.dirty,
		StorageErr: c.storageErr,
	}
}

func (c *Controller) publishLocked() {
	if c.publish != nil {
		c.publish(c.snapshotLocked())
	}
}
