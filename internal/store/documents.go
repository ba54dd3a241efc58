package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mithrel/foliate/pkg/api"
)

// Documents owns document records and the catalog, keeping the two in
// lockstep: both are written by create and destroyed by remove, never
// independently. An id found in one side without the other is repaired
// on read by treating the document as absent.
type Documents struct {
	kv  KV
	now func() time.Time
}

func NewDocuments(kv KV) *Documents {
	return &Documents{kv: kv, now: time.Now}
}

// Create writes an empty document and its catalog entry. An empty name
// derives the smallest unused "Untitled N".
func (d *Documents) Create(ctx context.Context, name string) (api.CatalogEntry, error) {
	cat, err := d.loadCatalog(ctx)
	if err != nil {
		return api.CatalogEntry{}, err
	}
	if strings.TrimSpace(name) == "" {
		name = defaultName(cat)
	}
	id := api.NewID()
	for {
		if _, err := d.kv.Get(ctx, docKey(id)); errors.Is(err, ErrNotFound) {
			break
		}
		id = api.NewID()
	}
	now := d.now().UTC()
	doc := api.Document{ID: id, Name: name, CreatedAt: now, LastModified: now}
	raw, err := marshalRecord(doc)
	if err != nil {
		return api.CatalogEntry{}, err
	}
	if err := d.kv.Put(ctx, docKey(id), raw); err != nil {
		return api.CatalogEntry{}, err
	}
	entry := api.CatalogEntry{ID: id, Name: name, CreatedAt: now, LastAccessed: now}
	cat = append(cat, entry)
	if err := d.saveCatalog(ctx, cat); err != nil {
		return api.CatalogEntry{}, err
	}
	return entry, nil
}

// Save overwrites content and bumps LastModified. Content saves are the
// only writes that move LastModified.
func (d *Documents) Save(ctx context.Context, id, content string) error {
	doc, err := d.getRecord(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	doc.Content = content
	doc.LastModified = d.now().UTC()
	raw, err := marshalRecord(doc)
	if err != nil {
		return err
	}
	return d.kv.Put(ctx, docKey(id), raw)
}

// Load returns nil rather than an error when the document is absent;
// absence is an expected, recoverable condition.
func (d *Documents) Load(ctx context.Context, id string) (*api.Document, error) {
	return d.getRecord(ctx, id)
}

// Rename updates the record and the catalog entry together.
func (d *Documents) Rename(ctx context.Context, id, name string) error {
	doc, err := d.getRecord(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	doc.Name = name
	raw, err := marshalRecord(doc)
	if err != nil {
		return err
	}
	if err := d.kv.Put(ctx, docKey(id), raw); err != nil {
		return err
	}
	cat, err := d.loadCatalog(ctx)
	if err != nil {
		return err
	}
	for i := range cat {
		if cat[i].ID == id {
			cat[i].Name = name
		}
	}
	return d.saveCatalog(ctx, cat)
}

// Remove deletes the record and catalog entry. Removing an absent id is
// a no-op, not an error.
func (d *Documents) Remove(ctx context.Context, id string) error {
	if err := d.kv.Delete(ctx, docKey(id)); err != nil {
		return err
	}
	cat, err := d.loadCatalog(ctx)
	if err != nil {
		return err
	}
	kept := cat[:0]
	changed := false
	for _, e := range cat {
		if e.ID == id {
			changed = true
			continue
		}
		kept = append(kept, e)
	}
	if !changed {
		return nil
	}
	return d.saveCatalog(ctx, kept)
}

// Touch stamps the catalog entry's LastAccessed. Unknown ids are
// ignored.
func (d *Documents) Touch(ctx context.Context, id string) error {
	cat, err := d.loadCatalog(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range cat {
		if cat[i].ID == id {
			cat[i].LastAccessed = d.now().UTC()
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return d.saveCatalog(ctx, cat)
}

// Catalog returns entries in creation order, dropping entries whose
// backing record is missing or unreadable. When anything was dropped the
// repaired catalog is written back.
func (d *Documents) Catalog(ctx context.Context) ([]api.CatalogEntry, error) {
	cat, err := d.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	kept := make([]api.CatalogEntry, 0, len(cat))
	for _, e := range cat {
		doc, err := d.getRecord(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) != len(cat) {
		if err := d.saveCatalog(ctx, kept); err != nil {
			return nil, err
		}
	}
	return kept, nil
}

func (d *Documents) getRecord(ctx context.Context, id string) (*api.Document, error) {
	raw, err := d.kv.Get(ctx, docKey(id))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc api.Document
	if err := unmarshalRecord(raw, &doc); err != nil {
		// Unreadable record: discard and treat as absent.
		return nil, nil
	}
	return &doc, nil
}

func (d *Documents) loadCatalog(ctx context.Context) ([]api.CatalogEntry, error) {
	raw, err := d.kv.Get(ctx, keyCatalog)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cat []api.CatalogEntry
	if err := unmarshalRecord(raw, &cat); err != nil {
		return nil, nil
	}
	return cat, nil
}

func (d *Documents) saveCatalog(ctx context.Context, cat []api.CatalogEntry) error {
	raw, err := marshalRecord(cat)
	if err != nil {
		return err
	}
	return d.kv.Put(ctx, keyCatalog, raw)
}

// defaultName picks the smallest positive N such that "Untitled N" is
// unused among current names.
func defaultName(cat []api.CatalogEntry) string {
	used := make(map[int]bool, len(cat))
	for _, e := range cat {
		rest, ok := strings.CutPrefix(e.Name, "Untitled ")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > 0 {
			used[n] = true
		}
	}
	n := 1
	for used[n] {
		n++
	}
	return "Untitled " + strconv.Itoa(n)
}
