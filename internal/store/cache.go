// Package store holds the in-memory snapshots of the backing collections.
// Every load replaces a collection wholesale; nothing is merged and nothing
// invalidates incrementally. Mutations elsewhere become visible only after
// the owning collection is reloaded.
package store

import (
	"context"
	"sync"

	"material-requisition-api-server/internal/models"
	"material-requisition-api-server/internal/sheets"

	"go.uber.org/zap"
)

type Cache struct {
	client *sheets.Client
	logger *zap.Logger

	mu           sync.RWMutex
	materials    []models.Material
	departments  []models.Department
	categories   []models.Category
	users        []models.User
	requisitions []models.Requisition
}

func NewCache(client *sheets.Client, logger *zap.Logger) *Cache {
	return &Cache{client: client, logger: logger}
}

// LoadAll refreshes every collection with an unordered concurrent fan-out.
// A failed fetch leaves that one collection empty while the others still
// populate; failures are logged, never returned.
func (c *Cache) LoadAll(ctx context.Context) {
	loaders := map[string]func(context.Context) error{
		models.SheetMaterials:    c.LoadMaterials,
		models.SheetDepartments:  c.LoadDepartments,
		models.SheetCategories:   c.LoadCategories,
		models.SheetUsers:        c.LoadUsers,
		models.SheetRequisitions: c.LoadRequisitions,
	}

	var wg sync.WaitGroup
	for name, load := range loaders {
		wg.Add(1)
		go func(name string, load func(context.Context) error) {
			defer wg.Done()
			if err := load(ctx); err != nil {
				c.logger.Warn("loading collection failed, snapshot left empty",
					zap.String("collection", name), zap.Error(err))
			}
		}(name, load)
	}
	wg.Wait()
}

// LoadMaterials replaces the materials snapshot from a full fetch. On fetch
// failure the snapshot becomes empty, mirroring the reload-or-nothing
// contract of LoadAll.
func (c *Cache) LoadMaterials(ctx context.Context) error {
	rows, err := c.client.Select(ctx, models.SheetMaterials)
	if err != nil {
		c.replaceMaterials(nil)
		return err
	}

	materials := make([]models.Material, 0, len(rows))
	for _, row := range rows {
		m, err := models.MaterialFromRow(row)
		if err != nil {
			c.logger.Warn("skipping malformed material row", zap.Error(err))
			continue
		}
		materials = append(materials, m)
	}
	c.replaceMaterials(materials)
	return nil
}

func (c *Cache) LoadDepartments(ctx context.Context) error {
	rows, err := c.client.Select(ctx, models.SheetDepartments)
	if err != nil {
		c.replaceDepartments(nil)
		return err
	}

	departments := make([]models.Department, 0, len(rows))
	for _, row := range rows {
		d, err := models.DepartmentFromRow(row)
		if err != nil {
			c.logger.Warn("skipping malformed department row", zap.Error(err))
			continue
		}
		departments = append(departments, d)
	}
	c.replaceDepartments(departments)
	return nil
}

func (c *Cache) LoadCategories(ctx context.Context) error {
	rows, err := c.client.Select(ctx, models.SheetCategories)
	if err != nil {
		c.replaceCategories(nil)
		return err
	}

	categories := make([]models.Category, 0, len(rows))
	for _, row := range rows {
		cat, err := models.CategoryFromRow(row)
		if err != nil {
			c.logger.Warn("skipping malformed category row", zap.Error(err))
			continue
		}
		categories = append(categories, cat)
	}
	c.replaceCategories(categories)
	return nil
}

func (c *Cache) LoadUsers(ctx context.Context) error {
	rows, err := c.client.Select(ctx, models.SheetUsers)
	if err != nil {
		c.replaceUsers(nil)
		return err
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		u, err := models.UserFromRow(row)
		if err != nil {
			c.logger.Warn("skipping malformed user row", zap.Error(err))
			continue
		}
		users = append(users, u)
	}
	c.replaceUsers(users)
	return nil
}

func (c *Cache) LoadRequisitions(ctx context.Context) error {
	rows, err := c.client.Select(ctx, models.SheetRequisitions)
	if err != nil {
		c.replaceRequisitions(nil)
		return err
	}

	requisitions := make([]models.Requisition, 0, len(rows))
	for _, row := range rows {
		r, err := models.RequisitionFromRow(row)
		if err != nil {
			c.logger.Warn("skipping malformed requisition row", zap.Error(err))
			continue
		}
		requisitions = append(requisitions, r)
	}
	c.replaceRequisitions(requisitions)
	return nil
}

func (c *Cache) replaceMaterials(materials []models.Material) {
	c.mu.Lock()
	c.materials = materials
	c.mu.Unlock()
}

func (c *Cache) replaceDepartments(departments []models.Department) {
	c.mu.Lock()
	c.departments = departments
	c.mu.Unlock()
}

func (c *Cache) replaceCategories(categories []models.Category) {
	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()
}

func (c *Cache) replaceUsers(users []models.User) {
	c.mu.Lock()
	c.users = users
	c.mu.Unlock()
}

func (c *Cache) replaceRequisitions(requisitions []models.Requisition) {
	c.mu.Lock()
	c.requisitions = requisitions
	c.mu.Unlock()
}

// Materials returns a copy of the materials snapshot.
func (c *Cache) Materials() []models.Material {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Material, 0, len(c.materials))
	return append(out, c.materials...)
}

func (c *Cache) Departments() []models.Department {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Department, 0, len(c.departments))
	return append(out, c.departments...)
}

func (c *Cache) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Category, 0, len(c.categories))
	return append(out, c.categories...)
}

func (c *Cache) Users() []models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.User, 0, len(c.users))
	return append(out, c.users...)
}

func (c *Cache) Requisitions() []models.Requisition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Requisition, 0, len(c.requisitions))
	return append(out, c.requisitions...)
}

// FindMaterial looks a material up by record id in the snapshot.
func (c *Cache) FindMaterial(id string) (models.Material, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.materials {
		if m.ID == id {
			return m, true
		}
	}
	return models.Material{}, false
}

// FindRequisition looks a requisition up by record id in the snapshot.
func (c *Cache) FindRequisition(id string) (models.Requisition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.requisitions {
		if r.ID == id {
			return r, true
		}
	}
	return models.Requisition{}, false
}

// FilterRequisitions returns the requisitions matching the predicate.
func (c *Cache) FilterRequisitions(keep func(models.Requisition) bool) []models.Requisition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []models.Requisition{}
	for _, r := range c.requisitions {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
