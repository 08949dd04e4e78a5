package store

import (
	"sort"

	"material-requisition-api-server/internal/models"
)

// DashboardStats are the headline counters shown on the dashboard.
type DashboardStats struct {
	TotalRequisitions    int `json:"total_requisitions"`
	PendingRequisitions  int `json:"pending_requisitions"`
	ApprovedRequisitions int `json:"approved_requisitions"`
	LowStockItems        int `json:"low_stock_items"`
}

// DashboardStats recomputes the counters from the current snapshot on every
// call. No memoization, no incremental maintenance.
func (c *Cache) DashboardStats() DashboardStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := DashboardStats{TotalRequisitions: len(c.requisitions)}
	for _, r := range c.requisitions {
		switch r.Status {
		case models.StatusPending:
			stats.PendingRequisitions++
		case models.StatusApproved:
			stats.ApprovedRequisitions++
		}
	}
	for _, m := range c.materials {
		if m.IsLowStock() {
			stats.LowStockItems++
		}
	}
	return stats
}

// LowStockMaterials returns the materials at or below their minimum stock.
func (c *Cache) LowStockMaterials() []models.Material {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []models.Material{}
	for _, m := range c.materials {
		if m.IsLowStock() {
			out = append(out, m)
		}
	}
	return out
}

// RecentRequisitions returns up to n requisitions, newest created first.
func (c *Cache) RecentRequisitions(n int) []models.Requisition {
	recent := c.Requisitions()
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedDate.After(recent[j].CreatedDate)
	})
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}
