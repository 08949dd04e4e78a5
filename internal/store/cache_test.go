package store_test

import (
	"context"
	"testing"

	"material-requisition-api-server/internal/models"
	"material-requisition-api-server/internal/sheets"
	"material-requisition-api-server/internal/sheets/sheetstest"
	"material-requisition-api-server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*store.Cache, *sheets.Client, *sheetstest.Server) {
	t.Helper()
	srv := sheetstest.NewServer()
	t.Cleanup(srv.Close)
	client := sheets.NewClient(srv.URL, srv.Client())
	return store.NewCache(client, zap.NewNop()), client, srv
}

func materialRow(id string, qty, minStock int) map[string]any {
	return map[string]any{
		"id": id, "material_code": "C-" + id, "material_name": "Material " + id,
		"category": "Office Supplies", "unit": "piece",
		"stock_quantity": qty, "min_stock": minStock,
		"created_date": "2024-01-01T00:00:00Z", "updated_date": "",
	}
}

func requisitionRow(id, status, created string) map[string]any {
	return map[string]any{
		"id": id, "requisition_code": "REQ2401010001", "date": "2024-01-01",
		"requester": "General User", "department": "Finance", "purpose": "restock",
		"status": status, "materials": "[]",
		"created_date": created, "approved_date": "", "approved_by": "", "reject_reason": "",
	}
}

func TestLoadAllPopulatesEveryCollection(t *testing.T) {
	cache, _, srv := newTestCache(t)
	srv.Seed(models.SheetMaterials, materialRow("mat001", 50, 10))
	srv.Seed(models.SheetDepartments, map[string]any{"id": "dept001", "name": "Finance", "code": "FIN", "manager": "", "created_date": ""})
	srv.Seed(models.SheetCategories, map[string]any{"id": "cat001", "name": "Office Supplies", "description": "", "created_date": ""})
	srv.Seed(models.SheetUsers, map[string]any{"id": "user001", "username": "user", "password": "x", "full_name": "General User", "role": "user", "department": "IT", "created_date": "", "last_login": ""})
	srv.Seed(models.SheetRequisitions, requisitionRow("req_1", "pending", "2024-01-01T00:00:00Z"))

	cache.LoadAll(context.Background())

	assert.Len(t, cache.Materials(), 1)
	assert.Len(t, cache.Departments(), 1)
	assert.Len(t, cache.Categories(), 1)
	assert.Len(t, cache.Users(), 1)
	assert.Len(t, cache.Requisitions(), 1)
}

func TestLoadAllIsolatesSingleCollectionFailure(t *testing.T) {
	cache, _, srv := newTestCache(t)
	srv.Seed(models.SheetMaterials, materialRow("mat001", 50, 10))
	srv.Seed(models.SheetDepartments, map[string]any{"id": "dept001", "name": "Finance", "code": "FIN", "manager": "", "created_date": ""})
	srv.FailOn("select", models.SheetDepartments)

	cache.LoadAll(context.Background())

	// The failing collection silently becomes empty; the rest populate.
	assert.Empty(t, cache.Departments())
	assert.Len(t, cache.Materials(), 1)
}

func TestLoadReplacesWholesale(t *testing.T) {
	cache, _, srv := newTestCache(t)
	ctx := context.Background()

	srv.Seed(models.SheetMaterials, materialRow("mat001", 50, 10), materialRow("mat002", 8, 10))
	require.NoError(t, cache.LoadMaterials(ctx))
	require.Len(t, cache.Materials(), 2)

	srv.Seed(models.SheetMaterials, materialRow("mat003", 1, 5))
	require.NoError(t, cache.LoadMaterials(ctx))

	materials := cache.Materials()
	require.Len(t, materials, 1)
	assert.Equal(t, "mat003", materials[0].ID)
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	cache, _, srv := newTestCache(t)
	srv.Seed(models.SheetMaterials,
		materialRow("mat001", 50, 10),
		map[string]any{"id": "mat-bad", "stock_quantity": "plenty", "min_stock": "10"},
	)

	require.NoError(t, cache.LoadMaterials(context.Background()))

	materials := cache.Materials()
	require.Len(t, materials, 1)
	assert.Equal(t, "mat001", materials[0].ID)
}

func TestLowStockMaterialsBoundary(t *testing.T) {
	cache, _, srv := newTestCache(t)
	srv.Seed(models.SheetMaterials,
		materialRow("mat-above", 11, 10),
		materialRow("mat-equal", 10, 10),
		materialRow("mat-below", 2, 10),
	)
	require.NoError(t, cache.LoadMaterials(context.Background()))

	low := cache.LowStockMaterials()

	require.Len(t, low, 2)
	assert.Equal(t, "mat-equal", low[0].ID)
	assert.Equal(t, "mat-below", low[1].ID)
}

// Dashboard scenario: empty store, then one pending requisition, then its
// approval, checking the counters at each step.
func TestDashboardStatsScenario(t *testing.T) {
	cache, client, _ := newTestCache(t)
	ctx := context.Background()

	cache.LoadAll(ctx)
	stats := cache.DashboardStats()
	assert.Equal(t, 0, stats.TotalRequisitions)
	assert.Equal(t, 0, stats.PendingRequisitions)
	assert.Equal(t, 0, stats.ApprovedRequisitions)

	require.NoError(t, client.Insert(ctx, models.SheetRequisitions,
		sheets.Row(requisitionRow("req_1", "pending", "2024-01-01T00:00:00Z"))))
	require.NoError(t, cache.LoadRequisitions(ctx))

	stats = cache.DashboardStats()
	assert.Equal(t, 1, stats.TotalRequisitions)
	assert.Equal(t, 1, stats.PendingRequisitions)
	assert.Equal(t, 0, stats.ApprovedRequisitions)

	require.NoError(t, client.Update(ctx, models.SheetRequisitions, "req_1", sheets.Row{
		"status":        "approved",
		"approved_date": "2024-01-02T00:00:00Z",
		"approved_by":   "System Administrator",
	}))
	require.NoError(t, cache.LoadRequisitions(ctx))

	stats = cache.DashboardStats()
	assert.Equal(t, 1, stats.TotalRequisitions)
	assert.Equal(t, 0, stats.PendingRequisitions)
	assert.Equal(t, 1, stats.ApprovedRequisitions)

	approved, ok := cache.FindRequisition("req_1")
	require.True(t, ok)
	assert.NotEmpty(t, approved.ApprovedBy)
	assert.False(t, approved.ApprovedDate.IsZero())
}

func TestRecentRequisitionsOrderAndLimit(t *testing.T) {
	cache, _, srv := newTestCache(t)
	srv.Seed(models.SheetRequisitions,
		requisitionRow("req_1", "pending", "2024-01-01T00:00:00Z"),
		requisitionRow("req_2", "pending", "2024-01-03T00:00:00Z"),
		requisitionRow("req_3", "approved", "2024-01-02T00:00:00Z"),
	)
	require.NoError(t, cache.LoadRequisitions(context.Background()))

	recent := cache.RecentRequisitions(2)

	require.Len(t, recent, 2)
	assert.Equal(t, "req_2", recent[0].ID)
	assert.Equal(t, "req_3", recent[1].ID)
}

func TestFilterRequisitionsByStatus(t *testing.T) {
	cache, _, srv := newTestCache(t)
	srv.Seed(models.SheetRequisitions,
		requisitionRow("req_1", "pending", "2024-01-01T00:00:00Z"),
		requisitionRow("req_2", "rejected", "2024-01-02T00:00:00Z"),
	)
	require.NoError(t, cache.LoadRequisitions(context.Background()))

	pending := cache.FilterRequisitions(func(r models.Requisition) bool {
		return r.Status == models.StatusPending
	})

	require.Len(t, pending, 1)
	assert.Equal(t, "req_1", pending[0].ID)
}
