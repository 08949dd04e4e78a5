package database

import (
	"context"
	"time"

	"material-requisition-api-server/internal/auth"
	"material-requisition-api-server/internal/models"
	"material-requisition-api-server/internal/sheets"

	"go.uber.org/zap"
)

// Seeder bootstraps the sheet schema and the default records. Seeding is a
// sequence of independent store calls with no rollback: every step is
// attempted regardless of earlier failures and the outcome is an aggregate
// report instead of a single error.
type Seeder struct {
	Client *sheets.Client
	Logger *zap.Logger
}

type SeedFailure struct {
	Sheet string `json:"sheet"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

type SeedReport struct {
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Failures  []SeedFailure `json:"failures"`
}

func (r *SeedReport) record(sheet, id string, err error) {
	r.Attempted++
	if err == nil {
		r.Succeeded++
		return
	}
	r.Failures = append(r.Failures, SeedFailure{Sheet: sheet, ID: id, Error: err.Error()})
}

// EnsureSheets creates every collection sheet with its header row. The store
// treats existing sheets as no-op successes, so this is safe to re-run.
func (s *Seeder) EnsureSheets(ctx context.Context) SeedReport {
	report := SeedReport{Failures: []SeedFailure{}}
	for _, name := range []string{
		models.SheetMaterials,
		models.SheetRequisitions,
		models.SheetDepartments,
		models.SheetCategories,
		models.SheetUsers,
		models.SheetAdmins,
	} {
		err := s.Client.CreateSheet(ctx, name, models.SheetHeaders[name])
		if err != nil {
			s.Logger.Warn("creating sheet failed", zap.String("sheet", name), zap.Error(err))
		}
		report.record(name, "", err)
	}
	return report
}

// SeedDefaults inserts the default admin, user, departments, categories and
// sample materials. Duplicate ids are no-op successes under the store's
// idempotent-create contract, so re-seeding never duplicates records.
func (s *Seeder) SeedDefaults(ctx context.Context) SeedReport {
	report := SeedReport{Failures: []SeedFailure{}}
	now := time.Now()

	s.seedAdmin(ctx, &report, now)
	s.seedUser(ctx, &report, now)
	s.seedDepartments(ctx, &report, now)
	s.seedCategories(ctx, &report, now)
	s.seedMaterials(ctx, &report, now)

	if len(report.Failures) > 0 {
		s.Logger.Warn("seeding finished with failures",
			zap.Int("attempted", report.Attempted),
			zap.Int("succeeded", report.Succeeded),
			zap.Int("failed", len(report.Failures)))
	}
	return report
}

func (s *Seeder) seedAdmin(ctx context.Context, report *SeedReport, now time.Time) {
	hashed, err := auth.HashPassword("admin123")
	if err != nil {
		report.record(models.SheetAdmins, "admin001", err)
		return
	}

	admin := models.User{
		ID:          "admin001",
		Username:    "admin",
		Password:    hashed,
		FullName:    "System Administrator",
		Role:        "admin",
		CreatedDate: now,
	}
	report.record(models.SheetAdmins, admin.ID,
		s.Client.Insert(ctx, models.SheetAdmins, admin.ToRow(false)))
}

func (s *Seeder) seedUser(ctx context.Context, report *SeedReport, now time.Time) {
	hashed, err := auth.HashPassword("user123")
	if err != nil {
		report.record(models.SheetUsers, "user001", err)
		return
	}

	user := models.User{
		ID:          "user001",
		Username:    "user",
		Password:    hashed,
		FullName:    "General User",
		Role:        "user",
		Department:  "IT",
		CreatedDate: now,
	}
	report.record(models.SheetUsers, user.ID,
		s.Client.Insert(ctx, models.SheetUsers, user.ToRow(true)))
}

func (s *Seeder) seedDepartments(ctx context.Context, report *SeedReport, now time.Time) {
	departments := []models.Department{
		{ID: "dept001", Name: "Information Technology", Code: "IT", Manager: "IT Manager", CreatedDate: now},
		{ID: "dept002", Name: "Human Resources", Code: "HR", Manager: "HR Manager", CreatedDate: now},
		{ID: "dept003", Name: "Finance", Code: "FIN", Manager: "Finance Manager", CreatedDate: now},
		{ID: "dept004", Name: "Supplies", Code: "SUP", Manager: "Head of Supplies", CreatedDate: now},
	}
	for _, d := range departments {
		report.record(models.SheetDepartments, d.ID,
			s.Client.Insert(ctx, models.SheetDepartments, d.ToRow()))
	}
}

func (s *Seeder) seedCategories(ctx context.Context, report *SeedReport, now time.Time) {
	categories := []models.Category{
		{ID: "cat001", Name: "Office Supplies", Description: "Stationery and general office supplies", CreatedDate: now},
		{ID: "cat002", Name: "Computer Equipment", Description: "IT and computer equipment", CreatedDate: now},
		{ID: "cat003", Name: "Construction Materials", Description: "Construction materials and tools", CreatedDate: now},
		{ID: "cat004", Name: "Cleaning Supplies", Description: "Cleaning agents and equipment", CreatedDate: now},
	}
	for _, c := range categories {
		report.record(models.SheetCategories, c.ID,
			s.Client.Insert(ctx, models.SheetCategories, c.ToRow()))
	}
}

func (s *Seeder) seedMaterials(ctx context.Context, report *SeedReport, now time.Time) {
	materials := []models.Material{
		{ID: "mat001", MaterialCode: "PEN001", MaterialName: "Ballpoint Pen (Blue)", Category: "Office Supplies", Unit: "piece", StockQuantity: 50, MinStock: 10, CreatedDate: now, UpdatedDate: now},
		{ID: "mat002", MaterialCode: "PAP001", MaterialName: "A4 Paper 80gsm", Category: "Office Supplies", Unit: "ream", StockQuantity: 25, MinStock: 5, CreatedDate: now, UpdatedDate: now},
		{ID: "mat003", MaterialCode: "USB001", MaterialName: "USB Flash Drive 32GB", Category: "Computer Equipment", Unit: "piece", StockQuantity: 15, MinStock: 3, CreatedDate: now, UpdatedDate: now},
		{ID: "mat004", MaterialCode: "CLE001", MaterialName: "Floor Cleaner", Category: "Cleaning Supplies", Unit: "bottle", StockQuantity: 8, MinStock: 2, CreatedDate: now, UpdatedDate: now},
	}
	for _, m := range materials {
		report.record(models.SheetMaterials, m.ID,
			s.Client.Insert(ctx, models.SheetMaterials, m.ToRow()))
	}
}
