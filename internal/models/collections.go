package models

// Sheet names of the collections in the backing store. The "admin" and
// "users" collections are disjoint on purpose: authentication checks them in
// that order.
const (
	SheetMaterials    = "materials"
	SheetRequisitions = "requisitions"
	SheetDepartments  = "departments"
	SheetCategories   = "categories"
	SheetUsers        = "users"
	SheetAdmins       = "admin"
)

// SheetHeaders is the header row each collection is created with.
var SheetHeaders = map[string][]string{
	SheetMaterials:    {"id", "material_code", "material_name", "category", "unit", "stock_quantity", "min_stock", "created_date", "updated_date"},
	SheetRequisitions: {"id", "requisition_code", "date", "requester", "department", "purpose", "status", "materials", "created_date", "approved_date", "approved_by", "reject_reason"},
	SheetDepartments:  {"id", "name", "code", "manager", "created_date"},
	SheetCategories:   {"id", "name", "description", "created_date"},
	SheetUsers:        {"id", "username", "password", "full_name", "role", "department", "created_date", "last_login"},
	SheetAdmins:       {"id", "username", "password", "full_name", "role", "created_date", "last_login"},
}
