// Package core holds the domain model of the dashboard: the in-memory
// table, the role/alias catalog that maps loosely-named input columns to
// canonical fields, and the three aggregations derived from them.
package core

import "strings"

// Role is one of the semantic fields the dashboard needs, independent of
// how the uploaded dataset actually names its columns.
type Role string

const (
	RoleCategory           Role = "category"
	RoleSalesAmount        Role = "sales_amount"
	RoleOrderDate          Role = "order_date"
	RoleSatisfactionRating Role = "satisfaction_rating"
)

// Roles lists every role in display order.
var Roles = []Role{RoleCategory, RoleSalesAmount, RoleOrderDate, RoleSatisfactionRating}

// roleAliases is the fixed catalog of accepted column-name spellings per
// role, in priority order. Matching is case-insensitive and exact; there
// is deliberately no fuzzy matching.
var roleAliases = map[Role][]string{
	RoleCategory:           {"Category", "Product Category"},
	RoleSalesAmount:        {"$ Sales", "Sales ($)", "Sales", "Total Sales"},
	RoleOrderDate:          {"Date Ordered", "Order Date"},
	RoleSatisfactionRating: {"Service Satisfaction Rating", "Satisfaction Rating"},
}

var roleLabels = map[Role]string{
	RoleCategory:           "Category",
	RoleSalesAmount:        "Sales",
	RoleOrderDate:          "Date Ordered",
	RoleSatisfactionRating: "Service Satisfaction Rating",
}

// Aliases returns the accepted spellings for a role, most preferred first.
func (r Role) Aliases() []string {
	return roleAliases[r]
}

// Label returns the human-readable name of the role.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// PreferredName returns the spelling users should rename a column to when
// the role could not be detected.
func (r Role) PreferredName() string {
	if aliases := roleAliases[r]; len(aliases) > 0 {
		return aliases[0]
	}
	return r.Label()
}

// ColumnMap is the outcome of resolving every role against an uploaded
// table. It is built once per upload and never mutated afterwards.
type ColumnMap map[Role]string

// Resolve finds the actual column name for a role. It builds a
// case-insensitive lookup of the available columns and returns the first
// alias, in priority order, that matches. The second return is false
// when no alias matched.
func Resolve(columns []string, role Role) (string, bool) {
	lower := make(map[string]string, len(columns))
	for _, c := range columns {
		key := strings.ToLower(strings.TrimSpace(c))
		if _, exists := lower[key]; !exists {
			lower[key] = c
		}
	}
	for _, alias := range role.Aliases() {
		if actual, ok := lower[strings.ToLower(alias)]; ok {
			return actual, true
		}
	}
	return "", false
}

// ResolveColumns resolves every role independently; an unresolved role is
// simply absent from the map and does not block the others.
func ResolveColumns(columns []string) ColumnMap {
	m := make(ColumnMap, len(Roles))
	for _, role := range Roles {
		if name, ok := Resolve(columns, role); ok {
			m[role] = name
		}
	}
	return m
}

// Missing returns the subset of the given roles not present in the map,
// in the order they were asked for.
func (m ColumnMap) Missing(roles ...Role) []Role {
	var missing []Role
	for _, r := range roles {
		if _, ok := m[r]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

// Unresolved returns every role that did not match any column.
func (m ColumnMap) Unresolved() []Role {
	return m.Missing(Roles...)
}
