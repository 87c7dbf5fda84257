package ai

import "strings"

type Category string

const (
	CategoryPublicSafety Category = "Public Safety"
	CategoryMunicipal    Category = "Municipal"
	CategoryTaxation     Category = "Taxation"
	CategoryHealthcare   Category = "Healthcare"
	CategoryGeneral      Category = "General"
)

type Department string

const (
	DepartmentPolice        Department = "Police Department"
	DepartmentMunicipal     Department = "Municipal Corporation"
	DepartmentRevenue       Department = "Revenue Department"
	DepartmentHealth        Department = "Health Department"
	DepartmentDistrictAdmin Department = "District Administration"
)

// Route pairs a category with the department that handles it and the
// keywords that select it.
type Route struct {
	Category   Category   `json:"category"`
	Department Department `json:"department"`
	Keywords   []string   `json:"keywords"`
}

// routes is checked in order; the first matching keyword set wins.
var routes = []Route{
	{CategoryPublicSafety, DepartmentPolice, []string{"police", "crime", "theft", "assault"}},
	{CategoryMunicipal, DepartmentMunicipal, []string{"road", "street", "lights", "garbage", "water"}},
	{CategoryTaxation, DepartmentRevenue, []string{"tax", "refund", "income", "gst"}},
	{CategoryHealthcare, DepartmentHealth, []string{"hospital", "doctor", "ambulance", "clinic"}},
}

var departments = map[Category]Department{
	CategoryPublicSafety: DepartmentPolice,
	CategoryMunicipal:    DepartmentMunicipal,
	CategoryTaxation:     DepartmentRevenue,
	CategoryHealthcare:   DepartmentHealth,
	CategoryGeneral:      DepartmentDistrictAdmin,
}

// Categories lists every category in priority order, General last.
var Categories = []Category{
	CategoryPublicSafety,
	CategoryMunicipal,
	CategoryTaxation,
	CategoryHealthcare,
	CategoryGeneral,
}

// Routes returns a copy of the routing table, including the General fallback
// which has no keywords.
func Routes() []Route {
	out := make([]Route, 0, len(routes)+1)
	for _, r := range routes {
		out = append(out, Route{
			Category:   r.Category,
			Department: r.Department,
			Keywords:   append([]string(nil), r.Keywords...),
		})
	}
	return append(out, Route{
		Category:   CategoryGeneral,
		Department: DepartmentDistrictAdmin,
		Keywords:   []string{},
	})
}

// DetectCategory returns the first category whose keyword set has a member
// occurring anywhere in the lowercased text.
func DetectCategory(text string) Category {
	lowered := strings.ToLower(text)
	for _, r := range routes {
		for _, kw := range r.Keywords {
			if strings.Contains(lowered, kw) {
				return r.Category
			}
		}
	}
	return CategoryGeneral
}

func DepartmentFor(c Category) Department {
	if d, ok := departments[c]; ok {
		return d
	}
	return DepartmentDistrictAdmin
}

// ParseCategory resolves a category name case-insensitively to its canonical
// form.
func ParseCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}
