package service

import "github.com/ManojPokuru/course-creator-plugin/internal/domain"

// DurationForModuleCount picks the course length bucket for a requested
// number of modules.
func DurationForModuleCount(n int) domain.Duration {
	switch {
	case n <= 3:
		return domain.DurationShort
	case n <= 7:
		return domain.DurationMedium
	default:
		return domain.DurationLong
	}
}

// Module is one unit flattened out of the course tree.
type Module struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ModulesView is the flat list of a course's units.
type ModulesView struct {
	Title   string   `json:"title"`
	Level   string   `json:"level"`
	Modules []Module `json:"modules"`
}

// Modules flattens the course's units in document order. A positive limit
// caps the number of modules returned.
func Modules(course *domain.Course, limit int) ModulesView {
	refs := course.Units()
	if limit > 0 && len(refs) > limit {
		refs = refs[:limit]
	}
	view := ModulesView{Title: course.Title, Level: course.Audience, Modules: make([]Module, 0, len(refs))}
	for _, ref := range refs {
		view.Modules = append(view.Modules, Module{Title: ref.Unit.Title, Content: ref.Unit.Content})
	}
	return view
}
