package domain

import (
	"time"

	"github.com/spf13/cast"
)

// ToMap converts the course into its serialized map form. Rollups are
// computed here and never read back.
func (c *Course) ToMap() map[string]any {
	sections := make([]map[string]any, 0, len(c.Sections))
	for _, s := range c.Sections {
		sections = append(sections, s.ToMap())
	}
	assessments := make([]map[string]any, 0, len(c.Assessments))
	for _, a := range c.Assessments {
		assessments = append(assessments, a.ToMap())
	}
	metadata := make(map[string]any, len(c.Metadata))
	for k, v := range c.Metadata {
		metadata[k] = v
	}

	return map[string]any{
		"id":                   c.ID,
		"title":                c.Title,
		"description":          c.Description,
		"audience":             c.Audience,
		"duration":             string(c.Duration),
		"sections":             sections,
		"assessments":          assessments,
		"metadata":             metadata,
		"created_at":           c.CreatedAt.UTC().Format(time.RFC3339Nano),
		"estimated_total_time": c.EstimatedTotalTime(),
		"total_sections":       len(c.Sections),
		"total_assessments":    len(c.Assessments),
	}
}

func (s *Section) ToMap() map[string]any {
	subs := make([]map[string]any, 0, len(s.SubSections))
	for _, sub := range s.SubSections {
		subs = append(subs, sub.ToMap())
	}
	return map[string]any{
		"id":             s.ID,
		"title":          s.Title,
		"description":    s.Description,
		"subsections":    subs,
		"estimated_time": s.EstimatedTime(),
		"prerequisites":  copyStrings(s.Prerequisites),
	}
}

func (s *SubSection) ToMap() map[string]any {
	units := make([]map[string]any, 0, len(s.Units))
	for _, u := range s.Units {
		units = append(units, u.ToMap())
	}
	return map[string]any{
		"id":                  s.ID,
		"title":               s.Title,
		"description":         s.Description,
		"units":               units,
		"estimated_time":      s.EstimatedTime(),
		"learning_objectives": copyStrings(s.LearningObjectives),
	}
}

func (u *Unit) ToMap() map[string]any {
	return map[string]any{
		"id":             u.ID,
		"title":          u.Title,
		"content":        u.Content,
		"content_type":   string(u.ContentType),
		"video_url":      optionalString(u.VideoURL),
		"video_duration": u.VideoDuration,
		"image_urls":     copyStrings(u.ImageURLs),
		"reading_time":   u.ReadingTime,
		"exercises":      copyRecords(u.Exercises),
		"resources":      copyRecords(u.Resources),
		"total_time":     u.TotalTime(),
	}
}

func (a *Assessment) ToMap() map[string]any {
	return map[string]any{
		"id":              a.ID,
		"title":           a.Title,
		"assessment_type": a.AssessmentType,
		"questions":       copyRecords(a.Questions),
		"section_id":      optionalString(a.SectionID),
		"subsection_id":   optionalString(a.SubSectionID),
		"time_limit":      a.TimeLimit,
		"passing_score":   a.PassingScore,
	}
}

// CourseFromMap rebuilds a course from its serialized form. Missing optional
// fields take their documented defaults and stored rollups are ignored.
func CourseFromMap(m map[string]any) (*Course, error) {
	if m == nil {
		return nil, NewInvalidInputError("course data is empty")
	}

	duration, ok := ParseDuration(cast.ToString(m["duration"]))
	if !ok {
		duration = DefaultDuration
	}
	c := &Course{
		ID:          idOrNew(m),
		Title:       cast.ToString(m["title"]),
		Description: cast.ToString(m["description"]),
		Audience:    stringOr(m, "audience", DefaultAudience),
		Duration:    duration,
		Metadata:    cast.ToStringMap(m["metadata"]),
		CreatedAt:   time.Now().UTC(),
	}
	if raw := cast.ToString(m["created_at"]); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, NewValidationError(ValidationErrors{NewInvalidFormatError("created_at", raw, "RFC3339 timestamp")})
		}
		c.CreatedAt = t.UTC()
	}

	for _, sm := range records(m["sections"]) {
		c.AddSection(sectionFromMap(sm))
	}
	for _, am := range records(m["assessments"]) {
		c.AddAssessment(assessmentFromMap(am))
	}
	return c, nil
}

func sectionFromMap(m map[string]any) *Section {
	s := &Section{
		ID:            idOrNew(m),
		Title:         cast.ToString(m["title"]),
		Description:   cast.ToString(m["description"]),
		Prerequisites: stringsOf(m["prerequisites"]),
	}
	for _, sm := range records(m["subsections"]) {
		s.AddSubSection(subSectionFromMap(sm))
	}
	return s
}

func subSectionFromMap(m map[string]any) *SubSection {
	s := &SubSection{
		ID:                 idOrNew(m),
		Title:              cast.ToString(m["title"]),
		Description:        cast.ToString(m["description"]),
		LearningObjectives: stringsOf(m["learning_objectives"]),
	}
	for _, um := range records(m["units"]) {
		s.AddUnit(unitFromMap(um))
	}
	return s
}

func unitFromMap(m map[string]any) *Unit {
	contentType := ContentType(stringOr(m, "content_type", string(DefaultContentType)))
	return &Unit{
		ID:            idOrNew(m),
		Title:         cast.ToString(m["title"]),
		Content:       cast.ToString(m["content"]),
		ContentType:   contentType,
		VideoURL:      cast.ToString(m["video_url"]),
		VideoDuration: intOr(m, "video_duration", 0),
		ImageURLs:     stringsOf(m["image_urls"]),
		ReadingTime:   intOr(m, "reading_time", DefaultReadingTime),
		Exercises:     records(m["exercises"]),
		Resources:     records(m["resources"]),
	}
}

func assessmentFromMap(m map[string]any) *Assessment {
	return &Assessment{
		ID:             idOrNew(m),
		Title:          cast.ToString(m["title"]),
		AssessmentType: stringOr(m, "assessment_type", DefaultAssessmentType),
		Questions:      records(m["questions"]),
		SectionID:      cast.ToString(m["section_id"]),
		SubSectionID:   cast.ToString(m["subsection_id"]),
		TimeLimit:      intOr(m, "time_limit", DefaultTimeLimit),
		PassingScore:   intOr(m, "passing_score", DefaultPassingScore),
	}
}

func idOrNew(m map[string]any) string {
	if id := cast.ToString(m["id"]); id != "" {
		return id
	}
	return NewID()
}

func stringOr(m map[string]any, key, def string) string {
	if s := cast.ToString(m[key]); s != "" {
		return s
	}
	return def
}

func intOr(m map[string]any, key string, def int) int {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

// records accepts both decoded JSON ([]any) and in-memory ([]map[string]any)
// sequences and drops entries that are not mappings.
func records(v any) []map[string]any {
	var out []map[string]any
	switch list := v.(type) {
	case []map[string]any:
		for _, item := range list {
			if item != nil {
				out = append(out, item)
			}
		}
	case []any:
		for _, item := range list {
			if rec, ok := item.(map[string]any); ok {
				out = append(out, rec)
			}
		}
	}
	return out
}

func stringsOf(v any) []string {
	if v == nil {
		return nil
	}
	return cast.ToStringSlice(v)
}

func optionalString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyRecords(in []map[string]any) []map[string]any {
	out := make([]map[string]any, len(in))
	copy(out, in)
	return out
}
