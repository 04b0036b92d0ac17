package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Duration is the course length bucket requested by the caller.
type Duration string

const (
	DurationShort  Duration = "short"
	DurationMedium Duration = "medium"
	DurationLong   Duration = "long"
)

// ParseDuration maps a free-text value onto a known bucket.
func ParseDuration(s string) (Duration, bool) {
	switch Duration(s) {
	case DurationShort, DurationMedium, DurationLong:
		return Duration(s), true
	}
	return "", false
}

// ContentType describes how a unit is presented.
type ContentType string

const (
	ContentTextVideo ContentType = "text_video"
	ContentText      ContentType = "text"
	ContentVideo     ContentType = "video"
	ContentImage     ContentType = "image"
	ContentExercise  ContentType = "exercise"
)

const (
	AssessmentMixed     = "mixed"
	AssessmentFinalExam = "final_exam"
)

// Defaults applied when a serialized course omits optional fields.
const (
	DefaultReadingTime    = 5
	DefaultPassingScore   = 70
	DefaultTimeLimit      = 30
	DefaultContentType    = ContentTextVideo
	DefaultAudience       = "beginner"
	DefaultDuration       = DurationMedium
	DefaultAssessmentType = AssessmentMixed
)

// NewID returns a fresh globally unique entity identifier.
func NewID() string {
	return uuid.NewString()
}

// Unit is a single learning unit inside a subsection.
type Unit struct {
	ID            string
	Title         string
	Content       string
	ContentType   ContentType
	VideoURL      string // embeddable form only, empty when there is no video
	VideoDuration int
	ImageURLs     []string
	ReadingTime   int
	Exercises     []map[string]any
	Resources     []map[string]any
}

// NewUnit creates an empty unit with default timings.
func NewUnit(title string, contentType ContentType) *Unit {
	if contentType == "" {
		contentType = DefaultContentType
	}
	return &Unit{
		ID:          NewID(),
		Title:       title,
		ContentType: contentType,
		ReadingTime: DefaultReadingTime,
	}
}

// TotalTime is the reading time plus the video length.
func (u *Unit) TotalTime() int {
	return u.ReadingTime + u.VideoDuration
}

// AddResource appends an audit record. Resources are never rewritten.
func (u *Unit) AddResource(resource map[string]any) {
	u.Resources = append(u.Resources, resource)
}

// SubSection groups units.
type SubSection struct {
	ID                 string
	Title              string
	Description        string
	Units              []*Unit
	LearningObjectives []string

	estimatedTime int
}

// NewSubSection creates an empty subsection.
func NewSubSection(title, description string) *SubSection {
	return &SubSection{ID: NewID(), Title: title, Description: description}
}

// AddUnit appends the unit and refreshes the time rollup.
func (s *SubSection) AddUnit(u *Unit) {
	s.Units = append(s.Units, u)
	s.Recompute()
}

// Recompute rebuilds estimated time from the units.
func (s *SubSection) Recompute() int {
	total := 0
	for _, u := range s.Units {
		total += u.TotalTime()
	}
	s.estimatedTime = total
	return total
}

// EstimatedTime in minutes.
func (s *SubSection) EstimatedTime() int {
	return s.estimatedTime
}

// Section is a top level course section.
type Section struct {
	ID            string
	Title         string
	Description   string
	SubSections   []*SubSection
	Prerequisites []string

	estimatedTime int
}

// NewSection creates an empty section.
func NewSection(title, description string) *Section {
	return &Section{ID: NewID(), Title: title, Description: description}
}

// AddSubSection appends the subsection and refreshes the time rollup.
func (s *Section) AddSubSection(sub *SubSection) {
	s.SubSections = append(s.SubSections, sub)
	s.Recompute()
}

// Recompute refreshes every child rollup and then this section's.
func (s *Section) Recompute() int {
	total := 0
	for _, sub := range s.SubSections {
		total += sub.Recompute()
	}
	s.estimatedTime = total
	return total
}

// EstimatedTime in minutes.
func (s *Section) EstimatedTime() int {
	return s.estimatedTime
}

// Assessment is a quiz attached to the course, optionally scoped to a section.
type Assessment struct {
	ID             string
	Title          string
	AssessmentType string
	Questions      []map[string]any
	SectionID      string // weak reference, never an owning pointer
	SubSectionID   string
	TimeLimit      int
	PassingScore   int
}

// NewAssessment creates an assessment with default limits.
func NewAssessment(title, assessmentType string) *Assessment {
	if assessmentType == "" {
		assessmentType = DefaultAssessmentType
	}
	return &Assessment{
		ID:             NewID(),
		Title:          title,
		AssessmentType: assessmentType,
		TimeLimit:      DefaultTimeLimit,
		PassingScore:   DefaultPassingScore,
	}
}

// Course is the root of the generated document tree.
type Course struct {
	ID          string
	Title       string
	Description string
	Audience    string
	Duration    Duration
	Sections    []*Section
	Assessments []*Assessment
	Metadata    map[string]any
	CreatedAt   time.Time
}

// NewCourse creates an empty course.
func NewCourse(title, audience string, duration Duration) *Course {
	return &Course{
		ID:        NewID(),
		Title:     title,
		Audience:  audience,
		Duration:  duration,
		Metadata:  map[string]any{},
		CreatedAt: time.Now().UTC(),
	}
}

func (c *Course) AddSection(s *Section) {
	c.Sections = append(c.Sections, s)
}

func (c *Course) AddAssessment(a *Assessment) {
	c.Assessments = append(c.Assessments, a)
}

// EstimatedTotalTime sums section rollups. It is derived, never stored.
func (c *Course) EstimatedTotalTime() int {
	total := 0
	for _, s := range c.Sections {
		total += s.EstimatedTime()
	}
	return total
}

// RefreshTimes recomputes every rollup in the tree. Safe to call repeatedly.
func (c *Course) RefreshTimes() {
	for _, s := range c.Sections {
		s.Recompute()
	}
}

// SectionByID resolves a weak section reference.
func (c *Course) SectionByID(id string) (*Section, bool) {
	for _, s := range c.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// SubSectionByID resolves a subsection inside the given section.
func (c *Course) SubSectionByID(sectionID, subSectionID string) (*SubSection, bool) {
	s, ok := c.SectionByID(sectionID)
	if !ok {
		return nil, false
	}
	for _, sub := range s.SubSections {
		if sub.ID == subSectionID {
			return sub, true
		}
	}
	return nil, false
}

// AssessmentsForSection returns the assessments that reference the section.
func (c *Course) AssessmentsForSection(sectionID string) []*Assessment {
	var out []*Assessment
	for _, a := range c.Assessments {
		if a.SectionID == sectionID {
			out = append(out, a)
		}
	}
	return out
}

// UnitRef locates a unit together with its ancestors.
type UnitRef struct {
	Section    *Section
	SubSection *SubSection
	Unit       *Unit
}

// Units lists every unit in document order: section, then subsection, then unit.
func (c *Course) Units() []UnitRef {
	var refs []UnitRef
	for _, s := range c.Sections {
		for _, sub := range s.SubSections {
			for _, u := range sub.Units {
				refs = append(refs, UnitRef{Section: s, SubSection: sub, Unit: u})
			}
		}
	}
	return refs
}

// MarshalJSON writes the serialized course format including rollups.
func (c *Course) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToMap())
}

// UnmarshalJSON accepts the serialized course format, tolerating missing fields.
func (c *Course) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := CourseFromMap(raw)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}
