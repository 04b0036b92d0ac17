package service

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html/template"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

// ComponentPlan describes the LMS components a course maps onto, one
// vertical per section with an HTML block per unit.
type ComponentPlan struct {
	CourseTitle  string          `json:"course_title"`
	TotalModules int             `json:"total_modules"`
	Components   []PlanComponent `json:"components"`
}

type PlanComponent struct {
	Type         string       `json:"type"`
	ModuleNumber int          `json:"module_number"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Blocks       []PlanBlock  `json:"blocks"`
	Metadata     PlanMetadata `json:"metadata"`
}

type PlanBlock struct {
	Type        string `json:"type"`
	Content     string `json:"content"`
	DisplayName string `json:"display_name"`
}

type PlanMetadata struct {
	Duration           string   `json:"duration"`
	LearningObjectives []string `json:"learning_objectives"`
}

// BuildComponentPlan maps the course tree onto LMS components.
func BuildComponentPlan(course *domain.Course) ComponentPlan {
	plan := ComponentPlan{
		CourseTitle:  course.Title,
		TotalModules: len(course.Sections),
		Components:   make([]PlanComponent, 0, len(course.Sections)),
	}
	for i, section := range course.Sections {
		var objectives []string
		var blocks []PlanBlock
		for _, sub := range section.SubSections {
			objectives = append(objectives, sub.LearningObjectives...)
			for _, unit := range sub.Units {
				blocks = append(blocks, PlanBlock{Type: "html", Content: unit.Content, DisplayName: unit.Title})
			}
		}
		plan.Components = append(plan.Components, PlanComponent{
			Type:         "vertical",
			ModuleNumber: i + 1,
			Title:        section.Title,
			Description:  section.Description,
			Blocks:       nonNil(blocks),
			Metadata: PlanMetadata{
				Duration:           minutesLabel(section.EstimatedTime()),
				LearningObjectives: nonNil(objectives),
			},
		})
	}
	return plan
}

var componentTemplate = template.Must(template.New("component").Parse(`<div class="ai-generated-module">
<div class="module-header">
<h2>{{.Title}}</h2>
{{- if .Description}}
<div class="module-description">{{.Description}}</div>
{{- end}}
</div>
<div class="module-content">
{{.Content}}
</div>
{{- if .Objectives}}
<div class="learning-objectives">
<h3>Learning Objectives</h3>
<ul>
{{- range .Objectives}}
<li>{{.}}</li>
{{- end}}
</ul>
</div>
{{- end}}
{{- if .VideoURL}}
<div class="module-video">
<iframe src="{{.VideoURL}}" allowfullscreen></iframe>
</div>
{{- end}}
{{- if .Duration}}
<div class="module-duration"><strong>Estimated Time:</strong> {{.Duration}}</div>
{{- end}}
</div>`))

// ComponentView is the input of ComponentHTML. Description and Content are
// trusted generated HTML; everything else is escaped.
type ComponentView struct {
	Title       string
	Description template.HTML
	Content     template.HTML
	Objectives  []string
	VideoURL    string
	Duration    string
}

// ComponentHTML renders one LMS HTML component.
func ComponentHTML(v ComponentView) (string, error) {
	var buf bytes.Buffer
	if err := componentTemplate.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render component %q: %w", v.Title, err)
	}
	return buf.String(), nil
}

// OLX is the Open Learning XML layout of a course: sections become
// chapters, subsections sequentials, units verticals with one HTML component.
type OLX struct {
	XMLName     xml.Name     `json:"-" xml:"course"`
	DisplayName string       `json:"display_name" xml:"display_name,attr"`
	Description string       `json:"description" xml:"description,omitempty"`
	Chapters    []OLXChapter `json:"chapters" xml:"chapter"`
}

type OLXChapter struct {
	DisplayName string          `json:"display_name" xml:"display_name,attr"`
	URLName     string          `json:"url_name" xml:"url_name,attr"`
	Sequentials []OLXSequential `json:"sequentials" xml:"sequential"`
}

type OLXSequential struct {
	DisplayName string        `json:"display_name" xml:"display_name,attr"`
	URLName     string        `json:"url_name" xml:"url_name,attr"`
	Verticals   []OLXVertical `json:"verticals" xml:"vertical"`
}

type OLXVertical struct {
	DisplayName string         `json:"display_name" xml:"display_name,attr"`
	URLName     string         `json:"url_name" xml:"url_name,attr"`
	Components  []OLXComponent `json:"components" xml:"html"`
}

type OLXComponent struct {
	Type        string `json:"type" xml:"-"`
	DisplayName string `json:"display_name" xml:"display_name,attr"`
	URLName     string `json:"url_name" xml:"url_name,attr"`
	Data        string `json:"data" xml:",cdata"`
}

// BuildOLX exports the course tree. url_name values are positional so the
// export is stable for a given tree.
func BuildOLX(course *domain.Course) (*OLX, error) {
	olx := &OLX{DisplayName: course.Title, Description: course.Description, Chapters: []OLXChapter{}}
	for si, section := range course.Sections {
		chapter := OLXChapter{
			DisplayName: section.Title,
			URLName:     fmt.Sprintf("chapter_%d", si+1),
			Sequentials: []OLXSequential{},
		}
		for ssi, sub := range section.SubSections {
			seq := OLXSequential{
				DisplayName: sub.Title,
				URLName:     fmt.Sprintf("sequential_%d_%d", si+1, ssi+1),
				Verticals:   []OLXVertical{},
			}
			for ui, unit := range sub.Units {
				suffix := fmt.Sprintf("%d_%d_%d", si+1, ssi+1, ui+1)
				data, err := ComponentHTML(ComponentView{
					Title:      unit.Title,
					Content:    template.HTML(unit.Content),
					Objectives: sub.LearningObjectives,
					VideoURL:   unit.VideoURL,
					Duration:   minutesLabel(unit.TotalTime()),
				})
				if err != nil {
					return nil, domain.NewInternalError("failed to export course", err)
				}
				seq.Verticals = append(seq.Verticals, OLXVertical{
					DisplayName: unit.Title + " - Content",
					URLName:     "vertical_" + suffix,
					Components: []OLXComponent{{
						Type:        "html",
						DisplayName: unit.Title,
						URLName:     "html_" + suffix,
						Data:        data,
					}},
				})
			}
			chapter.Sequentials = append(chapter.Sequentials, seq)
		}
		olx.Chapters = append(olx.Chapters, chapter)
	}
	return olx, nil
}

// XML renders the export as an indented OLX document.
func (o *OLX) XML() ([]byte, error) {
	out, err := xml.MarshalIndent(o, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func minutesLabel(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf("%d min", minutes)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
