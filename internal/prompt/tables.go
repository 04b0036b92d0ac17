// Package prompt builds the instruction texts sent to the generation service.
// Everything here is pure: no I/O, no clocks, no randomness.
package prompt

import (
	"strings"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

// SectionCount is fixed; every course is built from the same five themes.
const SectionCount = 5

// SectionThemes are the mandatory section themes, in order.
var SectionThemes = [SectionCount]string{
	"Introduction & Fundamentals",
	"Core Concepts & Theory",
	"Practical Application & Skills",
	"Advanced Topics & Integration",
	"Mastery & Real-World Implementation",
}

// Layout is the per-duration shape of the course skeleton.
type Layout struct {
	SubsectionsPerSection int
	UnitsPerSubsection    int
	UnitMinutes           string
	Label                 string
}

// MinMinutes and MaxMinutes split the unit minute range.
func (l Layout) MinMinutes() string {
	lo, _, _ := strings.Cut(l.UnitMinutes, "-")
	return lo
}

func (l Layout) MaxMinutes() string {
	_, hi, ok := strings.Cut(l.UnitMinutes, "-")
	if !ok {
		return l.UnitMinutes
	}
	return hi
}

// Layouts maps each duration to its skeleton shape. New tiers are additive.
var Layouts = map[domain.Duration]Layout{
	domain.DurationShort:  {SubsectionsPerSection: 2, UnitsPerSubsection: 2, UnitMinutes: "8-12", Label: "1-2 hours"},
	domain.DurationMedium: {SubsectionsPerSection: 2, UnitsPerSubsection: 3, UnitMinutes: "10-15", Label: "3-5 hours"},
	domain.DurationLong:   {SubsectionsPerSection: 3, UnitsPerSubsection: 3, UnitMinutes: "12-18", Label: "6+ hours"},
}

// LayoutFor falls back to the long layout for unknown durations.
func LayoutFor(d domain.Duration) Layout {
	if l, ok := Layouts[d]; ok {
		return l
	}
	return Layouts[domain.DurationLong]
}

// DurationLabel is the human readable duration, or the raw value when unknown.
func DurationLabel(d domain.Duration) string {
	if l, ok := Layouts[d]; ok {
		return l.Label
	}
	return string(d)
}

// Bucket is a normalized audience level.
type Bucket string

const (
	BucketBeginner     Bucket = "beginner"
	BucketIntermediate Bucket = "intermediate"
	BucketAdvanced     Bucket = "advanced"
	BucketGeneral      Bucket = "general"
)

// audienceVocabulary is checked in order; the first bucket with a matching
// term wins.
var audienceVocabulary = []struct {
	bucket Bucket
	terms  []string
}{
	{BucketBeginner, []string{"beginner", "novice", "newcomer", "starter"}},
	{BucketIntermediate, []string{"intermediate", "some experience", "mid"}},
	{BucketAdvanced, []string{"advanced", "expert", "professional", "senior"}},
}

// AudienceBucket classifies a free-text audience label.
func AudienceBucket(label string) Bucket {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return BucketGeneral
	}
	for _, v := range audienceVocabulary {
		for _, term := range v.terms {
			if strings.Contains(l, term) {
				return v.bucket
			}
		}
	}
	return BucketGeneral
}

var complexityText = map[Bucket]string{
	BucketBeginner:     "Basic level with step-by-step explanations",
	BucketIntermediate: "Intermediate level with practical examples",
	BucketAdvanced:     "Advanced level with in-depth analysis",
	BucketGeneral:      "Adaptive level based on audience needs",
}

var assessmentGuidance = map[Bucket]string{
	BucketBeginner:     "Basic quizzes and practical exercises with immediate feedback",
	BucketIntermediate: "Mixed assessments including projects and scenario-based questions",
	BucketAdvanced:     "Complex case studies and real-world problem solving",
	BucketGeneral:      "Adaptive assessments matching learner progress",
}

var audienceGuidelines = map[Bucket][]string{
	BucketBeginner: {
		"Use simple, clear language and avoid jargon",
		"Provide step-by-step instructions",
		"Include plenty of examples and practice",
		"Build confidence through progressive difficulty",
	},
	BucketIntermediate: {
		"Balance theory with practical application",
		"Reference prior knowledge appropriately",
		"Include challenging but achievable tasks",
		"Connect concepts to real-world scenarios",
	},
	BucketAdvanced: {
		"Focus on advanced concepts and edge cases",
		"Encourage critical thinking and analysis",
		"Include industry best practices",
		"Provide opportunities for innovation and exploration",
	},
	BucketGeneral: {
		"Adapt content complexity to learner needs",
		"Provide multiple learning paths",
		"Include both foundational and advanced materials",
	},
}

func Complexity(audience string) string {
	return complexityText[AudienceBucket(audience)]
}

func AssessmentGuidance(audience string) string {
	return assessmentGuidance[AudienceBucket(audience)]
}

func AudienceGuidelines(audience string) []string {
	return audienceGuidelines[AudienceBucket(audience)]
}

var componentFocus = []struct {
	component string
	focus     string
}{
	{"text", "detailed written explanations"},
	{"video", "visual demonstrations and tutorials"},
	{"images", "visual aids and diagrams"},
	{"audio", "audio explanations and discussions"},
}

// ContentFocus turns the requested component kinds into focus phrases.
func ContentFocus(components []string) string {
	requested := make(map[string]bool, len(components))
	for _, c := range components {
		requested[strings.ToLower(strings.TrimSpace(c))] = true
	}
	var parts []string
	for _, cf := range componentFocus {
		if requested[cf.component] {
			parts = append(parts, cf.focus)
		}
	}
	if len(parts) == 0 {
		return "multimedia learning experience"
	}
	return strings.Join(parts, ", ")
}
