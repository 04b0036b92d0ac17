package prompt

import (
	"fmt"
	"strings"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

// StructurePreamble is the role text placed in front of the structure prompt.
const StructurePreamble = "You are an expert curriculum designer. Create comprehensive course structures with sections, subsections, and units following educational best practices."

// StructureRequest carries everything the skeleton prompt depends on.
type StructureRequest struct {
	Title         string
	Audience      string
	Duration      domain.Duration
	Components    []string
	Reference     string // optional extracted source material
	ExcerptBudget int
}

// Structure builds the skeleton generation instructions.
func Structure(req StructureRequest) string {
	layout := LayoutFor(req.Duration)
	var b strings.Builder

	b.WriteString(StructurePreamble)
	b.WriteString("\n\n")
	b.WriteString("Return ONLY valid JSON with a top-level key named \"sections\". Do not rename it.\n")

	if ref := strings.TrimSpace(req.Reference); ref != "" {
		b.WriteString("\nIMPORTANT:\n")
		b.WriteString("The user has provided reference material.\n")
		b.WriteString("You MUST prioritize this content when designing the course.\n")
		b.WriteString("Do NOT introduce topics that are not supported by this material.\n")
		b.WriteString("You may reorganize, expand, and clarify concepts, but stay faithful to the source.\n\n")
		b.WriteString("REFERENCE MATERIAL (excerpt):\n\n")
		b.WriteString(Excerpt(ref, req.ExcerptBudget))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nCreate a comprehensive course structure for: %q\n\n", req.Title)
	b.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Target Audience: %s (%s)\n", req.Audience, Complexity(req.Audience))
	fmt.Fprintf(&b, "- Total Duration: %s\n", DurationLabel(req.Duration))
	fmt.Fprintf(&b, "- Content Focus: %s\n", ContentFocus(req.Components))
	fmt.Fprintf(&b, "- Assessment Strategy: %s\n\n", AssessmentGuidance(req.Audience))

	fmt.Fprintf(&b, "MANDATORY STRUCTURE - EXACTLY %d SECTIONS:\n", SectionCount)
	for i, theme := range SectionThemes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, theme)
	}

	b.WriteString("\nEach section must have:\n")
	fmt.Fprintf(&b, "- Exactly %d subsections\n", layout.SubsectionsPerSection)
	fmt.Fprintf(&b, "- Each subsection must have exactly %d units\n", layout.UnitsPerSubsection)
	fmt.Fprintf(&b, "- Each unit time: %s minutes total\n", layout.UnitMinutes)
	b.WriteString("- Content type: text_video (combination of text and video)\n\n")

	b.WriteString("Content Adaptation Guidelines:\n")
	for _, g := range AudienceGuidelines(req.Audience) {
		fmt.Fprintf(&b, "- %s\n", g)
	}

	fmt.Fprintf(&b, "\nExample for %q:\n", req.Title)
	fmt.Fprintf(&b, "Section 1: \"Introduction to %s and Fundamentals\"\n", req.Title)
	b.WriteString("- Subsection: \"Getting Started and Overview\"\n")
	fmt.Fprintf(&b, "  - Unit: \"What is %s? Applications and Importance\" (%s min)\n", req.Title, layout.MinMinutes())
	fmt.Fprintf(&b, "  - Unit: \"Setting Up Environment and Tools\" (%s min)\n", layout.MaxMinutes())
	if layout.UnitsPerSubsection >= 3 {
		fmt.Fprintf(&b, "  - Unit: \"Basic Terminology and Concepts\" (%s min)\n", layout.MaxMinutes())
	}

	b.WriteString("\nIMPORTANT: Format all descriptions in HTML using <p>, <strong>, <em> tags.\n\n")
	b.WriteString(depthRequirements)
	b.WriteString("\nReturn ONLY a valid JSON object exactly matching this schema:\n")
	b.WriteString(structureSchema)
	return b.String()
}

const depthRequirements = `CONTENT DEPTH REQUIREMENTS (MANDATORY):
- SECTION descriptions must be LONG and DETAILED (4-6 paragraphs) explaining the overall theory, why the topic matters, real-world relevance and what learners will gain.
- SUBSECTION descriptions must be MEDIUM-LONG (3-4 paragraphs) that break down concepts, explain relationships and provide conceptual examples.
- UNIT content must be VERY DETAILED (step-by-step explanations). Units are where practical depth, workflows, and examples live.
- Text is PRIMARY at ALL levels.
- Videos are OPTIONAL and ONLY for UNITS.
- NEVER reduce text because a video exists.
`

const structureSchema = `{
  "sections": [
    {
      "title": "Section Title",
      "description": "<p>Brief description explaining what this section covers with <strong>key concepts</strong>.</p>",
      "subsections": [
        {
          "title": "Subsection Title",
          "description": "<p>Brief description of subtopic with <em>emphasis</em> on important points.</p>",
          "units": [
            {
              "title": "Unit Title",
              "content_type": "text_video",
              "video_required": true
            }
          ]
        }
      ]
    }
  ]
}
`
