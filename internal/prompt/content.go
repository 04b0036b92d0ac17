package prompt

import (
	"fmt"
	"strings"
)

const unitContentPreamble = "You are an expert educator creating HTML-formatted educational content that pairs with video lessons. All content must be in proper HTML format for display in a learning management system."

// UnitContext locates a unit inside its course for content prompts.
type UnitContext struct {
	Course     string
	Section    string
	SubSection string
	Unit       string
	HasVideo   bool
}

// UnitContent builds the instructions for a unit's HTML body.
func UnitContent(uc UnitContext) string {
	var b strings.Builder
	b.WriteString(unitContentPreamble)
	b.WriteString("\n\nCreate a complete, high-quality learning unit for a professional learning platform.\n\n")
	fmt.Fprintf(&b, "Course: %s\nSection: %s\nSubsection: %s\nUnit: %s\n\n", uc.Course, uc.Section, uc.SubSection, uc.Unit)

	b.WriteString("CORE RULES (NON-NEGOTIABLE)\n")
	b.WriteString("1. EVERY unit MUST include text-based explanations. Text is NEVER optional.\n")
	if !uc.HasVideo {
		b.WriteString("2. This unit has NO accompanying video. Expand the explanations and examples accordingly.\n")
	}

	b.WriteString("\nCONTENT DEPTH REQUIREMENTS\n")
	b.WriteString("- Lines must be meaningful instructional content (not filler)\n")
	b.WriteString("- Minimum 60-80 lines of meaningful instructional text\n")
	b.WriteString("- Content must be detailed, structured, and professional\n\n")

	b.WriteString(unitStructure)
	return b.String()
}

const unitStructure = `MANDATORY HTML STRUCTURE (ORDER MATTERS)

<h3>Overview</h3>
- 4-6 long <p> paragraphs explaining the topic from fundamentals
- Use <strong>key terms</strong> and <em>important ideas</em>

<h3>Conceptual Flow</h3>
- Step-by-step explanation with at least one flowchart:
<pre><code>
Input → Processing → Decision → Output
</code></pre>

<h3>Key Concepts Explained</h3>
- Multiple long paragraphs with a deep explanation of each idea

<h3>Practical Examples</h3>
- Real-world use cases

CODING RULE
- If the unit involves programming, algorithms, logic, or data, include at least ONE working example:
<pre><code class="language-python">
# example code here
</code></pre>
- If coding is NOT relevant, do NOT force it

<h3>Visual Aids</h3>
- Include at least TWO diagrams or image placeholders:
<figure>
  <img src="" alt="Diagram explaining key concept" />
  <figcaption>Explanation of the diagram</figcaption>
</figure>

<h3>Common Mistakes & Notes</h3>
- Use <div class="highlight"> for warnings

<h3>Summary & Takeaways</h3>
- 5-7 strong bullet points

OUTPUT RULES
- Output ONLY valid HTML
- NO markdown
- NO <html>, <head>, <body>
- NO external links
- Content must stand alone even WITHOUT video

Return ONLY the final HTML.
`

// LearningObjectives asks for 3-4 measurable objectives as an HTML list.
func LearningObjectives(title, context string) string {
	return fmt.Sprintf(`You are an educational expert. Create clear, specific learning objectives using action verbs in HTML format.

Create 3-4 specific, measurable learning objectives for this educational unit:

Unit: %s
Context: %s

Format each objective as: "By the end of this unit, students will be able to..."
Make them specific, actionable, and measurable.

Return ONLY the HTML structure without any other text:
<ul>
<li>By the end of this unit, students will be able to...</li>
<li>By the end of this unit, students will be able to...</li>
</ul>
`, title, context)
}

// exercisePreviewRunes bounds how much unit content is quoted back.
const exercisePreviewRunes = 200

// Exercises asks for 2-3 practical exercises separated by blank lines.
func Exercises(title, content string) string {
	preview := []rune(content)
	if len(preview) > exercisePreviewRunes {
		preview = preview[:exercisePreviewRunes]
	}
	return fmt.Sprintf(`You are an expert at creating practical, engaging educational exercises.

Based on this unit content, create 2-3 practical exercises:

Unit: %s
Content Preview: %s...

For each exercise, provide:
1. Exercise title
2. Description/instructions
3. Difficulty level (beginner/intermediate/advanced)
4. Estimated time to complete
5. Expected outcome/solution approach

Separate exercises with a single blank line. Make exercises practical and hands-on.
`, title, string(preview))
}
