package prompt

import (
	"fmt"
	"strings"
)

// QuestionKinds are the question types the assessment prompts ask for.
var QuestionKinds = []string{"multiple-choice", "checkbox", "text-input", "dropdown", "numerical"}

func kindsOrDefault(kinds []string) string {
	if len(kinds) == 0 {
		kinds = QuestionKinds
	}
	return strings.Join(kinds, ", ")
}

// SectionAssessment builds the instructions for a 5-8 question section quiz.
func SectionAssessment(course, section string, kinds []string) string {
	return fmt.Sprintf(`You are an expert at creating educational assessments. Create challenging but fair questions that test understanding. IMPORTANT: All text content must be formatted in HTML using proper tags like <p>, <strong>, <em>, <code>, etc.

Create an assessment for this course section:

Course: %s
Section: %s
Assessment Types: %s

Generate a mix of questions using the specified assessment types:
- multiple-choice: 4 options, 1 correct answer
- checkbox: 4-6 options, 2-3 correct answers
- text-input: Short answer questions (1-3 sentences)
- dropdown: 4-5 options in dropdown format
- numerical: Math/calculation problems with numeric answers

Create 5-8 questions total, mixing the requested types.
Ensure each question tests comprehension, application, or analysis.

Format ALL question text, options, and explanations in HTML.

Return JSON format with HTML content:
%s`, course, section, kindsOrDefault(kinds), questionSchema)
}

// FinalAssessment builds the instructions for the 10-15 question final exam.
func FinalAssessment(course string, sections []string, kinds []string) string {
	return fmt.Sprintf(`You are an expert at creating comprehensive final exams. Create questions that test both knowledge and practical application.

Create a comprehensive final assessment for this course:

Course: %s
Sections Covered: %s
Assessment Types: %s

Create a final exam with 10-15 questions that:
1. Cover all major topics from the course
2. Test both knowledge and application
3. Use a mix of the specified assessment types
4. Include some challenging synthesis questions

Return JSON with a "questions" array using this shape:
%s`, course, strings.Join(sections, ", "), kindsOrDefault(kinds), questionSchema)
}

// SingleQuestion builds the instructions for one standalone question.
func SingleQuestion(kind, topic, difficulty string) string {
	if difficulty == "" {
		difficulty = "medium"
	}
	return fmt.Sprintf(`You are an expert question writer. Create clear, educational questions.

Create a %s difficulty %s question about %s.

Question Type Guidelines:
- multiple-choice: 4 options, only 1 correct
- checkbox: 2-4 correct answers from 5-6 options
- text-input: Short answer (1-3 sentences)
- dropdown: Select best option from 4-5 choices
- numerical: Math problem with numeric answer

Return a single JSON object with at least "type" and "question" keys.
`, difficulty, kind, topic)
}

const questionSchema = `{
  "questions": [
    {
      "id": "q1",
      "type": "multiple-choice",
      "question": "<p>What is the primary purpose of <strong>key concept</strong>?</p>",
      "options": ["<p>Option A</p>", "<p>Option B</p>", "<p>Option C</p>", "<p>Option D</p>"],
      "correct_answer": "<p>Option A</p>",
      "explanation": "<p>This is correct because <strong>explanation</strong>.</p>",
      "difficulty": "medium"
    },
    {
      "id": "q2",
      "type": "checkbox",
      "question": "<p>Which of the following are <strong>key characteristics</strong>?</p>",
      "options": ["<p>Option 1</p>", "<p>Option 2</p>", "<p>Option 3</p>", "<p>Option 4</p>"],
      "correct_answers": ["<p>Option 1</p>", "<p>Option 3</p>"],
      "explanation": "<p><strong>Explanation</strong>.</p>"
    },
    {
      "id": "q3",
      "type": "text-input",
      "question": "<p>Explain the concept of <em>key term</em> in your own words.</p>",
      "correct_answer": "<p>Expected answer</p>",
      "explanation": "<p>This answer demonstrates understanding of <strong>key concepts</strong>.</p>"
    },
    {
      "id": "q4",
      "type": "dropdown",
      "question": "<p>Select the correct <strong>method</strong> for this scenario:</p>",
      "options": ["<p>Select...</p>", "<p>Option A</p>", "<p>Option B</p>", "<p>Option C</p>"],
      "correct_answer": "<p>Option B</p>",
      "explanation": "<p><strong>Explanation</strong>.</p>"
    },
    {
      "id": "q5",
      "type": "numerical",
      "question": "<p>Calculate: What is <strong>2 + 2</strong>?</p>",
      "correct_answer": "4",
      "tolerance": "0",
      "explanation": "<p>Basic arithmetic: <em>2 + 2 = 4</em></p>"
    }
  ]
}
`
