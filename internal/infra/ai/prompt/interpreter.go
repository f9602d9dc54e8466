package prompt

import "fmt"

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are a clinical microbiologist specializing in antimicrobial resistance surveillance. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- Base every statement strictly on the analysis report provided by the user; do not invent detections.
- Use lowercase concern values: critical, high, medium, low, none.
- key_findings is an array of concise strings, one per notable detected element.
- Keep containment_advice actionable for a hospital infection-control team.

Schema (example with empty values):
{
  "summary": "<string>",
  "concern_level": "<critical|high|medium|low|none>",
  "key_findings": ["<string>"],
  "clinical_significance": "<string>",
  "containment_advice": "<string>",
  "follow_up_tests": ["<string>"]
}`
}

// GetUserPrompt builds a compact user message around a rendered report.
func GetUserPrompt(report string) string {
	return fmt.Sprintf("Interpret this HGT risk analysis report and respond with the JSON per schema. Report: %s", report)
}
