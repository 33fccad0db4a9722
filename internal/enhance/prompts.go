package enhance

import (
	"fmt"
	"strings"

	"github.com/jonathan/docwriter/internal/record"
)

// generationPrompt builds the prompt used during report assembly, asking the
// model to expand a bound section template into finished prose. A non-empty
// instructions string is appended as an additional requirement.
func generationPrompt(sectionTitle, content, instructions string, rec record.Record) string {
	fields := record.MapFields(rec)
	prompt := fmt.Sprintf(`You are an enterprise architect creating a professional %s section for an application profile report.

Application Details:
- Name: %s
- Description: %s
- Organization: %s
- Owner: %s
- Category: %s
- Tier: %s

Current content template:
%s

Please enhance this content to be more detailed, professional, and specific to this application. Maintain the same structure but expand with relevant technical and business insights. Keep it concise but informative (2-3 paragraphs maximum).

Return only the enhanced content, no additional formatting or explanations.`,
		sectionTitle,
		fields["application_name"],
		fields["application_description"],
		fields["organization_name"],
		fields["application_owner"],
		fields["application_category"],
		fields["application_tier"],
		content)

	if instructions = strings.TrimSpace(instructions); instructions != "" {
		prompt += fmt.Sprintf("\n\nAdditional instructions from the report requester: %s", instructions)
	}
	return prompt
}

// Named enhancement styles accepted by stylePrompt. Any other request is
// passed through as a free-form task.
const (
	StyleImproveWriting  = "improve writing quality and clarity"
	StyleFixGrammar      = "fix spelling and grammar errors"
	StyleMoreTechnical   = "make the content more technical and detailed"
	StyleExecutive       = "simplify the language for executive audience"
	StyleBusinessBenefit = "focus on business benefits and roi"
	StyleSecurity        = "add security and compliance aspects"
	StyleLonger          = "make the content longer and more comprehensive"
	StyleShorter         = "make the content shorter and more concise"
)

// stylePrompt builds a post-generation enhancement prompt. The shared
// preamble instructs the model to keep curly brace placeholders verbatim so
// the edited section stays re-renderable.
func stylePrompt(request, sectionTitle, content, appName, orgName, appID string) string {
	base := fmt.Sprintf(`You are an enterprise architect helping to improve a report section.

CRITICAL INSTRUCTION: The content contains placeholder variables like {application_name}, {organization_name}, and {application_id}.
YOU MUST PRESERVE THESE EXACT PLACEHOLDER FORMATS IN YOUR RESPONSE.
DO NOT REPLACE {application_name} with %q
DO NOT REPLACE {organization_name} with %q
DO NOT REPLACE {application_id} with %q
KEEP ALL CURLY BRACE PLACEHOLDERS EXACTLY AS THEY ARE.

Section: %s
Application Context: %s (%s)

Current Content:
%s
`, appName, orgName, appID, sectionTitle, appName, orgName, content)

	switch strings.ToLower(strings.TrimSpace(request)) {
	case StyleImproveWriting:
		return base + `
Task: Improve the writing quality and clarity of this content.

Instructions:
- Enhance sentence structure and flow
- Use clearer, more professional language
- Eliminate redundancy and improve conciseness
- Maintain the same technical level and information
- Keep the same length (2-3 paragraphs)

Return only the improved content with better writing quality.`

	case StyleFixGrammar:
		return base + `
Task: Fix any spelling and grammar errors in this content.

Instructions:
- Correct spelling mistakes
- Fix grammatical errors
- Improve punctuation
- Ensure proper sentence structure
- Keep all original information and meaning intact

Return only the corrected content.`

	case StyleMoreTechnical:
		return base + `
Task: Make this content more technical and detailed.

Instructions:
- Add technical depth and architectural details
- Include specific technical terminology
- Expand on technical aspects and implementation details
- Add relevant technical considerations
- Maintain enterprise architecture perspective

Return the enhanced technical content.`

	case StyleExecutive:
		return base + `
Task: Simplify this content for an executive audience.

Instructions:
- Use business-friendly language
- Focus on business value and outcomes
- Reduce technical jargon
- Emphasize strategic importance
- Keep it concise and executive-friendly

Return the simplified content suitable for executives.`

	case StyleBusinessBenefit:
		return base + `
Task: Rewrite this content to focus on business benefits and ROI.

Instructions:
- Emphasize business value and return on investment
- Highlight cost savings and efficiency gains
- Focus on competitive advantages
- Include business impact statements
- Connect technical features to business outcomes

Return content focused on business benefits and ROI.`

	case StyleSecurity:
		return base + `
Task: Enhance this content by adding security and compliance aspects.

Instructions:
- Include relevant security considerations
- Add compliance and regulatory aspects
- Mention data protection and privacy
- Include risk management elements
- Maintain the original content while adding security context

Return the enhanced content with security and compliance aspects.`

	case StyleLonger:
		return base + `
Task: Expand this content to be longer and more comprehensive.

Instructions:
- Add more detailed explanations
- Include additional relevant information
- Expand on key points with examples
- Add context and background information
- Aim for 4-5 paragraphs instead of 2-3

Return the expanded, more comprehensive content.`

	case StyleShorter:
		return base + `
Task: Make this content shorter and more concise.

Instructions:
- Remove unnecessary words and phrases
- Combine related sentences
- Focus on the most important points
- Maintain all key information
- Aim for 1-2 paragraphs maximum

Return the shortened, more concise content.`

	default:
		return base + fmt.Sprintf(`
Task: %s

Instructions:
- Apply the requested enhancement to the content
- Maintain professional tone and enterprise context
- Keep the content relevant to the %s section
- Preserve the core information and meaning

Return only the enhanced content.`, request, sectionTitle)
	}
}
