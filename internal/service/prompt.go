package service

import (
	"fmt"
	"strings"

	"github.com/homeoremedies/remedy-finder/api/internal/dto"
)

const systemPrompt = `You are an expert homeopathic consultant with deep knowledge of homeopathic remedies, materia medica, and constitutional prescribing. Your role is to analyze patient symptoms and recommend multiple appropriate homeopathic medicines.

Important guidelines:
- Provide 3-5 different homeopathic remedy options
- Consider the totality of symptoms, not just isolated complaints
- Match symptom patterns to remedy pictures
- Consider constitutional factors (age, gender, temperament)
- Recommend classical single remedies
- Provide appropriate potencies (typically 6C, 30C, or 200C)
- Include clear dosage instructions
- Emphasize safety and when to seek professional care
- Order recommendations by best match to symptoms

Always structure each recommendation with:
- Remedy name (Latin name + common name if applicable)
- Potency recommendation
- Detailed dosage instructions
- Clear description of why this remedy matches
- Expected benefits
- Important considerations and safety notes`

const notSpecified = "Not specified"

// buildUserPrompt assembles the consultation request. Optional fields
// that are empty are omitted entirely rather than rendered as blank
// lines; age and gender always appear, defaulting to "Not specified".
func buildUserPrompt(req dto.RecommendRequest) string {
	var b strings.Builder
	b.WriteString("Please analyze these symptoms and recommend 3-5 appropriate homeopathic medicines:\n\n")
	fmt.Fprintf(&b, "Symptoms: %s\n", strings.TrimSpace(req.Symptoms))

	if severity := strings.TrimSpace(req.Severity); severity != "" {
		fmt.Fprintf(&b, "Severity: %s\n", severity)
	}
	if conditions := strings.TrimSpace(req.ExistingConditions); conditions != "" {
		fmt.Fprintf(&b, "Existing conditions: %s\n", conditions)
	}
	if info := strings.TrimSpace(req.AdditionalInfo); info != "" {
		fmt.Fprintf(&b, "Additional information: %s\n", info)
	}
	fmt.Fprintf(&b, "Age: %s\n", defaultIfEmpty(req.Age, notSpecified))
	fmt.Fprintf(&b, "Gender: %s\n", defaultIfEmpty(req.Gender, notSpecified))

	b.WriteString("\nProvide 3-5 homeopathic medicine recommendations, ordered by best match.")
	return b.String()
}

func defaultIfEmpty(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
