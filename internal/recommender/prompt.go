package recommender

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/scheme-recommender/internal/models"
)

const defaultLocation = "the user's state"

// BuildPrompt renders the recommendation prompt for p. The headings it asks
// for are the ones the result classifier splits on. When passages are given
// the model is told to pick schemes from them.
func BuildPrompt(p models.Profile, passages []string) (string, error) {
	location := strings.TrimSpace(p.Demographics.Location)
	if location == "" {
		location = defaultLocation
	}

	input, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}

	source := ""
	if len(passages) > 0 {
		source = " from the scheme documents below"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are an AI assistant trained to provide detailed and actionable information about government schemes of both central and %[1]s.
Using the following user input, identify up to 3 relevant government schemes in each central and %[1]s%[2]s. For each scheme, provide:
1. Scheme Name
2. Eligibility Criteria
3. Benefits
4. Application Process
5. Any Additional Notes

Group the schemes under the headings "Central Government Schemes" and "State Government Schemes", and introduce every scheme with the line "**Scheme Name:** <name>".

Once all the relevant schemes are listed, suggest the best scheme based on the user's location (%[1]s) and requirements. Justify your suggestion based on the user's needs and the scheme details. If any information is missing, indicate explicitly.
`, location, source)

	if len(passages) > 0 {
		b.WriteString("\nScheme documents:\n")
		for _, passage := range passages {
			b.WriteString("---\n")
			b.WriteString(passage)
			b.WriteString("\n")
		}
		b.WriteString("---\n")
	}

	fmt.Fprintf(&b, "\nUser Input: %s", input)
	return b.String(), nil
}

// RetrievalQuery is the text matched against the scheme corpus for p.
func RetrievalQuery(p models.Profile) string {
	var parts []string
	for _, s := range []string{
		p.Objective,
		p.SpecificRequirements.Description,
		p.SpecificRequirements.TypeOfBenefit,
		p.Demographics.Occupation,
		p.Demographics.Category,
		p.Demographics.Location,
	} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "government schemes"
	}
	return strings.Join(parts, "; ")
}
