package coach

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a tutor explaining the Additive Factor Model (AFM) to a programming student. The model predicts the chance of answering correctly as a logistic function of a sum of terms. The Zone of Proximal Development (ZPD) is a success chance between 40% and 80%.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Page: %s\n", in.Page)
	fmt.Fprintf(&b, "Subject: %s\n", in.Subject)

	b.WriteString("\nLogit terms:\n")
	for _, t := range in.Terms {
		fmt.Fprintf(&b, "- %s: %+.2f\n", t.Name, t.Value)
	}
	fmt.Fprintf(&b, "Logit: %.3f\n", in.Logit)
	fmt.Fprintf(&b, "Predicted success: %.1f%% (%s)\n", in.Probability*100, in.Zone.Label())

	if in.Outcome != "" {
		fmt.Fprintf(&b, "Last answer: %s\n", in.Outcome)
	}
	if len(in.Recent) > 0 {
		marks := make([]string, len(in.Recent))
		for i, ok := range in.Recent {
			marks[i] = outcome(ok)
		}
		fmt.Fprintf(&b, "Recent responses (oldest first): %s\n", strings.Join(marks, ", "))
	}

	b.WriteString(`
Instructions:
1. Explain in 2-3 sentences which terms push the prediction up or down and by how much.
2. Say whether the task sits below, inside or above the ZPD.
3. Suggest one concrete change (more practice, an easier or harder task) that would move it toward the ZPD.
4. Use plain ASCII text. No LaTeX, no markdown.`)

	return b.String()
}
