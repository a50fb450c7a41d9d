package scenario

import (
	"fmt"
	"strings"
)

const systemPrompt = `You design realistic workplace simulations for aspiring data analysts.

Rules:
- Invent one business problem at a plausible mid-sized company and a manager who briefs the intern.
- The dataset must look like a real export: consistent column names, but with deliberate quality problems (missing values, duplicate rows, outliers, inconsistent units or casing). Different records may omit columns.
- Every stage must be answerable by inspecting the dataset and the brief.
- Stages follow this order of types: "Observation and Identification", then "Action and Correction", then "Validation and Explanation". Repeat the cycle if more stages are requested.
- Each stage has three or four options with exactly one correct option. Wrong options must be tempting mistakes a junior analyst would actually make.
- Feedback is written in the manager's voice. Business impact states a concrete consequence (money, customers, time, trust).
- Use plain text only. No markdown, no emoji.`

// buildUserMessage constructs the user message from the Config.
func buildUserMessage(cfg Config) string {
	var b strings.Builder

	industry := cfg.Industry
	if industry == "" {
		industry = "any (your choice)"
	}

	fmt.Fprintf(&b, "Industry: %s\n", industry)
	fmt.Fprintf(&b, "Number of stages: %d\n", cfg.StageCount)
	fmt.Fprintf(&b, "Number of dataset records: %d\n", cfg.DatasetRows)

	b.WriteString("Stage types in order:\n")
	for i := 0; i < cfg.StageCount; i++ {
		fmt.Fprintf(&b, "%d. %s\n", i+1, StageTypes[i%len(StageTypes)])
	}

	return strings.TrimRight(b.String(), "\n")
}
