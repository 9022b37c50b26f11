package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// JSONWithRetry prompts the Completer and unmarshals its response into out.
// The prompt is the join of segments; after each failed attempt the error is
// appended as a new segment so the model sees what went wrong. Returns the
// last error when all attempts fail.
func JSONWithRetry(ctx context.Context, c Completer, segments []string, maxAttempts int, out interface{}) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	// Copy so retries never mutate the caller's slice
	prompt := make([]string, len(segments))
	copy(prompt, segments)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		response, err := c.Complete(ctx, strings.Join(prompt, "\n"))
		if err != nil {
			lastErr = err
		} else if err = json.Unmarshal([]byte(ExtractJSON(response)), out); err == nil {
			return nil
		} else {
			lastErr = fmt.Errorf("failed to parse JSON response: %w", err)
		}

		log.Printf("[WARN] LLM JSON attempt %d/%d failed: %v", attempt, maxAttempts, lastErr)
		prompt = append(prompt, fmt.Sprintf("Previous attempt failed with error: %v\nPlease respond with ONLY valid JSON, nothing else.", lastErr))
	}

	return fmt.Errorf("no valid JSON after %d attempts: %w", maxAttempts, lastErr)
}

// ExtractJSON pulls the JSON object out of a model response that may be
// wrapped in markdown code fences or surrounding prose.
func ExtractJSON(response string) string {
	text := strings.TrimSpace(response)

	// Clean up markdown code blocks if present
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	text = strings.TrimSpace(text)

	jsonStart := strings.Index(text, "{")
	jsonEnd := strings.LastIndex(text, "}")
	if jsonStart != -1 && jsonEnd != -1 && jsonEnd > jsonStart {
		text = text[jsonStart : jsonEnd+1]
	}

	return text
}
