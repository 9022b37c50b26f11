package reducto

import (
	"fmt"
	"strings"
)

// extractionPayload builds the /extract request body for a previously
// uploaded file. The schema and prompt are fixed; only the active project
// list varies per request.
func extractionPayload(fileID string, activeProjects []string) map[string]interface{} {
	projects := "No active projects"
	if len(activeProjects) > 0 {
		projects = strings.Join(activeProjects, ", ")
	}

	systemPrompt := fmt.Sprintf(`You are a construction document analyzer. Extract the following information:

1. trade: The type of work being done based on the line items in the document.
   Common trades include: Electrical, Plumbing, HVAC,
   Roofing, Flooring, Painting, Drywall, Concrete, Steel, Framing,
   Landscaping, Excavation, etc.

   In the case that there are multiple trades, return them as a single string like the following examples:
   Electrical & Plumbing
   Electrical, Plumbing, & HVAC

   So if there are 2 trades, combine them with &
   2 or more should uses commas and one & at the end.

2. company_name: Extract the main company name from the document.
   This is usually the bidding company or contractor name.

3. is_bid_proposal: Whether the document is a bid proposal.
   If it is a bid proposal, it should list a company name in the construction industry and the line items with numbers.
   If it is a flyer, image, or some arbitrary attachment that is not a bid proposal, it is not a bid proposal.

   If it is a bid proposal, return true.
   If it is not a bid proposal, return false.

4. project_name: The project name that the document is for.
   Is will be for one of the following active projects: %s
   If it is for one of the active projects, return the project name.
   If it is not for one of the active projects, return null.

Be precise and only extract information that is explicitly stated.
Return trade as a single string.
Return company_name as a single string.
Return is_bid_proposal as a boolean.
Return project_name as a single string.`, projects)

	return map[string]interface{}{
		"input": fileID,
		"instructions": map[string]interface{}{
			"schema": []map[string]string{
				{"name": "company_name", "type": "text", "description": "The name of the company"},
				{"name": "trade", "type": "text", "description": "The type of work being performed"},
				{"name": "is_bid_proposal", "type": "boolean", "description": "Whether or not the document is a bid proposal"},
				{"name": "project_name", "type": "text", "description": "The project name that the document is for"},
			},
			"system_prompt": systemPrompt,
		},
		"settings": map[string]interface{}{
			"include_images":       false,
			"optimize_for_latency": false,
			"array_extract":        false,
			"citations": map[string]interface{}{
				"enabled":              true,
				"numerical_confidence": true,
			},
		},
	}
}
