package drive

import (
	"log"
	"strings"

	"bidbuddy-backend/pkg/fuzzy"
)

// Folders created on demand by the placement policy.
const (
	SubBidsFolderName   = "Sub Bids"
	UncertainFolderName = "Uncertain Bids"
)

// BestMatchingFolder picks the folder whose name is most similar to the
// project name. Substring containment boosts the score to at least 0.8;
// matches below 0.5 are rejected. Ties keep the first-listed folder.
func BestMatchingFolder(folders []Folder, projectName string) *Folder {
	if len(folders) == 0 {
		return nil
	}

	normalizedProject := fuzzy.NormalizeString(projectName)
	if normalizedProject == "" {
		return nil
	}

	var best *Folder
	bestScore := 0.0

	for i := range folders {
		folder := &folders[i]
		normalizedFolder := fuzzy.NormalizeString(folder.Name)

		score := fuzzy.Ratio(normalizedProject, normalizedFolder)

		// Partial containment counts as a strong match
		if strings.Contains(normalizedFolder, normalizedProject) || strings.Contains(normalizedProject, normalizedFolder) {
			if score < 0.8 {
				score = 0.8
			}
		}

		if score > bestScore {
			bestScore = score
			best = folder
		}
	}

	if bestScore >= 0.5 {
		log.Printf("[DEBUG] matched folder %q for project %q (score: %.2f)", best.Name, projectName, bestScore)
		return best
	}

	log.Printf("[WARN] no good folder match for project %q (best score: %.2f)", projectName, bestScore)
	return nil
}
