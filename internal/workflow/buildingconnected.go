package workflow

import (
	"regexp"
	"strings"
)

const buildingConnectedSubjectPrefix = "Proposal Submitted"

// IsBuildingConnectedNotification gates the dedicated extractor: the sender
// must be a buildingconnected.com address and the subject must carry the
// "Proposal Submitted" prefix.
func IsBuildingConnectedNotification(from, subject string) bool {
	return strings.Contains(strings.ToLower(from), "buildingconnected.com") &&
		strings.HasPrefix(strings.TrimSpace(subject), buildingConnectedSubjectPrefix)
}

var (
	bcDownloadLinkRe = regexp.MustCompile(`(?i)href="([^"]*/download/[^"]*)"`)

	bcCompanyHTMLRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<strong>([^<]+)</strong>\s+has submitted`),
		regexp.MustCompile(`(?i)Subcontractor:\s*<[^>]+>([^<]+)<`),
		regexp.MustCompile(`(?i)Company:\s*<[^>]+>([^<]+)<`),
		regexp.MustCompile(`(?i)from\s+<strong>([^<]+)</strong>`),
	}
	bcCompanyTextRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\w+(?:\s+\w+)*)\s+has submitted`),
		regexp.MustCompile(`(?i)Subcontractor:\s*(\w+(?:\s+\w+)*)`),
		regexp.MustCompile(`(?i)Company:\s*(\w+(?:\s+\w+)*)`),
	}

	bcTradeHTMLRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Trade:\s*<[^>]+>([^<]+)<`),
		regexp.MustCompile(`(?i)Scope:\s*<[^>]+>([^<]+)<`),
		regexp.MustCompile(`(?i)for\s+(?:the\s+)?([^<]+)\s+scope`),
		regexp.MustCompile(`(?i)Category:\s*<[^>]+>([^<]+)<`),
	}
	bcTradeTextRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Trade:\s*(\w+(?:\s+\w+)*)`),
		regexp.MustCompile(`(?i)Scope:\s*(\w+(?:\s+\w+)*)`),
		regexp.MustCompile(`(?i)Category:\s*(\w+(?:\s+\w+)*)`),
	}
)

// ExtractBuildingConnected parses a BuildingConnected submission notification.
// The project name comes from the subject line; company, trade and download
// links come from the HTML body with plain-text fallbacks.
func ExtractBuildingConnected(subject, html, text string) *BuildingConnectedData {
	data := &BuildingConnectedData{}

	if rest, ok := strings.CutPrefix(strings.TrimSpace(subject), buildingConnectedSubjectPrefix); ok {
		data.ProjectName = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "-"))
	}

	for _, m := range bcDownloadLinkRe.FindAllStringSubmatch(html, -1) {
		data.DownloadLinks = append(data.DownloadLinks, m[1])
	}

	data.CompanyName = firstMatch(html, bcCompanyHTMLRes)
	if data.CompanyName == "" {
		data.CompanyName = firstMatch(text, bcCompanyTextRes)
	}

	data.Trade = firstMatch(html, bcTradeHTMLRes)
	if data.Trade == "" {
		data.Trade = firstMatch(text, bcTradeTextRes)
	}

	return data
}

func firstMatch(body string, patterns []*regexp.Regexp) string {
	if body == "" {
		return ""
	}
	for _, re := range patterns {
		if m := re.FindStringSubmatch(body); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
