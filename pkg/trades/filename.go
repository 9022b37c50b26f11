package trades

import (
	"fmt"
	"strings"
)

// Delimiter rules for proposal filenames.
const (
	// TradeCompanyDelimiter separates the trade segment from the company name.
	TradeCompanyDelimiter = "_"
	// MultiTradeDelimiter separates multiple trades
	// (e.g. "concrete, framing, electrical_company").
	MultiTradeDelimiter = ", "
)

// ParsedFilename is the result of parsing a stored proposal filename.
// Parse failures are reported through Err; ParseFilename never panics.
type ParsedFilename struct {
	Trades      []string `json:"trades"`
	CompanyName string   `json:"company_name"`
	RawTrades   string   `json:"raw_trades"`
	Err         string   `json:"error,omitempty"`
}

// ParseFilename extracts trades and a company name from a proposal filename.
//
// Expected formats:
//   - "{trade}_{company}.pdf"
//   - "{trade, trade, & trade}_{company}.pdf"
//   - "{trade & trade}_{company}.pdf"
func ParseFilename(filename string) ParsedFilename {
	result := ParsedFilename{Trades: []string{}}

	// Remove file extension (last dot segment)
	nameWithoutExt := filename
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		nameWithoutExt = filename[:idx]
	}
	nameWithoutExt = strings.TrimSpace(nameWithoutExt)

	parts := strings.SplitN(nameWithoutExt, TradeCompanyDelimiter, 2)
	if len(parts) != 2 {
		result.Err = fmt.Sprintf("missing delimiter %q in filename, expected format '{trade}_{company}', got: %s", TradeCompanyDelimiter, filename)
		return result
	}

	tradePart := strings.TrimSpace(parts[0])
	companyPart := strings.TrimSpace(parts[1])

	result.RawTrades = tradePart
	result.CompanyName = companyPart
	result.Trades = ParseTradeList(tradePart)

	if len(result.Trades) == 0 {
		result.Err = fmt.Sprintf("could not parse any trades from: %s", filename)
	}
	if companyPart == "" {
		// Company check runs last so its error wins when both fail.
		result.Err = fmt.Sprintf("could not parse company name from: %s", filename)
	}

	return result
}

// ParseTradeList splits a combined trade string such as "concrete, framing, &
// electrical" or "Electrical & Plumbing" into normalized trade names,
// de-duplicated in first-seen order. The document extractor emits trade
// strings in this same grammar.
func ParseTradeList(tradePart string) []string {
	// Remove any trailing "&" or " &" from the end
	tradePart = strings.TrimSpace(strings.TrimRight(tradePart, " &"))

	trades := []string{}
	seen := map[string]struct{}{}

	appendTrade := func(raw string) {
		normalized := Normalize(raw)
		if normalized == "" {
			return
		}
		if _, dup := seen[normalized]; dup {
			return
		}
		seen[normalized] = struct{}{}
		trades = append(trades, normalized)
	}

	for _, section := range strings.Split(tradePart, MultiTradeDelimiter) {
		if strings.Contains(section, "&") {
			for _, part := range strings.Split(section, "&") {
				appendTrade(part)
			}
		} else {
			appendTrade(section)
		}
	}

	return trades
}

// MatchTradeToDatabase matches parsed trade names against known trades
// (lower-cased name -> trade id). Returns the first matching trade id and the
// names that did not match.
func MatchTradeToDatabase(parsedTrades []string, tradesByName map[string]string) (string, []string) {
	var matchedID string
	var unmatched []string

	for _, name := range parsedTrades {
		if id, ok := tradesByName[strings.ToLower(name)]; ok {
			if matchedID == "" {
				matchedID = id
			}
		} else {
			unmatched = append(unmatched, name)
		}
	}

	return matchedID, unmatched
}
