package ingest

import (
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/nabheet/opencausenx/internal/event"
)

// Cheap keyword classification - no LLM involved. These run on every
// fetched item and only have to be good enough to route an item to the
// right causal rule; the relevance gate and confidence scoring absorb
// the misses.

// categoryKeywords maps each event category to its indicator tokens.
// Scoring counts whole-word hits; the category with the most hits wins.
var categoryKeywords = map[event.Category][]string{
	event.CategoryLaborMarket: {
		"wages", "wage", "salaries", "salary", "hiring", "layoffs", "layoff",
		"unemployment", "jobs report", "labor market", "strike", "union", "workforce",
	},
	event.CategoryInfrastructure: {
		"infrastructure", "power grid", "blackout", "outage", "pipeline",
		"port", "railway", "bridge", "broadband", "data center", "utility",
	},
	event.CategoryRegulation: {
		"regulation", "regulator", "legislation", "law", "compliance", "antitrust",
		"tariff", "sanction", "ban", "ruling", "tax", "directive",
	},
	event.CategoryEconomicIndicator: {
		"inflation", "gdp", "interest rate", "cpi", "recession", "consumer spending",
		"economic growth", "federal reserve", "central bank", "bond yields",
	},
	event.CategoryCurrency: {
		"currency", "dollar", "euro", "yen", "yuan", "exchange rate",
		"devaluation", "forex", "depreciation", "appreciation",
	},
	event.CategoryGeopolitical: {
		"war", "conflict", "invasion", "military", "treaty", "embargo",
		"election", "coup", "diplomatic", "border", "ceasefire",
	},
	event.CategoryMarketShift: {
		"market share", "consumer trend", "demand shift", "competitor",
		"merger", "acquisition", "ipo", "bankruptcy", "market shift",
	},
	event.CategoryTechnology: {
		"artificial intelligence", "ai", "automation", "software", "chip",
		"semiconductor", "breakthrough", "cybersecurity", "startup", "quantum",
	},
	event.CategoryDisaster: {
		"earthquake", "hurricane", "flood", "wildfire", "tsunami",
		"drought", "storm", "pandemic", "explosion", "landslide",
	},
}

// classifyOrder fixes the tie-break order for category scoring so
// classification is deterministic regardless of map iteration.
var classifyOrder = event.Categories()

// ClassifyCategory picks the event category whose keywords best match
// the text. Falls back to market_shift, the most generic category, when
// nothing matches.
func ClassifyCategory(text string) event.Category {
	lower := strings.ToLower(text)

	best := event.CategoryMarketShift
	bestScore := 0
	for _, cat := range classifyOrder {
		score := 0
		for _, kw := range categoryKeywords[cat] {
			if containsWord(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}
	return best
}

// regionAliases maps place mentions to the coarse region codes business
// models declare. Multi-word aliases must be checked before their
// substrings would match.
var regionAliases = map[string]string{
	// North America
	"united states": "US", "u.s.": "US", "usa": "US", "america": "US",
	"washington": "US", "wall street": "US", "federal reserve": "US",
	"canada": "US", "mexico": "LATAM",

	// Europe
	"european union": "EU", "europe": "EU", "eurozone": "EU", "brussels": "EU",
	"germany": "EU", "france": "EU", "italy": "EU", "spain": "EU",
	"netherlands": "EU", "poland": "EU",
	"united kingdom": "UK", "britain": "UK", "london": "UK", "england": "UK",

	// Asia-Pacific
	"china": "APAC", "beijing": "APAC", "japan": "APAC", "tokyo": "APAC",
	"india": "APAC", "south korea": "APAC", "taiwan": "APAC",
	"singapore": "APAC", "australia": "APAC", "indonesia": "APAC",
	"vietnam": "APAC", "hong kong": "APAC",

	// Latin America
	"brazil": "LATAM", "argentina": "LATAM", "chile": "LATAM", "colombia": "LATAM",

	// Middle East & Africa
	"saudi arabia": "MEA", "israel": "MEA", "iran": "MEA", "uae": "MEA",
	"egypt": "MEA", "nigeria": "MEA", "south africa": "MEA", "turkey": "MEA",
}

// ExtractRegion maps the first recognized place mention to a region
// code. Text with no recognizable geography is treated as GLOBAL: world
// news without a named place usually is worldwide in scope, and the
// relevance gate's other checks still apply.
func ExtractRegion(text string) string {
	lower := strings.ToLower(text)

	// Count hits per region; the region mentioned most wins.
	counts := make(map[string]int)
	for alias, region := range regionAliases {
		if containsWord(lower, alias) {
			counts[region]++
		}
	}
	if len(counts) == 0 {
		return event.RegionGlobal
	}

	best := ""
	bestCount := 0
	for _, region := range []string{"US", "EU", "UK", "APAC", "LATAM", "MEA"} {
		if counts[region] > bestCount {
			best = region
			bestCount = counts[region]
		}
	}
	return best
}

// tickerRegex matches stock tickers like $AAPL, $TSLA, $BRK.A
var tickerRegex = regexp.MustCompile(`\$([A-Z]{1,5}(?:\.[A-Z])?)`)

// ExtractEntities pulls affected-entity tags out of the text: stock
// tickers plus recognized place aliases, normalized and deduplicated.
func ExtractEntities(text string) []string {
	seen := make(map[string]bool)
	var entities []string

	for _, match := range tickerRegex.FindAllStringSubmatch(text, -1) {
		if len(match) > 1 && !seen[match[1]] {
			seen[match[1]] = true
			entities = append(entities, match[1])
		}
	}

	lower := strings.ToLower(text)
	for alias := range regionAliases {
		if containsWord(lower, alias) {
			tag := strings.ReplaceAll(alias, " ", "_")
			if !seen[tag] {
				seen[tag] = true
				entities = append(entities, tag)
			}
		}
	}

	return entities
}

// ScoreConfidence estimates source confidence in [0,1] from the feed's
// trust weight plus content-quality signals. The causal engine treats
// this number as ground truth, so it errs low.
func ScoreConfidence(src Source, item *gofeed.Item) float64 {
	// Normalize weight to [0,1] assuming weights sit in the 0-2 range
	weight := src.Weight
	if weight <= 0 {
		weight = 1.0
	}
	conf := weight / 2.0

	// A real publication timestamp and a substantive body both indicate
	// an actual article rather than a stub or placeholder
	if item.PublishedParsed != nil {
		conf += 0.1
	}
	if len(item.Description) > 100 {
		conf += 0.05
	}

	if conf > 1 {
		conf = 1
	}
	if conf < 0 {
		conf = 0
	}
	return conf
}

// containsWord checks if text contains word as a whole word (not substring)
func containsWord(text, word string) bool {
	idx := strings.Index(text, word)
	if idx < 0 {
		return false
	}

	// Check left boundary
	if idx > 0 && isAlphaNum(text[idx-1]) {
		return containsWord(text[idx+len(word):], word)
	}

	// Check right boundary
	end := idx + len(word)
	if end < len(text) && isAlphaNum(text[end]) {
		return containsWord(text[end:], word)
	}

	return true
}

func isAlphaNum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
