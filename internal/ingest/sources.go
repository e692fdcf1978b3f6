// Package ingest fetches world news feeds and normalizes them into the
// event records the causal mapping engine consumes.
package ingest

// Source is a single feed to ingest.
// Weight feeds into the source-confidence score: 1.0 = normal outlet,
// >1 = wire-service grade, <1 = lower trust.
type Source struct {
	Name   string  `json:"name"`
	URL    string  `json:"url"`
	Weight float64 `json:"weight"`
}

// DefaultSources is the curated starting set: business-relevant world
// news, leaning on wire services and financial press.
func DefaultSources() []Source {
	return []Source{
		// Wire services - highest trust
		{Name: "Reuters Business", URL: "https://www.reutersagency.com/feed/?best-topics=business-finance&post_type=best", Weight: 1.5},
		{Name: "AP Top News", URL: "https://rsshub.app/apnews/topics/apf-topnews", Weight: 1.5},
		{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml", Weight: 1.3},

		// Financial & business press
		{Name: "BBC Business", URL: "https://feeds.bbci.co.uk/news/business/rss.xml", Weight: 1.3},
		{Name: "CNBC Economy", URL: "https://www.cnbc.com/id/20910258/device/rss/rss.html", Weight: 1.1},
		{Name: "MarketWatch", URL: "https://feeds.content.dowjones.io/public/rss/mw_topstories", Weight: 1.1},

		// General world coverage for geopolitical and disaster events
		{Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml", Weight: 1.2},
		{Name: "The Guardian World", URL: "https://www.theguardian.com/world/rss", Weight: 1.2},
		{Name: "NPR News", URL: "https://feeds.npr.org/1001/rss.xml", Weight: 1.2},

		// Technology
		{Name: "Techmeme", URL: "https://www.techmeme.com/feed.xml", Weight: 1.2},
	}
}
