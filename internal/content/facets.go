package content

// facetLists enumerates the filters the search UI can offer. These are fixed
// by product, not derived from CMS content.
type facetLists struct {
	Categories   []string `json:"categories"`
	Sources      []string `json:"sources"`
	ContentTypes []string `json:"contentTypes"`
	Severities   []string `json:"severities"`
}

var facets = facetLists{
	Categories: []string{
		"news", "events", "nightlife", "dining", "business",
		"travel", "weather", "traffic", "community",
	},
	Sources: []string{
		"pattaya1", "pattaya-mail", "bangkok-post", "the-thaiger", "forum",
	},
	ContentTypes: []string{
		"article", "forum-post", "event", "business-listing", "advisory",
	},
	Severities: []string{
		"info", "low", "medium", "high", "critical",
	},
}
