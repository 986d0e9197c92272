package searchable

const (
	DefaultMaxDistance = 5

	// RelevanceAlias names the total relevance column added by ranked search.
	RelevanceAlias = "relevance"
	// relevancePrefix prefixes the per-field relevance columns.
	relevancePrefix = "relevance_"
)
