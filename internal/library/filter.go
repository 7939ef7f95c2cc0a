package library

// ItemFilter specifies criteria for listing items.
type ItemFilter struct {
	Type             *MediaType
	Monitored        *bool
	QualityProfileID *int64
	ExternalID       *string
	Title            *string
	Year             *int
	Limit            int // 0 = no limit
	Offset           int
}

// ExclusionFilter specifies criteria for listing exclusions.
type ExclusionFilter struct {
	MediaType *MediaType
	Limit     int
	Offset    int
}
