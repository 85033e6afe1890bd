package domain

// GenerationLogFilter contains filtering/pagination parameters for generation log listings.
type GenerationLogFilter struct {
	// Type restricts the listing to one generation type. nil means all types.
	Type *GenerationType
	// Limit is clamped to 1..200, default 50.
	Limit int
}

// EventFilter contains filtering/pagination parameters for timeline listings.
type EventFilter struct {
	// Area is an equality filter. nil means all areas.
	Area *Area
	// Limit is clamped to 1..200, default 50.
	Limit int
}
