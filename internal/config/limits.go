package config

const (
	// MaxRecipeBookNameLength is the maximum length for recipe book names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxRecipeBookNameLength = 255

	// MaxRecipeNameLength is the maximum length for recipe names.
	// Same limit as book names for consistency.
	MaxRecipeNameLength = 255

	// MaxDescriptionLength is the maximum length for recipe book descriptions.
	MaxDescriptionLength = 2000

	// MaxRecipeTextLength is the maximum length for free-text recipe fields
	// (ingredients, directions).
	MaxRecipeTextLength = 20000

	// MaxRating is the upper bound for recipe ratings (0 to 5 stars).
	MaxRating = 5
)
