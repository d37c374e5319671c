package dto

// ListParams defines the common query parameters for token-paginated listings.
type ListParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}
