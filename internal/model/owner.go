package model

// OwnerDetail is the owner projection used by single-resource responses.
type OwnerDetail struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// OwnerSummary is the narrower owner projection used by list responses.
type OwnerSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
