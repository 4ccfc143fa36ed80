package set_addon_inclusion

// SetInclusionRequest HTTP request model
type SetInclusionRequest struct {
	Included *bool `json:"included" validate:"required"`
}
