package private

type mintRequest struct {
	To     string `json:"to" validate:"required"`
	Tokens string `json:"tokens" validate:"required"`
}

// rebaseRequest carries the requested divisor. Zero is a legal request: the
// state clamps any value below the divisor floor up to it.
type rebaseRequest struct {
	Divisor uint64 `json:"divisor"`
}

type observerRequest struct {
	URL string `json:"url" validate:"omitempty,url"`
}
