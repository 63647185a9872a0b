package types

// ComponentStatus summarizes one dev-stack component for status output.
type ComponentStatus struct {
	// Stable component identifier (app, fallback, cache).
	ID string `json:"id"`
	// Human-readable name shown in CLI output.
	Name string `json:"name"`
	// Command-line substring used to match the component's processes.
	Pattern string `json:"pattern"`
	// Whether at least one matching process is currently alive.
	Running bool `json:"running"`
	// PIDs of the current match set; empty when not running.
	PIDs []int `json:"pids,omitempty"`
}

// StackStatusResponse wraps the component list returned by GET /stack and
// printed by `stackctl status`.
type StackStatusResponse struct {
	Components []ComponentStatus `json:"components"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
