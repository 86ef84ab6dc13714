package components

// DefaultMessages returns the library default validation messages keyed by
// error type.
func DefaultMessages() map[string]string {
	return map[string]string{
		"required":  "Required",
		"minLength": "Too short",
		"maxLength": "Too long",
		"minimum":   "Too small",
		"maximum":   "Too large",
		"pattern":   "Invalid format",
		"format":    "Invalid format",
		"enum":      "Invalid option",
		"type":      "Invalid value",
		"submit":    "Submission failed",
	}
}
