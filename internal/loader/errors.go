package loader

import "fmt"

// Error code constants for definition and pattern files.
const (
	ErrCodeNotFound       = "E101" // File not found or unreadable
	ErrCodeSyntax         = "E102" // Malformed YAML or unknown field
	ErrCodeDeclaration    = "E103" // Declaration with no kind or more than one
	ErrCodeSort           = "E104" // Sort or signature that does not parse
	ErrCodePattern        = "E105" // Pattern with no kind or more than one
	ErrCodeEmpty          = "E106" // No modules or no pattern
	ErrCodeDuplicateParam = "E107" // Sort variable listed twice
)

// LoadMode controls how errors are handled while converting declarations.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadError represents an error in a definition or pattern file.
type LoadError struct {
	Code    string
	Path    string
	Line    int // 0 when unknown
	Message string
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s: %s", e.Path, e.Line, e.Code, e.Message)
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}
