package asset

import (
	"errors"
	"fmt"
)

// Kind identifies a resource namespace.
type Kind int

const (
	KindImage Kind = iota
	KindSprite
	KindSound
	KindFont
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindSprite:
		return "sprite"
	case KindSound:
		return "sound"
	case KindFont:
		return "font"
	default:
		return "unknown"
	}
}

// ErrTimeout is wrapped by a LoadError when a sound does not become playable
// within its poll budget.
var ErrTimeout = errors.New("timed out")

// reservedNames collide with registry control operations.
var reservedNames = map[string]bool{
	"length":    true,
	"prototype": true,
	"load":      true,
}

// IsReserved reports whether id may not be used as a resource id.
func IsReserved(id string) bool {
	return id == "" || reservedNames[id]
}

// NamingError reports a reserved or otherwise unusable resource id.
type NamingError struct {
	Kind Kind
	ID   string
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("the name %q is not allowed for a %s", e.ID, e.Kind)
}

// LoadError reports a resource that failed to load.
type LoadError struct {
	Kind Kind
	ID   string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %q could not be loaded: %v", e.Kind, e.ID, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LookupError reports a reference to a resource or sprite region that was
// never registered.
type LookupError struct {
	Kind   Kind
	ID     string
	Region string // sprite sub-region, empty for whole resources
}

func (e *LookupError) Error() string {
	if e.Region != "" {
		return fmt.Sprintf("%s %q has no region %q", e.Kind, e.ID, e.Region)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
