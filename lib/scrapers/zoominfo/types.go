package zoominfo

import (
	"fmt"
	"strings"
)

// Convention selects how a parsed display name becomes the local part of
// a synthesized email address.
type Convention string

const (
	ConventionFirstLast       Convention = "firstlast"
	ConventionFirstMLast      Convention = "firstmlast"
	ConventionFLast           Convention = "flast"
	ConventionLastF           Convention = "lastf"
	ConventionFirstDotLast    Convention = "first.last"
	ConventionFirstUnderscore Convention = "first_last"
	ConventionFMLast          Convention = "fmlast"
	ConventionFull            Convention = "full"
)

var Conventions = []Convention{
	ConventionFirstLast,
	ConventionFirstMLast,
	ConventionFLast,
	ConventionLastF,
	ConventionFirstDotLast,
	ConventionFirstUnderscore,
	ConventionFMLast,
	ConventionFull,
}

func ParseConvention(s string) (Convention, error) {
	c := Convention(strings.ToLower(s))
	for _, known := range Conventions {
		if c == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown username format %q, expected one of %v", s, Conventions)
}

// Person is one extracted directory entry. FullName is empty when the
// row had no name element, Email always has the form <local>@<domain>.
type Person struct {
	FullName string
	Title    string
	Location string
	Email    string
}

var (
	// the anti-bot clearance could not be acquired
	ErrSession = fmt.Errorf("session acquisition failed")
	// a page request came back with a non-200 status
	ErrFetch = fmt.Errorf("fetch failed")
	// a required structural element could not be located
	ErrParse = fmt.Errorf("parse failed")
	// no confidently matched search candidate and no valid operator choice
	ErrAmbiguity = fmt.Errorf("could not disambiguate target")
)
