package zoominfo

import (
	"strings"
	"zoomgrab/lib/textutil"
)

func initial(s string) string {
	if s == "" {
		return ""
	}
	return s[:1]
}

// SynthesizeUsername maps a display name onto an email local part under
// the given naming convention. The result keeps the name's casing, the
// caller lowercases it when composing the address.
//
//	"Joe Z. Dirt" + firstmlast -> "JoeZDirt"
//	"Mary Skinner" + fmlast    -> "MSkinner"
//
// An empty name yields an empty local part. Unrecognized conventions
// fall back to "full".
func SynthesizeUsername(fullName string, convention Convention) string {
	if fullName == "" {
		return ""
	}

	parts := textutil.SplitPersonName(fullName)
	// a name made of nothing but punctuation cleans down to no tokens
	empty := true
	for _, p := range parts {
		if p != "" {
			empty = false
			break
		}
	}
	if empty {
		return ""
	}
	first := parts[0]
	last := parts[len(parts)-1]
	middle := ""
	if len(parts) > 2 {
		middle = parts[1]
	}

	switch Convention(strings.ToLower(string(convention))) {
	case ConventionFirstLast:
		return first + last
	case ConventionFirstMLast:
		if middle != "" {
			return first + initial(middle) + last
		}
		return first + last
	case ConventionFLast:
		return initial(first) + last
	case ConventionLastF:
		return last + initial(first)
	case ConventionFirstDotLast:
		return first + "." + last
	case ConventionFirstUnderscore:
		return first + "_" + last
	case ConventionFMLast:
		if middle != "" {
			return initial(first) + initial(middle) + last
		}
		return initial(first) + last
	default:
		return strings.Join(parts, "")
	}
}
