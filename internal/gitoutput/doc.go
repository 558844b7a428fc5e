// Package gitoutput classifies the human-readable text printed by git.
//
// The functions here are pure: they never run git and never fail. When the text
// does not match the expected phrasing they return false, which callers treat as
// "assume dirty" and "assume nothing was pushed".
package gitoutput
