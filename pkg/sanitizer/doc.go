// Package sanitizer provides input normalization functions for club and
// booking data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings rather than errors.
//
// Normalization includes:
//   - Phone numbers: Convert to E.164 format (+[country][number])
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Slugs: Lowercase, replace non-alphanumeric runs with hyphens - "Club Norte Padel" becomes "club-norte-padel"
package sanitizer
