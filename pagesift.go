// Package pagesift provides template-driven extraction of structured
// records from HTML pages. A template describes what to extract (field
// types, structural selectors, regex patterns, formatting) and the
// extraction engine resolves each field through a cascade of increasingly
// generic strategies, returning a typed record with completeness scores.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, excelize/).
package pagesift
