// Package recognition fuses the two identification routes into one answer.
//
// A screenshot first goes through the text route: OCR, candidate filtering,
// title selection, and a TMDB lookup to verify the extracted string names a
// real title. When any step of that route comes up empty the visual route
// takes over: the screenshot is embedded and matched against the poster
// index, and a sufficiently similar neighbor is resolved to full details.
// Collaborator failures inside a route degrade to the next route instead of
// failing the request; only a missing index is treated as fatal
// misconfiguration.
package recognition
