// Package titleid extracts a probable movie or show title from noisy OCR
// output of a streaming UI screenshot.
//
// Recognition happens in two pure passes. FilterCandidates drops tokens that
// are structurally unlikely to be titles: UI chrome labels, content ratings,
// durations and episode markers, URLs, and narrative text. SelectTitle then
// scores the survivors by string shape (casing, punctuation, digit content,
// word count) and either joins the strongest uppercase candidates or falls
// back to a positional reconstruction pass over the original token order,
// since titles split across adjacent on-screen text elements survive in raw
// order even when filtering removed their neighbors.
//
// Both passes are deterministic and side-effect free; thresholds and caps
// live in Policy so the fusion engine can carry tuned values from config.
package titleid
