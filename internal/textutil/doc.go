// Package textutil provides small text helpers shared across recognition
// components: unicode normalization for OCR output and display truncation.
//
// OCR models emit text copied from rendered UI, which frequently contains
// fullwidth glyphs, non-breaking spaces, and other compatibility forms.
// NormalizeToken folds those to their plain equivalents so downstream
// heuristics see consistent input.
package textutil
