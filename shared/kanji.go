package shared

import "strings"

// KanjiTextMap holds per-grade variants of one Japanese text, keyed by school
// grade 1..6. Higher grades may use more complex kanji; a grade's slot may be
// blank when no dedicated variant was authored.
type KanjiTextMap map[int]string

// Resolve picks the text for a target reading grade. The target grade wins
// when it has a non-blank entry; otherwise the nearest non-blank grade below
// it is used, down to grade 1; otherwise fallback. Grades above the target
// are never consulted, so a young reader is never shown harder kanji than
// their level.
func (m KanjiTextMap) Resolve(grade int, fallback string) string {
	if m == nil {
		return fallback
	}
	if grade > MaxKanjiGrade {
		grade = MaxKanjiGrade
	}
	for g := grade; g >= MinKanjiGrade; g-- {
		if text := strings.TrimSpace(m[g]); text != "" {
			return m[g]
		}
	}
	return fallback
}

// ResolveKanjiFields applies Resolve independently to every named field,
// sharing one target grade and fallback across the batch.
func ResolveKanjiFields(fields map[string]KanjiTextMap, grade int, fallback string) map[string]string {
	out := make(map[string]string, len(fields))
	for name, m := range fields {
		out[name] = m.Resolve(grade, fallback)
	}
	return out
}

// ClampGrade forces grade into the supported 1..6 range.
func ClampGrade(grade int) int {
	if grade < MinKanjiGrade {
		return MinKanjiGrade
	}
	if grade > MaxKanjiGrade {
		return MaxKanjiGrade
	}
	return grade
}
