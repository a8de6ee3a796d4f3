package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveExactGrade(t *testing.T) {
	m := KanjiTextMap{1: "やま", 3: "山"}

	assert.Equal(t, "山", m.Resolve(3, "fallback"))
}

func TestResolveFallsBackDownward(t *testing.T) {
	m := KanjiTextMap{2: "お日さま"}

	// Grade 5 has no entry; nearest grade below wins.
	assert.Equal(t, "お日さま", m.Resolve(5, "fallback"))
	// Grade 1 sits below every entry.
	assert.Equal(t, "fallback", m.Resolve(1, "fallback"))
}

func TestResolveNeverConsultsHigherGrades(t *testing.T) {
	m := KanjiTextMap{4: "太陽"}

	assert.Equal(t, "fallback", m.Resolve(3, "fallback"))
}

func TestResolveBlankEntriesSkipped(t *testing.T) {
	m := KanjiTextMap{1: "つき", 2: "   ", 3: ""}

	assert.Equal(t, "つき", m.Resolve(3, "fallback"))
}

func TestResolvePreservesOriginalWhitespace(t *testing.T) {
	m := KanjiTextMap{2: " 月 "}

	// Blank detection trims, the returned text does not.
	assert.Equal(t, " 月 ", m.Resolve(2, "fallback"))
}

func TestResolveNilMap(t *testing.T) {
	var m KanjiTextMap

	assert.Equal(t, "fallback", m.Resolve(3, "fallback"))
}

func TestResolveGradeAboveMaxClamped(t *testing.T) {
	m := KanjiTextMap{6: "難しい"}

	assert.Equal(t, "難しい", m.Resolve(10, "fallback"))
}

func TestResolveKanjiFields(t *testing.T) {
	fields := map[string]KanjiTextMap{
		"title": {1: "月のうさぎ"},
		"body":  nil,
	}

	out := ResolveKanjiFields(fields, 2, "plain")

	assert.Equal(t, "月のうさぎ", out["title"])
	assert.Equal(t, "plain", out["body"])
}

func TestClampGrade(t *testing.T) {
	assert.Equal(t, MinKanjiGrade, ClampGrade(0))
	assert.Equal(t, MinKanjiGrade, ClampGrade(-3))
	assert.Equal(t, 4, ClampGrade(4))
	assert.Equal(t, MaxKanjiGrade, ClampGrade(7))
}

func TestDateKey(t *testing.T) {
	at := time.Date(2025, 3, 10, 23, 30, 0, 0, time.Local)

	assert.Equal(t, "2025-03-10", DateKey(at))
	assert.Equal(t, "2025-03-09", DateKeyOffset(at, -1))
	assert.Equal(t, "2025-03-04", DateKeyOffset(at, -6))
}
