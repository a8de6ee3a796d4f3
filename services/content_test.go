package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kotoba-club/kotoba_api/shared"
)

func TestPickSeedOrders(t *testing.T) {
	at := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	svc := &ContentService{now: func() time.Time { return at }}

	order, seed := svc.pickSeed(shared.OrderHourly, 0)
	assert.Equal(t, shared.OrderHourly, order)
	assert.Equal(t, shared.HourlySeed(at), seed)

	order, seed = svc.pickSeed(shared.OrderFixed, 1234)
	assert.Equal(t, shared.OrderFixed, order)
	assert.Equal(t, int64(1234), seed)

	// Unknown orders fall back to the daily shuffle.
	order, seed = svc.pickSeed("bogus", 99)
	assert.Equal(t, shared.OrderDaily, order)
	assert.Equal(t, shared.DailySeed(at), seed)
}

func TestPickSeedRandomIgnoresFixedSeed(t *testing.T) {
	svc := &ContentService{now: time.Now}

	order, seed := svc.pickSeed(shared.OrderRandom, 42)
	assert.Equal(t, shared.OrderRandom, order)
	assert.GreaterOrEqual(t, seed, int64(0))
}

func TestKanjiMapDecoding(t *testing.T) {
	raw := json.RawMessage(`{"1":"月","3":"月夜"}`)

	m := kanjiMap(raw)
	assert.Equal(t, "月", m.Resolve(2, "fallback"))
	assert.Equal(t, "月夜", m.Resolve(3, "fallback"))
}

func TestKanjiMapNilAndInvalid(t *testing.T) {
	assert.Nil(t, kanjiMap(nil))
	assert.Nil(t, kanjiMap(json.RawMessage("not json")))
}

func TestMarshalKanjiMapRoundTrip(t *testing.T) {
	raw := marshalKanjiMap(map[int]string{2: "猫"})
	assert.Equal(t, "猫", kanjiMap(raw).Resolve(2, "fallback"))

	assert.Nil(t, marshalKanjiMap(nil))
	assert.Nil(t, marshalKanjiMap(map[int]string{}))
}

func TestDefaultDifficulty(t *testing.T) {
	assert.Equal(t, 1, defaultDifficulty(0))
	assert.Equal(t, 3, defaultDifficulty(3))
}
