package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNutrients_KeepsFirstAppearanceOrder(t *testing.T) {
	var n Nutrients
	n.Set(NutrientEntry{Name: "탄수화물", Value: 70.5, Unit: "g"})
	n.Set(NutrientEntry{Name: "단백질", Value: 20, Unit: "g"})
	n.Set(NutrientEntry{Name: "탄수화물", Value: 80, Unit: "g"})

	entries := n.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "탄수화물", entries[0].Name)
	assert.Equal(t, 80.0, entries[0].Value)
	assert.Equal(t, "단백질", entries[1].Name)

	got, ok := n.Get("탄수화물")
	assert.True(t, ok)
	assert.Equal(t, 80.0, got.Value)

	_, ok = n.Get("지방")
	assert.False(t, ok)
}

func TestNutrients_MarshalJSON(t *testing.T) {
	var n Nutrients
	n.Set(NutrientEntry{Name: "칼슘", Value: 200.1, Unit: "mg"})

	body, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"칼슘","value":200.1,"unit":"mg"}]`, string(body))
}

func TestMealType_Known(t *testing.T) {
	assert.True(t, Lunch.Known())
	assert.False(t, MealType("간식").Known())
}
