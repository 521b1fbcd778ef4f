package domain

import "fmt"

// Mealtime names one of the four slots of a daily log
type Mealtime string

const (
	Breakfast Mealtime = "breakfast"
	Lunch     Mealtime = "lunch"
	Dinner    Mealtime = "dinner"
	Snacks    Mealtime = "snacks"
)

// Mealtimes assigns meal ids to the four slots of a daily log.
// Order inside a slot is insertion order.
type Mealtimes struct {
	Breakfast []string `gorm:"serializer:json" json:"breakfast"`
	Lunch     []string `gorm:"serializer:json" json:"lunch"`
	Dinner    []string `gorm:"serializer:json" json:"dinner"`
	Snacks    []string `gorm:"serializer:json" json:"snacks"`
}

// MealtimeOrder is the display order of the slots
var MealtimeOrder = []Mealtime{Breakfast, Lunch, Dinner, Snacks}

// IsEmpty reports whether no slot holds a meal
func (m Mealtimes) IsEmpty() bool {
	for _, t := range MealtimeOrder {
		if len(*m.slot(t)) > 0 {
			return false
		}
	}
	return true
}

// Slot returns the meal ids of one mealtime
func (m Mealtimes) Slot(t Mealtime) ([]string, error) {
	p := m.slot(t)
	if p == nil {
		return nil, fmt.Errorf("unknown mealtime %q", t)
	}
	return *p, nil
}

func (m *Mealtimes) slot(t Mealtime) *[]string {
	switch t {
	case Breakfast:
		return &m.Breakfast
	case Lunch:
		return &m.Lunch
	case Dinner:
		return &m.Dinner
	case Snacks:
		return &m.Snacks
	}
	return nil
}

// MealIDs returns every distinct meal id across all slots
func (m Mealtimes) MealIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, t := range MealtimeOrder {
		for _, id := range *m.slot(t) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// References reports whether any slot holds one of the given meal ids
func (m Mealtimes) References(ids map[string]struct{}) bool {
	for _, t := range MealtimeOrder {
		for _, id := range *m.slot(t) {
			if _, ok := ids[id]; ok {
				return true
			}
		}
	}
	return false
}

// Without returns a copy with the given meal ids removed from every slot
func (m Mealtimes) Without(ids map[string]struct{}) Mealtimes {
	var out Mealtimes
	for _, t := range MealtimeOrder {
		*out.slot(t) = pull(*m.slot(t), ids)
	}
	return out
}

// Normalized replaces nil slots with empty ones so they encode as []
func (m Mealtimes) Normalized() Mealtimes {
	var out Mealtimes
	for _, t := range MealtimeOrder {
		*out.slot(t) = orEmpty(*m.slot(t))
	}
	return out
}

func pull(slot []string, ids map[string]struct{}) []string {
	out := make([]string, 0, len(slot))
	for _, id := range slot {
		if _, ok := ids[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
