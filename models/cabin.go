package models

type Cabin struct {
	ID           string  `json:"id" bson:"id"`
	Name         string  `json:"name" bson:"name"`
	MaxCapacity  int     `json:"maxCapacity" bson:"maxCapacity"`
	RegularPrice float64 `json:"regularPrice" bson:"regularPrice"`
	Discount     float64 `json:"discount" bson:"discount"`
	Image        string  `json:"image" bson:"image"`
	Description  string  `json:"description,omitempty" bson:"description"`
}

// NightlyPrice is the per-night price after discount.
func (c Cabin) NightlyPrice() float64 {
	return c.RegularPrice - c.Discount
}

// CapacityFilter buckets cabins by how many guests they sleep.
type CapacityFilter string

const (
	CapacityAll    CapacityFilter = ""
	CapacitySmall  CapacityFilter = "small"
	CapacityMedium CapacityFilter = "medium"
	CapacityLarge  CapacityFilter = "large"
)

// Bounds returns the inclusive max-capacity range for the filter; ok is false for
// CapacityAll and unknown values.
func (f CapacityFilter) Bounds() (min, max int, ok bool) {
	switch f {
	case CapacitySmall:
		return 1, 3, true
	case CapacityMedium:
		return 4, 7, true
	case CapacityLarge:
		return 8, 12, true
	}
	return 0, 0, false
}

// Match reports whether a cabin falls into the filter's bucket.
func (f CapacityFilter) Match(c Cabin) bool {
	min, max, ok := f.Bounds()
	if !ok {
		return true
	}
	return c.MaxCapacity >= min && c.MaxCapacity <= max
}
