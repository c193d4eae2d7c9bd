package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// FuelCategory represents the fuel dispensed by a nozzle
type FuelCategory string

const (
	FuelCategoryPetrol  FuelCategory = "petrol"
	FuelCategoryDiesel  FuelCategory = "diesel"
	FuelCategoryPremium FuelCategory = "premium"
)

// AllFuelCategories lists every known category in display order
func AllFuelCategories() []FuelCategory {
	return []FuelCategory{FuelCategoryPetrol, FuelCategoryDiesel, FuelCategoryPremium}
}

func (c FuelCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is one of the known categories
func (c FuelCategory) IsValid() bool {
	switch c {
	case FuelCategoryPetrol, FuelCategoryDiesel, FuelCategoryPremium:
		return true
	}
	return false
}

func (c FuelCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

func (c *FuelCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*c = FuelCategory(str)
	return nil
}

func (c FuelCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *FuelCategory) Scan(value interface{}) error {
	if value == nil {
		*c = FuelCategoryPremium
		return nil
	}
	switch v := value.(type) {
	case string:
		*c = FuelCategory(v)
	case []byte:
		*c = FuelCategory(string(v))
	}
	return nil
}

// NozzleFuelMap assigns a fuel category to each nozzle ordinal. The mapping
// is station configuration, not a fixed rule: pumps wire nozzles to tanks
// differently, so owners can edit it in their settings.
type NozzleFuelMap map[int]FuelCategory

// DefaultNozzleFuelMap is the assignment most two-product dispensers ship
// with: nozzle 1 petrol, nozzle 2 diesel, anything else premium.
func DefaultNozzleFuelMap() NozzleFuelMap {
	return NozzleFuelMap{
		1: FuelCategoryPetrol,
		2: FuelCategoryDiesel,
	}
}

// Classify returns the category mapped to a nozzle, falling back to premium
// for unmapped ordinals.
func (m NozzleFuelMap) Classify(nozzle int) FuelCategory {
	if c, ok := m[nozzle]; ok && c.IsValid() {
		return c
	}
	return FuelCategoryPremium
}
