package domain

import (
	"encoding/json"
	"strconv"
)

// Fallback values substituted for absent or malformed fields.
const (
	FallbackName  = "Unknown"
	FallbackValue = "n/a"
)

// TaxonomyKeys is the fixed, ordered set of taxonomy ranks shown on every card.
var TaxonomyKeys = []string{
	"kingdom",
	"phylum",
	"class",
	"order",
	"family",
	"genus",
	"scientific_name",
}

// CharacteristicKeys is the ordered allow-list of characteristics eligible for display.
var CharacteristicKeys = []string{
	"diet",
	"lifespan",
	"habitat",
	"predators",
	"top_speed",
	"weight",
}

// Animal is a single record returned by the animals API.
// Every field is optional; use the accessors to read values with fallbacks.
type Animal struct {
	Name            string
	Taxonomy        map[string]string
	Locations       []string
	Characteristics map[string]string
}

// AnimalFromJSON converts one decoded JSON element into an Animal.
// It never fails: elements that are not objects yield the zero Animal,
// and fields of an unexpected type are dropped.
func AnimalFromJSON(v any) Animal {
	obj, ok := v.(map[string]any)
	if !ok {
		return Animal{}
	}

	var a Animal
	if name, ok := obj["name"].(string); ok {
		a.Name = name
	}
	a.Taxonomy = stringMap(obj["taxonomy"])
	a.Characteristics = stringMap(obj["characteristics"])

	if locs, ok := obj["locations"].([]any); ok {
		for _, l := range locs {
			if s, ok := scalarString(l); ok && s != "" {
				a.Locations = append(a.Locations, s)
			}
		}
	}

	return a
}

// DisplayName returns the animal name or FallbackName when it is empty.
func (a Animal) DisplayName() string {
	if a.Name == "" {
		return FallbackName
	}
	return a.Name
}

// TaxonomyValue returns the taxonomy value for key or FallbackValue.
func (a Animal) TaxonomyValue(key string) string {
	if v := a.Taxonomy[key]; v != "" {
		return v
	}
	return FallbackValue
}

// HasLocations reports whether at least one location is known.
func (a Animal) HasLocations() bool {
	return len(a.Locations) > 0
}

// Characteristic returns the characteristic value for key and whether it is present.
func (a Animal) Characteristic(key string) (string, bool) {
	v, ok := a.Characteristics[key]
	return v, ok
}

func stringMap(v any) map[string]string {
	obj, ok := v.(map[string]any)
	if !ok || len(obj) == 0 {
		return nil
	}
	out := make(map[string]string, len(obj))
	for k, raw := range obj {
		if s, ok := scalarString(raw); ok {
			out[k] = s
		}
	}
	return out
}

// scalarString stringifies JSON scalars. null, objects and arrays are rejected.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
