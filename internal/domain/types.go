package domain

// MapOfAny is the data passed to Liquid personalization
type MapOfAny map[string]any

// Merge returns a new map holding m overlaid with other
func (m MapOfAny) Merge(other MapOfAny) MapOfAny {
	out := make(MapOfAny, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
