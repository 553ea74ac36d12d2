package component

// AppearanceComponent holds replicated visual state as key/value data
type AppearanceComponent struct {
	Data map[string]any
}
