package component

// MetaComponent names an entity and the prototype it was spawned from
type MetaComponent struct {
	Name      string
	Prototype string
	Glyph     rune // Sandbox rendering
}
