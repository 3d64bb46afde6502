package grammar

// Macro is a named replacement text, installed with the define directive.
type Macro struct {
	Name string
	Text string
}

// macroStorage keeps macros in definition order, so diagnostics can list
// them the way the document introduced them. Lookups are rare enough that
// a linear scan is fine; redefinition overwrites in place.
type macroStorage struct {
	macros []Macro
}

func (ms *macroStorage) define(name, text string) {
	for i := range ms.macros {
		if ms.macros[i].Name == name {
			ms.macros[i].Text = text
			tracer().Debugf("name %s redefined as %s", name, text)
			return
		}
	}
	ms.macros = append(ms.macros, Macro{Name: name, Text: text})
	tracer().Debugf("name %s defined as %s", name, text)
}

func (ms *macroStorage) lookup(name string) (string, bool) {
	for i := range ms.macros {
		if ms.macros[i].Name == name {
			return ms.macros[i].Text, true
		}
	}
	return "", false
}

func (ms *macroStorage) all() []Macro {
	out := make([]Macro, len(ms.macros))
	copy(out, ms.macros)
	return out
}
