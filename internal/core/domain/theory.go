package domain

// ObType is an object type of a theory.
type ObType struct {
	ID   string
	Name string
}

// MorType is a morphism type of a theory with typed endpoints.
type MorType struct {
	ID   string
	Name string
	Dom  string
	Cod  string
}

// Theory is the handle of a double theory that models are typed in.
type Theory struct {
	ID          string
	Name        string
	Description string
	ObTypes     []ObType
	MorTypes    []MorType
}

// ObType looks up an object type by id.
func (t *Theory) ObType(id string) (ObType, bool) {
	for _, ob := range t.ObTypes {
		if ob.ID == id {
			return ob, true
		}
	}
	return ObType{}, false
}

// MorType looks up a morphism type by id.
func (t *Theory) MorType(id string) (MorType, bool) {
	for _, mor := range t.MorTypes {
		if mor.ID == id {
			return mor, true
		}
	}
	return MorType{}, false
}

// DefaultObType returns the object type used when a judgment leaves it empty.
func (t *Theory) DefaultObType() (ObType, bool) {
	if len(t.ObTypes) == 0 {
		return ObType{}, false
	}
	return t.ObTypes[0], true
}

// DefaultMorType returns the morphism type used when a judgment leaves it empty.
func (t *Theory) DefaultMorType() (MorType, bool) {
	if len(t.MorTypes) == 0 {
		return MorType{}, false
	}
	return t.MorTypes[0], true
}
