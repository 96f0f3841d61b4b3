package domain

// Chant represents the reply to /welcome group fah.
type Chant struct {
	Response string
}

// NewChant creates the Chant answering fah.
func NewChant() *Chant {
	return &Chant{Response: "rohdah"}
}
