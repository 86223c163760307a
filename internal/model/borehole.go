package model

import "fmt"

// BoreholeLayer is one soil layer of a borehole, from the bottom of the
// layer above (or the borehole top) down to Bottom.
type BoreholeLayer struct {
	Material string  `yaml:"material"`
	Bottom   float64 `yaml:"bottom"`
}

// Borehole defines the stratigraphy at one x position.
type Borehole struct {
	Name   string          `yaml:"name"`
	X      float64         `yaml:"x"`
	Top    float64         `yaml:"top"`
	Head   float64         `yaml:"head"`
	Layers []BoreholeLayer `yaml:"layers"`
}

// Validate checks the layer order of the borehole. Material names are
// checked against the model by Model.Validate.
func (b *Borehole) Validate() error {
	if b.Name == "" {
		return &ValidationError{"borehole must have a name"}
	}
	if len(b.Layers) == 0 {
		return &ValidationError{fmt.Sprintf("borehole %s has no layers", b.Name)}
	}
	prev := b.Top
	for i, l := range b.Layers {
		if l.Material == "" {
			return &ValidationError{fmt.Sprintf("borehole %s layer %d has no material", b.Name, i+1)}
		}
		if l.Bottom >= prev {
			return &ValidationError{fmt.Sprintf("borehole %s layer %d: bottom %g must be below %g", b.Name, i+1, l.Bottom, prev)}
		}
		prev = l.Bottom
	}
	return nil
}

// LayerTop returns the top elevation of layer i.
func (b *Borehole) LayerTop(i int) float64 {
	if i == 0 {
		return b.Top
	}
	return b.Layers[i-1].Bottom
}

// Thickness returns the thickness of layer i.
func (b *Borehole) Thickness(i int) float64 {
	return b.LayerTop(i) - b.Layers[i].Bottom
}

// Depth returns the total depth of the borehole.
func (b *Borehole) Depth() float64 {
	if len(b.Layers) == 0 {
		return 0
	}
	return b.Top - b.Layers[len(b.Layers)-1].Bottom
}

// MaterialAt returns the material at elevation y, or false when y is
// outside the borehole.
func (b *Borehole) MaterialAt(y float64) (string, bool) {
	if y > b.Top {
		return "", false
	}
	for _, l := range b.Layers {
		if y >= l.Bottom {
			return l.Material, true
		}
	}
	return "", false
}
