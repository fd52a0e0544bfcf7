package application

import "voxlate/internal/domain"

// Picker is one language selection together with the visibility of its
// selection list.
type Picker struct {
	catalog  domain.Catalog
	selected domain.Language
	open     bool
}

func NewPicker(catalog domain.Catalog, code string) (*Picker, error) {
	l, err := catalog.Must(code)
	if err != nil {
		return nil, err
	}
	return &Picker{catalog: catalog, selected: l}, nil
}

func (p *Picker) Open()                   { p.open = true }
func (p *Picker) Close()                  { p.open = false }
func (p *Picker) IsOpen() bool            { return p.open }
func (p *Picker) Catalog() domain.Catalog { return p.catalog }

func (p *Picker) Selected() domain.Language {
	return p.selected
}

// Select changes the selection and closes the list. Codes outside the catalog
// leave the picker untouched.
func (p *Picker) Select(code string) error {
	l, err := p.catalog.Must(code)
	if err != nil {
		return err
	}
	p.selected = l
	p.open = false
	return nil
}

type PickerState struct {
	Selected domain.Language `json:"selected"`
	Open     bool            `json:"open"`
}

func (p *Picker) State() PickerState {
	return PickerState{Selected: p.selected, Open: p.open}
}
