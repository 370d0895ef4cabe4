package models

// FieldDefinition describes one input of a submission form.
type FieldDefinition struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Required    bool     `json:"required,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// Form is the definition the client renders for one submission kind.
type Form struct {
	Kind        Kind               `json:"kind"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Fields      []FieldDefinition  `json:"fields"`
	Checklist   *ChecklistTemplate `json:"checklist,omitempty"`
	Answers     []Answer           `json:"answers,omitempty"`
	MaxFiles    int                `json:"maxFiles"`
}

// Departments offered by the change request form.
var Departments = []string{"Sales", "Marketing", "FnB", "HR", "Spa", "IT", "Commercial", "Corporate", "Other"}

// RequiredFields returns the names of the fields marked required.
func (f *Form) RequiredFields() []string {
	var names []string
	for _, fd := range f.Fields {
		if fd.Required {
			names = append(names, fd.Name)
		}
	}
	return names
}
