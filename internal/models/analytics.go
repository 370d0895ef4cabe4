package models

// View is a navigable screen tracked by the page-view counter.
type View string

const (
	ViewForm      View = "form"
	ViewList      View = "list"
	ViewDashboard View = "dashboard"
)

var Views = []View{ViewForm, ViewList, ViewDashboard}

func (v View) Valid() bool {
	switch v {
	case ViewForm, ViewList, ViewDashboard:
		return true
	}
	return false
}
