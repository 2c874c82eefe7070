package models

// State is a US state, district or territory offered in the form.
type State struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Departments is the fixed set of departments an employee can belong to.
var Departments = []string{
	"Sales",
	"Marketing",
	"Engineering",
	"Human Resources",
	"Legal",
}

// States is the fixed set of states accepted for the address.
var States = []State{
	{Name: "Alabama", Abbreviation: "AL"},
	{Name: "Alaska", Abbreviation: "AK"},
	{Name: "American Samoa", Abbreviation: "AS"},
	{Name: "Arizona", Abbreviation: "AZ"},
	{Name: "Arkansas", Abbreviation: "AR"},
	{Name: "California", Abbreviation: "CA"},
	{Name: "Colorado", Abbreviation: "CO"},
	{Name: "Connecticut", Abbreviation: "CT"},
	{Name: "Delaware", Abbreviation: "DE"},
	{Name: "District Of Columbia", Abbreviation: "DC"},
	{Name: "Federated States Of Micronesia", Abbreviation: "FM"},
	{Name: "Florida", Abbreviation: "FL"},
	{Name: "Georgia", Abbreviation: "GA"},
	{Name: "Guam", Abbreviation: "GU"},
	{Name: "Hawaii", Abbreviation: "HI"},
	{Name: "Idaho", Abbreviation: "ID"},
	{Name: "Illinois", Abbreviation: "IL"},
	{Name: "Indiana", Abbreviation: "IN"},
	{Name: "Iowa", Abbreviation: "IA"},
	{Name: "Kansas", Abbreviation: "KS"},
	{Name: "Kentucky", Abbreviation: "KY"},
	{Name: "Louisiana", Abbreviation: "LA"},
	{Name: "Maine", Abbreviation: "ME"},
	{Name: "Marshall Islands", Abbreviation: "MH"},
	{Name: "Maryland", Abbreviation: "MD"},
	{Name: "Massachusetts", Abbreviation: "MA"},
	{Name: "Michigan", Abbreviation: "MI"},
	{Name: "Minnesota", Abbreviation: "MN"},
	{Name: "Mississippi", Abbreviation: "MS"},
	{Name: "Missouri", Abbreviation: "MO"},
	{Name: "Montana", Abbreviation: "MT"},
	{Name: "Nebraska", Abbreviation: "NE"},
	{Name: "Nevada", Abbreviation: "NV"},
	{Name: "New Hampshire", Abbreviation: "NH"},
	{Name: "New Jersey", Abbreviation: "NJ"},
	{Name: "New Mexico", Abbreviation: "NM"},
	{Name: "New York", Abbreviation: "NY"},
	{Name: "North Carolina", Abbreviation: "NC"},
	{Name: "North Dakota", Abbreviation: "ND"},
	{Name: "Northern Mariana Islands", Abbreviation: "MP"},
	{Name: "Ohio", Abbreviation: "OH"},
	{Name: "Oklahoma", Abbreviation: "OK"},
	{Name: "Oregon", Abbreviation: "OR"},
	{Name: "Palau", Abbreviation: "PW"},
	{Name: "Pennsylvania", Abbreviation: "PA"},
	{Name: "Puerto Rico", Abbreviation: "PR"},
	{Name: "Rhode Island", Abbreviation: "RI"},
	{Name: "South Carolina", Abbreviation: "SC"},
	{Name: "South Dakota", Abbreviation: "SD"},
	{Name: "Tennessee", Abbreviation: "TN"},
	{Name: "Texas", Abbreviation: "TX"},
	{Name: "Utah", Abbreviation: "UT"},
	{Name: "Vermont", Abbreviation: "VT"},
	{Name: "Virgin Islands", Abbreviation: "VI"},
	{Name: "Virginia", Abbreviation: "VA"},
	{Name: "Washington", Abbreviation: "WA"},
	{Name: "West Virginia", Abbreviation: "WV"},
	{Name: "Wisconsin", Abbreviation: "WI"},
	{Name: "Wyoming", Abbreviation: "WY"},
}

// IsState reports whether name is a state name from the catalog.
func IsState(name string) bool {
	for _, s := range States {
		if s.Name == name {
			return true
		}
	}
	return false
}

// IsDepartment reports whether name is a department from the catalog.
func IsDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}
