package entities

import "strings"

// FieldName identifies one of the nine items collected for a manifiesto.
//
// The string values are the entity tags produced by the NLU step, so they are
// also the wire names used by the HTTP adapter.

type FieldName string

const (
	FieldFreightCost      FieldName = "freight_cost"
	FieldCargoDescription FieldName = "cargo_description"
	FieldWeight           FieldName = "weight"
	FieldLoadDate         FieldName = "load_date"
	FieldUnloadDate       FieldName = "unload_date"
	FieldVehiclePlate     FieldName = "vehicle_plate"
	FieldDriverLicense    FieldName = "driver_license"
	FieldOrigin           FieldName = "origin"
	FieldDestination      FieldName = "destination"
)

// FieldOrder is the prompting order used while collecting.
var FieldOrder = []FieldName{
	FieldFreightCost,
	FieldCargoDescription,
	FieldWeight,
	FieldLoadDate,
	FieldUnloadDate,
	FieldVehiclePlate,
	FieldDriverLicense,
	FieldOrigin,
	FieldDestination,
}

// FieldKind is the semantic type of a field.
type FieldKind string

const (
	KindCurrency FieldKind = "currency"
	KindText     FieldKind = "text"
	KindQuantity FieldKind = "quantity"
	KindDate     FieldKind = "date"
	KindPlate    FieldKind = "plate"
)

// FieldSpec is the static description of a collectible field.
type FieldSpec struct {
	Name    FieldName
	Kind    FieldKind
	Label   string
	Icon    string
	Prompt  string
	Example string
}

var fieldSpecs = map[FieldName]FieldSpec{
	FieldFreightCost: {
		Name: FieldFreightCost, Kind: KindCurrency, Label: "Flete", Icon: "💰",
		Prompt: "¿Cuál es el valor del flete?", Example: "150000 o $150,000",
	},
	FieldCargoDescription: {
		Name: FieldCargoDescription, Kind: KindText, Label: "Carga", Icon: "📦",
		Prompt: "¿Qué mercancía vas a transportar?", Example: "cajas de café",
	},
	FieldWeight: {
		Name: FieldWeight, Kind: KindQuantity, Label: "Peso", Icon: "⚖️",
		Prompt: "¿Cuál es el peso de la carga?", Example: "500 kg o 1.5 toneladas",
	},
	FieldLoadDate: {
		Name: FieldLoadDate, Kind: KindDate, Label: "Cargue", Icon: "📅",
		Prompt: "¿Cuál es la fecha de cargue?", Example: "hoy, mañana o 15/03/2025",
	},
	FieldUnloadDate: {
		Name: FieldUnloadDate, Kind: KindText, Label: "Descarga", Icon: "📅",
		Prompt: "¿Cuál es la fecha de descargue?", Example: "17/03/2025",
	},
	FieldVehiclePlate: {
		Name: FieldVehiclePlate, Kind: KindPlate, Label: "Tarjeta", Icon: "🚗",
		Prompt: "¿Cuál es la placa del vehículo?", Example: "ABC123",
	},
	FieldDriverLicense: {
		Name: FieldDriverLicense, Kind: KindText, Label: "Licencia", Icon: "🪪",
		Prompt: "¿Cuál es el número de licencia del conductor?", Example: "1032456789",
	},
	FieldOrigin: {
		Name: FieldOrigin, Kind: KindText, Label: "Origen", Icon: "📍",
		Prompt: "¿Cuál es el municipio de origen?", Example: "Medellín",
	},
	FieldDestination: {
		Name: FieldDestination, Kind: KindText, Label: "Destino", Icon: "🎯",
		Prompt: "¿Cuál es el municipio de destino?", Example: "Bogotá",
	},
}

// Spec returns the static description of the field.
func (f FieldName) Spec() FieldSpec {
	return fieldSpecs[f]
}

// Valid reports whether f is one of the nine known fields.
func (f FieldName) Valid() bool {
	_, ok := fieldSpecs[f]
	return ok
}

// ParseFieldName resolves an entity tag. Unknown tags are rejected.
func ParseFieldName(tag string) (FieldName, bool) {
	f := FieldName(strings.TrimSpace(tag))
	if !f.Valid() {
		return "", false
	}
	return f, true
}

// FieldState holds the last raw input offered for a field and, when the last
// validation succeeded, its normalized value.
type FieldState struct {
	Raw        *string `json:"raw,omitempty"`
	Normalized *string `json:"normalized,omitempty"`
}

// Filled reports whether the field has an accepted value.
func (s FieldState) Filled() bool {
	return s.Normalized != nil
}

// Value returns the normalized value or "" when unfilled.
func (s FieldState) Value() string {
	if s.Normalized == nil {
		return ""
	}
	return *s.Normalized
}

// Entity is one (field tag, text value) pair produced by entity extraction.
type Entity struct {
	Field string `json:"field"`
	Value string `json:"value"`
}
