// Package testschema is a small generated component set used by tests across the module.
package testschema

//go:generate go run ../../cmd/ecstool gen --schema schema.yaml --out components_generated.go

type Health struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

func NewHealth(maxHP int) Health {
	return Health{Current: maxHP, Max: maxHP}
}
