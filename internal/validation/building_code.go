package validation

import (
	"fmt"
	"regexp"
)

// los códigos de edificio del campus son cortos y alfanuméricos en
// mayúsculas: MC, DC, E7, PHY, QNC, ...
var buildingCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{0,7}$`)

// ValidateBuildingCode valida la forma de un código de edificio antes de
// consultarlo contra el dataset. No verifica que exista, solo que tenga
// pinta de código.
func ValidateBuildingCode(code string) error {
	if code == "" {
		return fmt.Errorf("código de edificio vacío")
	}
	if !buildingCodePattern.MatchString(code) {
		return fmt.Errorf("código de edificio con formato inválido: %q", code)
	}
	return nil
}
