package validation

import (
	"fmt"
	"math"
)

// CoordinateError representa un error de validación de coordenadas
type CoordinateError struct {
	Field   string
	Value   float64
	Message string
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s: %s (valor: %.6f)", e.Field, e.Message, e.Value)
}

// validateRange valida que un valor sea un número real dentro de [min, max]
func validateRange(value float64, field string, min, max float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &CoordinateError{Field: field, Value: value, Message: "no es un número real"}
	}
	if value < min || value > max {
		return &CoordinateError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("debe estar entre %.0f y %.0f", min, max),
		}
	}
	return nil
}

// ValidateLatitude valida una coordenada de latitud
func ValidateLatitude(lat float64, fieldName string) error {
	return validateRange(lat, fieldName, -90, 90)
}

// ValidateLongitude valida una coordenada de longitud
func ValidateLongitude(lon float64, fieldName string) error {
	return validateRange(lon, fieldName, -180, 180)
}

// ValidateCoordinatePair valida un par de coordenadas (lat, lon)
func ValidateCoordinatePair(lat, lon float64, prefix string) error {
	if err := ValidateLatitude(lat, prefix+"_lat"); err != nil {
		return err
	}
	return ValidateLongitude(lon, prefix+"_lon")
}

// ValidateWaterlooRegion valida que las coordenadas caigan dentro de la
// región de Waterloo. El dataset es de un solo campus; una coordenada fuera
// de esta caja es casi seguro un dato corrupto.
// Aproximadamente: Lat 43.2 a 43.7, Lon -80.8 a -80.2
func ValidateWaterlooRegion(lat, lon float64) error {
	const (
		minLat = 43.2
		maxLat = 43.7
		minLon = -80.8
		maxLon = -80.2
	)

	if lat < minLat || lat > maxLat {
		return &CoordinateError{
			Field:   "latitude",
			Value:   lat,
			Message: fmt.Sprintf("fuera del rango de Waterloo (%.1f a %.1f)", minLat, maxLat),
		}
	}
	if lon < minLon || lon > maxLon {
		return &CoordinateError{
			Field:   "longitude",
			Value:   lon,
			Message: fmt.Sprintf("fuera del rango de Waterloo (%.1f a %.1f)", minLon, maxLon),
		}
	}
	return nil
}

// IsZeroCoordinate verifica si una coordenada es (0, 0)
func IsZeroCoordinate(lat, lon float64) bool {
	return lat == 0 && lon == 0
}
