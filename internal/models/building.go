package models

// Building representa un edificio del campus con su ubicación geográfica.
// El código del edificio (MC, DC, PHY, ...) es la key del dataset, no un
// campo del registro.
type Building struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// BuildingMap asocia código de edificio -> registro de ubicación.
// Es el snapshot inmutable que entrega el Store de edificios.
type BuildingMap map[string]Building
