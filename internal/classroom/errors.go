package classroom

import "errors"

// Taxonomía de errores del pipeline. Los handlers los detectan con
// errors.Is y los traducen a códigos HTTP; el resto del código los envuelve
// con fmt.Errorf("...: %w", ...) para agregar contexto.
var (
	// ErrDataUnavailable: el dataset de ubicaciones no se pudo leer o
	// parsear. Es data estática, reintentar dentro del mismo run fallaría
	// igual -> 500.
	ErrDataUnavailable = errors.New("datos de ubicación de edificios no disponibles")

	// ErrUpstreamUnavailable: fallo de transporte, timeout o status no
	// exitoso del feed OpenClassrooms -> 502.
	ErrUpstreamUnavailable = errors.New("feed de salas abiertas no disponible")

	// ErrUpstreamProtocol: el feed respondió pero el cuerpo no tiene la
	// forma esperada (JSON inválido o sin data.features) -> 502.
	ErrUpstreamProtocol = errors.New("respuesta inesperada del feed de salas abiertas")

	// ErrUnknownBuilding: el cliente pidió un código que no existe en el
	// dataset de ubicaciones. Error del cliente, no del servidor -> 400.
	ErrUnknownBuilding = errors.New("código de edificio desconocido")
)
