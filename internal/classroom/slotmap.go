// ============================================================================
// SlotMap - WatClassroom
// ============================================================================
// Estructura canónica edificio -> sala -> slots que fluye por las tres
// etapas del pipeline (Normalizer -> Ranker -> Filter).
//
// IMPORTANTE: el orden de inserción de los edificios ES la señal de ranking
// que consume el frontend, por eso no se usa un map de Go (orden aleatorio)
// sino slices con índice auxiliar, y el MarshalJSON propio serializa las
// keys en orden de inserción.
// ============================================================================

package classroom

import (
	"bytes"
	"encoding/json"
)

// TimeSlot es un intervalo [inicio, fin] en formato HH:MM:SS tal como lo
// entrega el feed. El feed no garantiza inicio < fin; se preserva tal cual.
type TimeSlot [2]string

// Start retorna la hora de inicio del slot
func (s TimeSlot) Start() string { return s[0] }

// End retorna la hora de término del slot
func (s TimeSlot) End() string { return s[1] }

// RoomSchedule son los slots de una sala. La key es la concatenación
// códigoEdificio + númeroSala (ej: "MC2061"), no una key compuesta.
type RoomSchedule struct {
	Key   string
	Slots []TimeSlot
}

// BuildingSlots agrupa las salas de un edificio preservando su orden
type BuildingSlots struct {
	Code  string
	Rooms []*RoomSchedule
}

// Room retorna la sala con esa key, creándola vacía si no existe
func (b *BuildingSlots) Room(key string) *RoomSchedule {
	for _, r := range b.Rooms {
		if r.Key == key {
			return r
		}
	}
	r := &RoomSchedule{Key: key}
	b.Rooms = append(b.Rooms, r)
	return r
}

// Append agrega un slot al final de la sala
func (r *RoomSchedule) Append(slot TimeSlot) {
	r.Slots = append(r.Slots, slot)
}

// SlotMap es el mapa ordenado de edificios
type SlotMap struct {
	entries []*BuildingSlots
	index   map[string]*BuildingSlots
}

// NewSlotMap crea un SlotMap vacío
func NewSlotMap() *SlotMap {
	return &SlotMap{index: make(map[string]*BuildingSlots)}
}

// Ensure retorna el edificio con ese código, creándolo (sin salas) si no
// existe todavía
func (m *SlotMap) Ensure(code string) *BuildingSlots {
	if b, ok := m.index[code]; ok {
		return b
	}
	b := &BuildingSlots{Code: code}
	m.entries = append(m.entries, b)
	m.index[code] = b
	return b
}

// Add agrega un edificio ya construido al final del mapa
func (m *SlotMap) Add(b *BuildingSlots) {
	if _, ok := m.index[b.Code]; ok {
		return
	}
	m.entries = append(m.entries, b)
	m.index[b.Code] = b
}

// Get retorna el edificio con ese código, si está presente
func (m *SlotMap) Get(code string) (*BuildingSlots, bool) {
	b, ok := m.index[code]
	return b, ok
}

// Buildings retorna los edificios en orden de inserción
func (m *SlotMap) Buildings() []*BuildingSlots {
	return m.entries
}

// Codes retorna los códigos de edificio en orden de inserción
func (m *SlotMap) Codes() []string {
	codes := make([]string, 0, len(m.entries))
	for _, b := range m.entries {
		codes = append(codes, b.Code)
	}
	return codes
}

// Len retorna la cantidad de edificios presentes
func (m *SlotMap) Len() int {
	return len(m.entries)
}

// MarshalJSON serializa el mapa como objeto JSON anidado
// {"MC": {"MC2061": [["09:00:00","17:00:00"]]}} respetando el orden de
// inserción de edificios y salas (encoding/json ordenaría las keys)
func (m *SlotMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		code, err := json.Marshal(b.Code)
		if err != nil {
			return nil, err
		}
		buf.Write(code)
		buf.WriteByte(':')
		buf.WriteByte('{')
		for j, room := range b.Rooms {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(room.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if room.Slots == nil {
				buf.WriteString("[]")
				continue
			}
			slots, err := json.Marshal(room.Slots)
			if err != nil {
				return nil, err
			}
			buf.Write(slots)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
