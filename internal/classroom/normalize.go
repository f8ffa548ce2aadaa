// ============================================================================
// Normalizer - WatClassroom
// ============================================================================
// Convierte los features crudos del feed OpenClassrooms del portal en el
// SlotMap canónico. El feed tiene dos rarezas conocidas:
//   - openClassroomSlots puede venir como objeto JSON, como string JSON
//     doblemente codificado, o no venir
//   - Schedule[] es en la práctica una lista singleton; solo la primera
//     entrada es autoritativa
// ============================================================================

package classroom

import (
	"bytes"
	"encoding/json"
	"log"
)

// Feature es un registro crudo del feed, tal como llega en data.features[]
type Feature struct {
	Properties FeatureProperties `json:"properties"`
}

// FeatureProperties son las propiedades que consume el pipeline.
// OpenClassroomSlots se deja como RawMessage porque su tipo varía.
type FeatureProperties struct {
	BuildingCode         string          `json:"buildingCode"`
	BuildingName         string          `json:"buildingName"`
	SupportOpenClassroom bool            `json:"supportOpenClassroom"`
	OpenClassroomSlots   json.RawMessage `json:"openClassroomSlots"`
}

// forma interna de openClassroomSlots una vez decodificado
type slotsPayload struct {
	Data []roomEntry `json:"data"`
}

type roomEntry struct {
	RoomNumber string          `json:"roomNumber"`
	Schedule   []scheduleEntry `json:"Schedule"`
}

type scheduleEntry struct {
	Slots []slotEntry `json:"Slots"`
}

type slotEntry struct {
	StartTime string `json:"StartTime"`
	EndTime   string `json:"EndTime"`
}

// Normalize convierte los features en un SlotMap. Incluye todos los
// edificios con supportOpenClassroom=true, tengan o no salas abiertas: la
// poda de edificios vacíos ocurre recién en el filtro por hora. Un edificio
// con slots malformados no hace fallar el lote completo: queda sin salas y
// se registra una advertencia.
func Normalize(features []Feature) *SlotMap {
	m := NewSlotMap()
	for _, f := range features {
		props := f.Properties
		if !props.SupportOpenClassroom {
			continue
		}
		if props.BuildingCode == "" {
			log.Printf("feature sin buildingCode (%q), se omite", props.BuildingName)
			continue
		}

		building := m.Ensure(props.BuildingCode)

		slots, ok := decodeSlots(props.OpenClassroomSlots, props.BuildingCode)
		if !ok {
			continue
		}

		for _, room := range slots.Data {
			schedule := building.Room(props.BuildingCode + room.RoomNumber)
			if len(room.Schedule) == 0 {
				continue
			}
			// solo la primera entrada de Schedule[] es autoritativa
			for _, s := range room.Schedule[0].Slots {
				schedule.Append(TimeSlot{s.StartTime, s.EndTime})
			}
		}
	}
	return m
}

// decodeSlots decodifica openClassroomSlots probando primero el objeto
// directo y después el caso string doblemente codificado. Cualquier fallo
// se trata como "sin slots" para ese edificio (ok=false), nunca como error
// del request completo.
func decodeSlots(raw json.RawMessage, code string) (slotsPayload, bool) {
	var payload slotsPayload

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return payload, false
	}

	// caso string doblemente codificado: `"{\"data\":[...]}"`
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			log.Printf("openClassroomSlots ilegible para %s: %v", code, err)
			return payload, false
		}
		raw = json.RawMessage(encoded)
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("openClassroomSlots inválido para %s (fragmento: %.80s): %v", code, string(raw), err)
		return payload, false
	}
	return payload, true
}
