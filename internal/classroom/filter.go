// ============================================================================
// Time Window Filter - WatClassroom
// ============================================================================
// Última etapa del pipeline: conserva solo los slots vigentes o que parten
// dentro de la próxima hora, y poda salas y edificios que quedan vacíos.
// ============================================================================

package classroom

import (
	"log"
	"time"
)

// formato de las horas del feed: "09:30:00"
const slotTimeLayout = "15:04:05"

// FilterByTime conserva un slot si está en curso (inicio <= now <= fin) o
// si parte dentro de la próxima hora (now <= inicio <= now+1h). Las horas
// HH:MM:SS se interpretan sobre la fecha civil de now y en su misma zona
// horaria; el reloj lo inyecta el caller, así que la función es pura y
// testeable. El orden de edificios y salas sobrevivientes se preserva, de
// modo que el ranking de la etapa anterior no se altera, solo se recorta.
func FilterByTime(slots *SlotMap, now time.Time) *SlotMap {
	cutoff := now.Add(time.Hour)

	out := NewSlotMap()
	for _, b := range slots.Buildings() {
		var rooms []*RoomSchedule
		for _, room := range b.Rooms {
			var kept []TimeSlot
			for _, slot := range room.Slots {
				start, end, err := slotTimes(slot, now)
				if err != nil {
					log.Printf("slot con hora ilegible en %s %v, se descarta: %v", room.Key, slot, err)
					continue
				}
				ongoing := !start.After(now) && !now.After(end)
				startsSoon := !now.After(start) && !start.After(cutoff)
				if ongoing || startsSoon {
					kept = append(kept, slot)
				}
			}
			if len(kept) > 0 {
				rooms = append(rooms, &RoomSchedule{Key: room.Key, Slots: kept})
			}
		}
		if len(rooms) > 0 {
			out.Ensure(b.Code).Rooms = rooms
		}
	}
	return out
}

// slotTimes ancla las horas del slot a la fecha civil de now, en la zona
// horaria de now
func slotTimes(slot TimeSlot, now time.Time) (start, end time.Time, err error) {
	loc := now.Location()
	year, month, day := now.Date()

	st, err := time.ParseInLocation(slotTimeLayout, slot.Start(), loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	et, err := time.ParseInLocation(slotTimeLayout, slot.End(), loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start = time.Date(year, month, day, st.Hour(), st.Minute(), st.Second(), 0, loc)
	end = time.Date(year, month, day, et.Hour(), et.Minute(), et.Second(), 0, loc)
	return start, end, nil
}
