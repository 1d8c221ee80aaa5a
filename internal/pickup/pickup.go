// Package pickup вычисляет доступные слоты самовывоза.
package pickup

import "time"

const (
	// SlotInterval — шаг сетки слотов.
	SlotInterval = 10 * time.Minute
	// SlotCount — сколько слотов предлагается вперёд.
	SlotCount = 12
	// TimeLayout — формат слота, "ЧЧ:ММ".
	TimeLayout = "15:04"
)

// Slots возвращает SlotCount ближайших слотов, начиная со следующей
// 10-минутной границы после now. Точная граница (12:30:00) тоже
// сдвигается вперёд: слот должен быть строго в будущем.
func Slots(now time.Time) []string {
	first := nextBoundary(now)
	slots := make([]string, 0, SlotCount)
	for i := 0; i < SlotCount; i++ {
		slots = append(slots, first.Add(time.Duration(i)*SlotInterval).Format(TimeLayout))
	}
	return slots
}

// Valid сообщает, входит ли слот в текущее окно Slots(now).
func Valid(now time.Time, slot string) bool {
	for _, s := range Slots(now) {
		if s == slot {
			return true
		}
	}
	return false
}

func nextBoundary(now time.Time) time.Time {
	step := int(SlotInterval / time.Minute)
	minute := (now.Minute()/step + 1) * step
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location()).
		Add(time.Duration(minute) * time.Minute)
}
