package domain

import (
	"regexp"
	"strings"
)

const (
	// MobileLength — полная длина тайваньского мобильного номера.
	MobileLength = 10
	// mobilePrefix принудительно восстанавливается, если пользователь его стёр.
	mobilePrefix = "09"
	// CarrierNone — значение-«пустышка»: носитель не указан.
	CarrierNone = "/"
	// NameMaxLen и NoteMaxLen — лимиты свободного текста; превышение молча
	// усекается при отправке, это и есть политика восстановления.
	NameMaxLen = 25
	NoteMaxLen = 100
)

// Допустимые формы кода носителя после ведущего «/»:
// сертификат (2 буквы + 14 цифр), код пожертвования (8 цифр),
// мобильный штрих-код (7 буквенно-цифровых символов).
var carrierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/[A-Z]{2}[0-9]{14}$`),
	regexp.MustCompile(`^/[0-9]{8}$`),
	regexp.MustCompile(`^/[A-Z0-9]{7}$`),
}

// OrderDraft — ещё не отправленные контактные поля формы оформления заказа.
type OrderDraft struct {
	Name    string
	Mobile  string
	Carrier string
	Note    string
}

// NormalizeMobile убирает все нецифровые символы, восстанавливает префикс «09»
// и ограничивает длину десятью символами. Инвариант: результат всегда
// начинается с «09» и не длиннее MobileLength.
func NormalizeMobile(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if !strings.HasPrefix(digits, mobilePrefix) {
		if strings.HasPrefix(mobilePrefix, digits) {
			// Введено пустое значение или одинокий «0» — достраиваем префикс.
			digits = mobilePrefix
		} else {
			digits = mobilePrefix + digits
		}
	}
	if len(digits) > MobileLength {
		digits = digits[:MobileLength]
	}
	return digits
}

// NormalizeCarrier переводит ввод в верхний регистр и восстанавливает
// ведущий «/». Пустой ввод означает «носитель не указан».
func NormalizeCarrier(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !strings.HasPrefix(s, CarrierNone) {
		s = CarrierNone + s
	}
	return s
}

// Normalize возвращает черновик с приведёнными полями: телефон и код носителя
// нормализованы, имя и примечание усечены до лимитов.
func (d OrderDraft) Normalize() OrderDraft {
	return OrderDraft{
		Name:    truncateRunes(strings.TrimSpace(d.Name), NameMaxLen),
		Mobile:  NormalizeMobile(d.Mobile),
		Carrier: NormalizeCarrier(d.Carrier),
		Note:    truncateRunes(strings.TrimSpace(d.Note), NoteMaxLen),
	}
}

// Validate проверяет нормализованный черновик перед отправкой заказа.
// Нарушение блокирует отправку до исправления; до сети запрос не доходит.
func (d OrderDraft) Validate() error {
	if len(d.Mobile) != MobileLength || !strings.HasPrefix(d.Mobile, mobilePrefix) {
		return ErrInvalidMobile
	}
	if d.Carrier != CarrierNone && !validCarrier(d.Carrier) {
		return ErrInvalidCarrier
	}
	return nil
}

func validCarrier(s string) bool {
	for _, p := range carrierPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// truncateRunes усекает строку по рунам, а не по байтам: имена и примечания
// обычно набраны CJK-символами.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
