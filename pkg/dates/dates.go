// Package dates formatea fechas del calendario gregoriano con nombres de mes en árabe
// y calcula edades. Es el único módulo de fechas del portal.
package dates

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

var englishMonths = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var arabicDigits = strings.NewReplacer(
	"0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤",
	"5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩",
)

func isArabic(tag language.Tag) bool {
	base, _ := tag.Base()
	return base.String() == "ar"
}

// FormatGregorian devuelve "14 أكتوبر 2026" (con dígitos arábigo-índicos en árabe).
// Con includeTime agrega "HH:MM".
func FormatGregorian(t time.Time, tag language.Tag, includeTime bool) string {
	var s string
	if isArabic(tag) {
		s = fmt.Sprintf("%d %s %d", t.Day(), arabicMonths[t.Month()-1], t.Year())
	} else {
		s = fmt.Sprintf("%s %d, %d", englishMonths[t.Month()-1], t.Day(), t.Year())
	}
	if includeTime {
		s += " " + t.Format("15:04")
	}
	if isArabic(tag) {
		return arabicDigits.Replace(s)
	}
	return s
}

// FormatShort devuelve DD/MM/YYYY.
func FormatShort(t time.Time, tag language.Tag) string {
	s := t.Format("02/01/2006")
	if isArabic(tag) {
		return arabicDigits.Replace(s)
	}
	return s
}

// Age calcula la edad en años cumplidos a la fecha now.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// SameDay indica si a y b caen en el mismo día calendario (en la zona de a).
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// FormatRelative devuelve "اليوم HH:MM", "أمس HH:MM", "منذ N أيام" o la fecha completa.
func FormatRelative(t, now time.Time, tag language.Tag) string {
	ar := isArabic(tag)
	clock := t.Format("15:04")
	if SameDay(now, t) {
		if ar {
			return arabicDigits.Replace("اليوم " + clock)
		}
		return "today " + clock
	}
	days := int(now.Sub(t).Hours() / 24)
	if days < 0 {
		days = -days
	}
	if days <= 1 {
		if ar {
			return arabicDigits.Replace("أمس " + clock)
		}
		return "yesterday " + clock
	}
	if days < 7 {
		if ar {
			return arabicDigits.Replace(fmt.Sprintf("منذ %d أيام", days))
		}
		return fmt.Sprintf("%d days ago", days)
	}
	return FormatGregorian(t, tag, false)
}
