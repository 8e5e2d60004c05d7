package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/pt_BR"

	"github.com/pders01/relampago/internal/storage"
)

// DateFormatter renders publication dates with pt-BR month names.
type DateFormatter struct {
	loc    *time.Location
	now    func() time.Time
	months locales.Translator
}

func NewDateFormatter(loc *time.Location, now func() time.Time) *DateFormatter {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &DateFormatter{loc: loc, now: now, months: pt_BR.New()}
}

// Short renders "02 de jan", appending the year when it is not the current one.
func (f *DateFormatter) Short(raw string) string {
	t, ok := storage.ParseDate(raw, f.loc)
	if !ok {
		return ""
	}
	month := strings.TrimRight(f.months.MonthAbbreviated(t.Month()), ".")
	s := fmt.Sprintf("%02d de %s", t.Day(), month)
	if t.Year() != f.now().In(f.loc).Year() {
		s += fmt.Sprintf(" de %d", t.Year())
	}
	return s
}

// Long renders "02 de janeiro de 2024".
func (f *DateFormatter) Long(raw string) string {
	t, ok := storage.ParseDate(raw, f.loc)
	if !ok {
		return ""
	}
	month := strings.TrimRight(f.months.MonthWide(t.Month()), ".")
	return fmt.Sprintf("%02d de %s de %d", t.Day(), month, t.Year())
}
