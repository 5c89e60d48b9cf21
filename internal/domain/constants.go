package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNotesLength   = 500
	MaxServiceLength = 100
	MaxNameLength    = 200
	MaxGuests        = 50
)

// SpanishWeekdays maps time.Weekday to the labels the calendar UI shows.
// Kept lowercase like the es-ES locale produces them.
var SpanishWeekdays = [7]string{
	"domingo",
	"lunes",
	"martes",
	"miércoles",
	"jueves",
	"viernes",
	"sábado",
}
