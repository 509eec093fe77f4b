package domain

import (
	"fmt"
	"strings"
	"time"
)

// Lord is one of the nine planetary rulers of the Vimshottari cycle.
type Lord int

const (
	LordKetu Lord = iota
	LordVenus
	LordSun
	LordMoon
	LordMars
	LordRahu
	LordJupiter
	LordSaturn
	LordMercury
)

// LordCount is the number of lords in one Vimshottari cycle.
const LordCount = 9

// CycleYears is the length of a full Vimshottari cycle in years.
const CycleYears = 120

// DaysPerYear is the year length used wherever a year count is turned into a
// wall-clock duration. Subdivision never uses it: sub-periods are fractions of
// the parent's actual duration.
const DaysPerYear = 365.25

// YearDuration is DaysPerYear expressed as a time.Duration.
const YearDuration = time.Duration(DaysPerYear * 24 * float64(time.Hour))

// CycleDuration is the wall-clock length of a full 120-year cycle.
const CycleDuration = CycleYears * YearDuration

// LordOrder is the fixed cyclic sequence of lords.
var LordOrder = [LordCount]Lord{
	LordKetu, LordVenus, LordSun, LordMoon, LordMars,
	LordRahu, LordJupiter, LordSaturn, LordMercury,
}

var lordYears = [LordCount]int{7, 20, 6, 10, 7, 18, 16, 19, 17}

var lordNames = [LordCount]string{
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
}

var lordAbbrevs = [LordCount]string{"Ke", "Ve", "Su", "Mo", "Ma", "Ra", "Ju", "Sa", "Me"}

// lordAliases maps every accepted spelling (lowercased) to its lord.
var lordAliases = func() map[string]Lord {
	m := map[string]Lord{
		"surya":      LordSun,
		"ravi":       LordSun,
		"chandra":    LordMoon,
		"soma":       LordMoon,
		"mangal":     LordMars,
		"mangala":    LordMars,
		"kuja":       LordMars,
		"guru":       LordJupiter,
		"brihaspati": LordJupiter,
		"shani":      LordSaturn,
		"sani":       LordSaturn,
		"budha":      LordMercury,
		"shukra":     LordVenus,
		"sukra":      LordVenus,
	}
	for i := range LordOrder {
		m[strings.ToLower(lordNames[i])] = Lord(i)
		m[strings.ToLower(lordAbbrevs[i])] = Lord(i)
	}
	return m
}()

// ParseLord resolves a planet name, abbreviation, or Sanskrit name.
func ParseLord(s string) (Lord, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if l, ok := lordAliases[key]; ok {
		return l, nil
	}
	return 0, &FieldError{Field: "lord", Value: s, Err: ErrUnknownLord}
}

// Valid reports whether l is one of the nine lords.
func (l Lord) Valid() bool {
	return l >= LordKetu && l <= LordMercury
}

func (l Lord) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Lord(%d)", int(l))
	}
	return lordNames[l]
}

// Abbrev returns the two-letter abbreviation, e.g. "Ve".
func (l Lord) Abbrev() string {
	if !l.Valid() {
		return "??"
	}
	return lordAbbrevs[l]
}

// Years returns the lord's share of the 120-year cycle.
func (l Lord) Years() int {
	if !l.Valid() {
		return 0
	}
	return lordYears[l]
}

// Next returns the lord that follows l in the cycle.
func (l Lord) Next() Lord {
	return Lord((int(l) + 1) % LordCount)
}

// Sequence returns the nine lords in cyclic order starting with l.
func (l Lord) Sequence() [LordCount]Lord {
	var seq [LordCount]Lord
	for i := range seq {
		seq[i] = Lord((int(l) + i) % LordCount)
	}
	return seq
}

// MarshalText implements encoding.TextMarshaler.
func (l Lord) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, &FieldError{Field: "lord", Value: l.String(), Err: ErrUnknownLord}
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Lord) UnmarshalText(b []byte) error {
	parsed, err := ParseLord(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
