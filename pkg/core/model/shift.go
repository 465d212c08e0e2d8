package model

import "time"

// Kind identifies one of the seven shift kinds in spec §3: three Saturday
// daytime kinds, three Sunday daytime kinds, and one night kind per weekday
// start.
type Kind string

const (
	SatRezeption Kind = "Sa_10-21" // Sa_10-21: TFA, or Azubi with reception
	SatTFAOnly   Kind = "Sa_10-22" // Sa_10-22: TFA only
	SatAzubi     Kind = "Sa_10-19" // Sa_10-19: Azubi only

	SunTFAOnly1 Kind = "So_8-20"     // So_8-20: TFA only
	SunTFAOnly2 Kind = "So_10-22"    // So_10-22: TFA only
	SunAzubi    Kind = "So_8-20:30"  // So_8-20:30: adult Azubi only

	NightSoMo Kind = "N_So-Mo" // night starting Sunday
	NightMoDi Kind = "N_Mo-Di" // night starting Monday
	NightDiMi Kind = "N_Di-Mi" // night starting Tuesday
	NightMiDo Kind = "N_Mi-Do" // night starting Wednesday
	NightDoFr Kind = "N_Do-Fr" // night starting Thursday
	NightFrSa Kind = "N_Fr-Sa" // night starting Friday
	NightSaSo Kind = "N_Sa-So" // night starting Saturday
)

// kindOrder fixes the row ordering required by spec §6:
// Sa_10-21 < Sa_10-22 < Sa_10-19 < So_8-20 < So_10-22 < So_8-20:30 < N_*
// with nights ordered by the weekday they start on, Sun..Sat.
var kindOrder = map[Kind]int{
	SatRezeption: 0,
	SatTFAOnly:   1,
	SatAzubi:     2,
	SunTFAOnly1:  3,
	SunTFAOnly2:  4,
	SunAzubi:     5,
	NightSoMo:    6,
	NightMoDi:    7,
	NightDiMi:    8,
	NightMiDo:    9,
	NightDoFr:    10,
	NightFrSa:    11,
	NightSaSo:    12,
}

// Order returns k's position in the canonical row ordering.
func (k Kind) Order() int { return kindOrder[k] }

// Less reports whether k sorts before other in the canonical row ordering.
func (k Kind) Less(other Kind) bool { return k.Order() < other.Order() }

// SaturdayKinds are the three Saturday daytime shift kinds.
var SaturdayKinds = []Kind{SatRezeption, SatTFAOnly, SatAzubi}

// SundayKinds are the three Sunday daytime shift kinds.
var SundayKinds = []Kind{SunTFAOnly1, SunTFAOnly2, SunAzubi}

// NightKinds are the seven night kinds, one per starting weekday, Sun..Sat.
var NightKinds = []Kind{NightSoMo, NightMoDi, NightDiMi, NightMiDo, NightDoFr, NightFrSa, NightSaSo}

// RegularNightKinds are the night kinds for which the lone-worker and
// on-site-vet exceptions in spec §4.3 do not apply (everything except
// N_So-Mo and N_Mo-Di).
var RegularNightKinds = []Kind{NightDiMi, NightMiDo, NightDoFr, NightFrSa, NightSaSo}

// IsNight reports whether k is one of the seven night kinds.
func (k Kind) IsNight() bool {
	switch k {
	case NightSoMo, NightMoDi, NightDiMi, NightMiDo, NightDoFr, NightFrSa, NightSaSo:
		return true
	}
	return false
}

// IsRegularNight reports whether k is a night kind other than N_So-Mo or
// N_Mo-Di, i.e. one where the on-site vet does not obviate the lone-worker
// rules.
func (k Kind) IsRegularNight() bool {
	return k.IsNight() && k != NightSoMo && k != NightMoDi
}

// IsSaturdayDaytime reports whether k is one of the three Saturday kinds.
func (k Kind) IsSaturdayDaytime() bool {
	switch k {
	case SatRezeption, SatTFAOnly, SatAzubi:
		return true
	}
	return false
}

// IsSundayDaytime reports whether k is one of the three Sunday kinds.
func (k Kind) IsSundayDaytime() bool {
	switch k {
	case SunTFAOnly1, SunTFAOnly2, SunAzubi:
		return true
	}
	return false
}

// IsWeekendDaytime reports whether k is any Saturday or Sunday daytime kind.
func (k Kind) IsWeekendDaytime() bool {
	return k.IsSaturdayDaytime() || k.IsSundayDaytime()
}

// nightKindByWeekday maps the starting weekday (time.Weekday, Sunday=0) to
// the night kind that begins on it.
var nightKindByWeekday = map[time.Weekday]Kind{
	time.Sunday:    NightSoMo,
	time.Monday:    NightMoDi,
	time.Tuesday:   NightDiMi,
	time.Wednesday: NightMiDo,
	time.Thursday:  NightDoFr,
	time.Friday:    NightFrSa,
	time.Saturday:  NightSaSo,
}

// NightKindForWeekday returns the night kind that begins on wd.
func NightKindForWeekday(wd time.Weekday) Kind {
	return nightKindByWeekday[wd]
}

// WeekdayOrdinal converts a time.Weekday (Sunday=0) to the 1=Mon..7=Sun
// ordinal used by spec §3's NDExceptions and weekday-ordinal rules.
func WeekdayOrdinal(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}
