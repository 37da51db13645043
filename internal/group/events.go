package group

import "time"

// personalDates maps fixed month/day pairs to year-independent labels.
// These take precedence over every other built-in rule.
var personalDates = map[[2]int]string{
	{12, 1}: "EnzoBirthday",
	{1, 16}: "AxelBirthday",
	{5, 21}: "AmhaoinBirthday",
	{3, 15}: "PatrickBirthday",
}

// DetectEvent returns a label for dates that fall in a known event window,
// or "" when none matches. The rules are checked in fixed precedence
// order; the first match wins. Results are reproducible for any valid
// calendar date, including leap years.
func DetectEvent(day time.Time) string {
	year, month, dom := day.Year(), int(day.Month()), day.Day()

	if label, ok := personalDates[[2]int{month, dom}]; ok {
		return label
	}
	if month == 1 && (dom == 1 || dom == 2) {
		return "NewYear"
	}
	if month == 2 && dom == 14 {
		return "Valentines"
	}
	if month == 3 && dom == 17 {
		return "StPatricks"
	}

	// Easter window: Good Friday through Easter Monday inclusive.
	easter := easterSunday(year)
	d := truncateToDay(day)
	if !d.Before(easter.AddDate(0, 0, -2)) && !d.After(easter.AddDate(0, 0, 1)) {
		return "Easter"
	}

	if month == 10 && dom >= 25 && dom <= 31 {
		return "Halloween"
	}
	if month == 11 && d.Equal(fourthThursdayOfNovember(year)) {
		return "Thanksgiving"
	}
	if month == 12 && dom >= 24 && dom <= 26 {
		return "Christmas"
	}
	if month == 12 && dom == 31 {
		return "NewYearsEve"
	}

	return ""
}

// easterSunday computes Easter Sunday for the year using the anonymous
// Gregorian algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	dom := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), dom, 0, 0, 0, 0, time.UTC)
}

// fourthThursdayOfNovember returns US Thanksgiving for the year.
func fourthThursdayOfNovember(year int) time.Time {
	first := time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Thursday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+21)
}
