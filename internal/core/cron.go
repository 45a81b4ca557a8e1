package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/quartzboard/quartzboard/internal/model"
)

// quartzCronParser accepts the canonical six-field form
// (second minute hour day-of-month month day-of-week) that Quartz
// expressions normalize into.
var quartzCronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronExpression parses a Quartz-style cron expression (5, 6, or 7
// fields) and renders a human-readable description on success. Pure function,
// no database access.
func ValidateCronExpression(expression string) model.CronValidation {
	readable, err := DescribeCronExpression(expression)
	if err != nil {
		return model.CronValidation{Valid: false, Error: err.Error()}
	}
	return model.CronValidation{Valid: true, Readable: readable}
}

// DescribeCronExpression returns a plain-language rendering of the
// expression, or an error when it does not parse.
func DescribeCronExpression(expression string) (string, error) {
	fields, err := normalizeQuartzFields(expression)
	if err != nil {
		return "", err
	}
	if _, err := quartzCronParser.Parse(strings.Join(maskDaySpecials(fields), " ")); err != nil {
		return "", fmt.Errorf("invalid cron expression: %w", err)
	}
	return describeFields(fields), nil
}

// Quartz day-field specials: last day (L, with optional offset or weekday
// modifier), nearest weekday (nW), and nth weekday of the month (n#m). The
// underlying parser does not know them, so they are checked here and masked
// out of its range check. The console only validates and describes
// expressions, it never computes fire times.
var (
	domSpecialRe = regexp.MustCompile(`(?i)^(?:L(?:-[0-9]{1,2})?|LW|[0-9]{1,2}W)$`)
	dowSpecialRe = regexp.MustCompile(`(?i)^(?:L|([0-7]|SUN|MON|TUE|WED|THU|FRI|SAT)(L|#[1-5]))$`)
)

// maskDaySpecials substitutes parseable stand-ins for the Quartz-only
// tokens before the range check. Day-of-week 7 is Sunday, same as the
// original console's describer.
func maskDaySpecials(fields []string) []string {
	masked := make([]string, len(fields))
	copy(masked, fields)
	if domSpecialRe.MatchString(masked[3]) {
		masked[3] = "*"
	}
	if dowSpecialRe.MatchString(masked[5]) {
		masked[5] = "*"
	}
	if masked[5] == "7" {
		masked[5] = "0"
	}
	return masked
}

// normalizeQuartzFields converts the 5/6/7-field Quartz forms into the
// canonical six fields. The Quartz `?` placeholder (no specific value) maps
// to `*`, and a trailing year field is peeled off — the admin console does
// not schedule anything, so year constraints only need to survive a round
// trip, not be evaluated.
func normalizeQuartzFields(expression string) ([]string, error) {
	fields := strings.Fields(strings.TrimSpace(expression))

	switch len(fields) {
	case 5:
		fields = append([]string{"0"}, fields...)
	case 6:
		// already canonical
	case 7:
		fields = fields[:6]
	default:
		return nil, fmt.Errorf("cron expression must have 5, 6, or 7 fields, got %d", len(fields))
	}

	for i, f := range fields {
		if f == "?" {
			fields[i] = "*"
		}
	}
	return fields, nil
}

var weekdayNames = map[string]string{
	"0": "Sunday", "1": "Monday", "2": "Tuesday", "3": "Wednesday",
	"4": "Thursday", "5": "Friday", "6": "Saturday", "7": "Sunday",
	"SUN": "Sunday", "MON": "Monday", "TUE": "Tuesday", "WED": "Wednesday",
	"THU": "Thursday", "FRI": "Friday", "SAT": "Saturday",
}

var monthNames = map[string]string{
	"1": "January", "2": "February", "3": "March", "4": "April",
	"5": "May", "6": "June", "7": "July", "8": "August",
	"9": "September", "10": "October", "11": "November", "12": "December",
	"JAN": "January", "FEB": "February", "MAR": "March", "APR": "April",
	"MAY": "May", "JUN": "June", "JUL": "July", "AUG": "August",
	"SEP": "September", "OCT": "October", "NOV": "November", "DEC": "December",
}

func describeFields(fields []string) string {
	sec, min, hour, dom, month, dow := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	var parts []string
	clockStyle := false
	switch {
	case isNumeric(hour) && isNumeric(min):
		clockStyle = true
		clock := fmt.Sprintf("%s:%s", pad2(hour), pad2(min))
		if isNumeric(sec) && sec != "0" {
			clock += ":" + pad2(sec)
		}
		parts = append(parts, "At "+clock)
	case strings.HasPrefix(min, "*/"):
		parts = append(parts, fmt.Sprintf("Every %s minutes", min[2:]))
	case min == "*" && hour == "*":
		if sec == "*" {
			parts = append(parts, "Every second")
		} else {
			parts = append(parts, "Every minute")
		}
	case isNumeric(min) && hour == "*":
		parts = append(parts, fmt.Sprintf("At minute %s past every hour", min))
	default:
		parts = append(parts, fmt.Sprintf("At minute %s, hour %s", min, hour))
	}

	if dom != "*" {
		if desc, ok := describeDomSpecial(dom); ok {
			parts = append(parts, desc)
		} else {
			parts = append(parts, fmt.Sprintf("on day %s of the month", dom))
		}
	}
	if month != "*" {
		parts = append(parts, "in "+nameOrLiteral(monthNames, month))
	}
	if dow != "*" {
		if desc, ok := describeDowSpecial(dow); ok {
			parts = append(parts, desc)
		} else {
			parts = append(parts, "on "+nameOrLiteral(weekdayNames, dow))
		}
	}
	if clockStyle && len(parts) == 1 && dom == "*" && month == "*" && dow == "*" {
		parts = append(parts, "every day")
	}

	return strings.Join(parts, ", ")
}

var ordinals = map[string]string{
	"1": "first", "2": "second", "3": "third", "4": "fourth", "5": "fifth",
}

func describeDomSpecial(dom string) (string, bool) {
	if !domSpecialRe.MatchString(dom) {
		return "", false
	}
	v := strings.ToUpper(dom)
	switch {
	case v == "L":
		return "on the last day of the month", true
	case v == "LW":
		return "on the last weekday of the month", true
	case strings.HasPrefix(v, "L-"):
		return fmt.Sprintf("%s days before the end of the month", v[2:]), true
	default:
		return fmt.Sprintf("on the weekday nearest day %s of the month", v[:len(v)-1]), true
	}
}

func describeDowSpecial(dow string) (string, bool) {
	m := dowSpecialRe.FindStringSubmatch(dow)
	if m == nil {
		return "", false
	}
	if m[1] == "" {
		// bare L, Quartz shorthand for Saturday
		return "on Saturday", true
	}
	day := nameOrLiteral(weekdayNames, m[1])
	if strings.EqualFold(m[2], "L") {
		return fmt.Sprintf("on the last %s of the month", day), true
	}
	return fmt.Sprintf("on the %s %s of the month", ordinals[m[2][1:]], day), true
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// nameOrLiteral resolves a single value through the name table; lists,
// ranges, and steps are echoed as written.
func nameOrLiteral(names map[string]string, value string) string {
	if name, ok := names[strings.ToUpper(value)]; ok {
		return name
	}
	return value
}
