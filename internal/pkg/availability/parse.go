package availability

import (
	"github.com/tidwall/gjson"
)

const workingHoursField = "working_hours"

// ParseWorkingHours decodes a working_hours value delivered either as a JSON
// array of day entries or as a JSON string holding that array. Anything else,
// including invalid JSON and null, yields a nil schedule.
func ParseWorkingHours(raw []byte) WeeklySchedule {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return nil
	}
	return fromResult(gjson.ParseBytes(raw))
}

// ScheduleFromRecord extracts and decodes the working_hours field of a
// physician or clinic record.
func ScheduleFromRecord(record []byte) WeeklySchedule {
	if len(record) == 0 || !gjson.ValidBytes(record) {
		return nil
	}
	field := gjson.GetBytes(record, workingHoursField)
	if !field.Exists() {
		return nil
	}
	return fromResult(field)
}

func fromResult(result gjson.Result) WeeklySchedule {
	if result.Type == gjson.String {
		if !gjson.Valid(result.Str) {
			return nil
		}
		result = gjson.Parse(result.Str)
	}
	if !result.IsArray() {
		return nil
	}

	schedule := WeeklySchedule{}
	for _, item := range result.Array() {
		if !item.IsObject() {
			continue
		}
		schedule = append(schedule, DaySchedule{
			Day:     item.Get("day").String(),
			Enabled: item.Get("enabled").Bool(),
			Hours:   item.Get("hours").String(),
		})
	}
	return schedule
}
