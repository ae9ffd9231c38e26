package csvio

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"labrotation/pkg/model"
)

// ExportSessions formats the committed sessions into SessionCSVRow structs
// and writes them to the CSV file specified by the given path.
func ExportSessions(sessions []*model.ScheduledSession, path string) (string, error) {
	rows := formatSessions(sessions)
	if _, err := os.Stat(path); err == nil {
		os.Remove(path)
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, os.ModePerm)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ExportSessionsString renders the committed sessions as a CSV string.
func ExportSessionsString(sessions []*model.ScheduledSession) (string, error) {
	rows := formatSessions(sessions)
	str, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("marshal sessions: %w", err)
	}
	return str, nil
}

func formatSessions(sessions []*model.ScheduledSession) []*model.SessionCSVRow {
	var rows []*model.SessionCSVRow
	for _, s := range sessions {
		ids := make([]string, len(s.Trainees))
		for i, t := range s.Trainees {
			ids[i] = strconv.Itoa(t)
		}
		rows = append(rows, &model.SessionCSVRow{
			LabName:  s.Lab.Name,
			Day:      s.Slot.Day,
			Start:    model.FormatClock(s.Slot.Start),
			End:      model.FormatClock(s.Slot.End),
			Room:     s.Room.Name,
			Trainees: len(s.Trainees),
			IDs:      strings.Join(ids, "|"),
		})
	}
	slices.SortFunc(rows, func(r1, r2 *model.SessionCSVRow) int {
		if day := r1.Day - r2.Day; day != 0 {
			return day
		}
		if start := strings.Compare(r1.Start, r2.Start); start != 0 {
			return start
		}
		if room := strings.Compare(r1.Room, r2.Room); room != 0 {
			return room
		}
		return strings.Compare(r1.LabName, r2.LabName)
	})
	return rows
}
