package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"labrotation/pkg/model"
)

// LoadLabs reads and parses the given csv file for lab catalog data. The
// rooms column is a pipe-separated list of room names; the class column is
// either "standard" or "reduced" (anything else falls back to standard).
func LoadLabs(path string, delim rune) ([]*model.Lab, error) {
	setDelimiter(delim)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var labs []*model.Lab
	if err := gocsv.UnmarshalFile(f, &labs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, l := range labs {
		l.ParseRuntimeFields()
	}
	return labs, nil
}

// LoadRooms reads and parses the given csv file for room data.
func LoadRooms(path string, delim rune) ([]*model.Room, error) {
	setDelimiter(delim)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rooms []*model.Room
	if err := gocsv.UnmarshalFile(f, &rooms); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rooms, nil
}

func setDelimiter(delim rune) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		return r
	})
}
