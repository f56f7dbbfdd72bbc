package io

import (
	"fmt"
	"io/fs"
	"regexp"
	"strconv"
	"strings"
)

const (
	DEPOT_FIRST_UNIT = 8  // Unit number of the first drum.
	DEPOT_LAST_UNIT  = 15 // Unit number of the last drum.
)

var drumName = regexp.MustCompile(`^([0-9][0-9])\.drum$`)

// Depot is the bank of drums attached to units 8 through 15.
type Depot struct {
	Drums map[int](*Drum)
}

// Drum returns the drum of a unit, creating it on first use.
func (depot *Depot) Drum(unit int) (drum *Drum) {
	if unit < DEPOT_FIRST_UNIT || unit > DEPOT_LAST_UNIT {
		return
	}

	if depot.Drums == nil {
		depot.Drums = make(map[int](*Drum))
	}

	drum, ok := depot.Drums[unit]
	if !ok {
		drum = &Drum{}
		depot.Drums[unit] = drum
	}

	return
}

// Unmarshal loads depot data from a file system by scanning for drum
// images named NN.drum, where NN is the unit number.
func (depot *Depot) Unmarshal(filesys fs.FS) (err error) {
	return fs.WalkDir(filesys, ".", func(path string, d fs.DirEntry, err_in error) (err error) {
		if err_in != nil {
			return err_in
		}
		if d.IsDir() {
			if path != "." {
				err = fs.SkipDir
			}
			return
		}

		match := drumName.FindStringSubmatch(d.Name())
		if match == nil {
			return
		}
		unit, err := strconv.Atoi(match[1])
		if err != nil {
			return
		}

		drum := depot.Drum(unit)
		if drum == nil {
			return
		}

		file, err := filesys.Open(path)
		if err != nil {
			return
		}
		defer file.Close()

		err = drum.Unmarshal(file)
		if err != nil {
			err = fmt.Errorf("%v: %w", path, err)
		}
		return
	})
}

// Marshal writes each drum of the depot to a file named NN.drum.
func (depot *Depot) Marshal(filesys CreateFS) (err error) {
	for unit, drum := range depot.Drums {
		var sb strings.Builder
		err = drum.Marshal(&sb)
		if err != nil {
			return
		}

		err = writeFile(filesys, fmt.Sprintf("%02d.drum", unit), sb.String())
		if err != nil {
			return
		}
	}

	return
}
