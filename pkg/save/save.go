// Package save renders a station roster as the C location table consumed by
// the radar plugin and writes it to disk.
//
// Entries are grouped by region, each group preceded by a LOCATION_STATE
// header row, and the table is closed by the {0} terminator row the plugin
// iterates up to.
package save

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/radarmap/pkg/errors"
	"github.com/agentstation/radarmap/pkg/stations"
)

const header = `/*
 * Copyright (C) 2009-2011 Andy Spencer <andy753421@gmail.com>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 * This file was automatically updated with %s on %s.
 */

#include <config.h>
#include <gtk/gtk.h>

#include "aweather-location.h"

city_t cities[] = {
`

const footer = "\t{0},\n};\n"

// Render writes entries as a location table.
// The entries are stably sorted by region, so merge order is kept within a region.
func Render(w io.Writer, entries []stations.Entry, opts ...Option) error {
	options := Defaults().Apply(opts...)

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b stations.Entry) int {
		return cmp.Compare(a.Region, b.Region)
	})

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, header, options.Generator(), options.Date().Format("2006-01-02"))

	region := ""
	for i, e := range sorted {
		if i == 0 || e.Region != region {
			region = e.Region
			fmt.Fprintf(bw, "\t{%s,\t\"NULL\",\t\"%s\",\t{0,\t0,\t0},\t0.0},\n",
				stations.KindHeader, escape(region))
		}
		fmt.Fprintf(bw, "\t\t{%s,\t\"%s\",\t\"%s\",\t{%s,\t%s,\t%s},\t%s},\n",
			e.Kind, escape(e.ID), escape(e.Name),
			formatFloat(e.Latitude), formatFloat(e.Longitude), formatElevation(e.Elevation),
			formatFloat(e.LOD))
	}

	bw.WriteString(footer)
	return bw.Flush()
}

// Locations renders entries to path. The table is written to a temporary
// file in the same directory and renamed over path, so path holds either
// the previous table or the complete new one.
func Locations(path string, entries []stations.Entry, opts ...Option) (err error) {
	options := Defaults().Apply(opts...)

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Render(tmp, entries, opts...); err != nil {
		return errors.WrapIO("write", tmp.Name(), err)
	}
	if err = tmp.Chmod(options.perm); err != nil {
		return errors.WrapIO("chmod", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.WrapIO("sync", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return errors.WrapIO("close", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

var cEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// escape quotes s for a C string literal.
func escape(s string) string {
	return cEscaper.Replace(s)
}

// formatFloat renders v in its shortest exact form, keeping a decimal point
// on integral values (45 becomes 45.0).
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// formatElevation renders the elevation slot, 0 for new stations.
func formatElevation(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
