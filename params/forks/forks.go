// Copyright 2025 The eofkit Authors
// This file is part of the eofkit library.
//
// The eofkit library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The eofkit library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the eofkit library. If not, see <http://www.gnu.org/licenses/>.

// Package forks enumerates the Ethereum network upgrades relevant for
// selecting an instruction set and the container validation rules.
package forks

import (
	"fmt"
	"strings"
)

// Fork is a numerical identifier of specific network upgrades (forks).
type Fork int

const (
	Frontier Fork = iota
	FrontierThawing
	Homestead
	DAO
	TangerineWhistle
	SpuriousDragon
	Byzantium
	Constantinople
	Petersburg
	Istanbul
	MuirGlacier
	Berlin
	London
	ArrowGlacier
	GrayGlacier
	Paris
	Shanghai
	Cancun
	Prague
)

var forkNames = map[Fork]string{
	Frontier:         "frontier",
	FrontierThawing:  "frontierThawing",
	Homestead:        "homestead",
	DAO:              "dao",
	TangerineWhistle: "tangerineWhistle",
	SpuriousDragon:   "spuriousDragon",
	Byzantium:        "byzantium",
	Constantinople:   "constantinople",
	Petersburg:       "petersburg",
	Istanbul:         "istanbul",
	MuirGlacier:      "muirGlacier",
	Berlin:           "berlin",
	London:           "london",
	ArrowGlacier:     "arrowGlacier",
	GrayGlacier:      "grayGlacier",
	Paris:            "paris",
	Shanghai:         "shanghai",
	Cancun:           "cancun",
	Prague:           "prague",
}

func (f Fork) String() string {
	if name, ok := forkNames[f]; ok {
		return name
	}
	return fmt.Sprintf("fork(%d)", int(f))
}

// Parse resolves a case-insensitive fork name to its identifier.
func Parse(name string) (Fork, error) {
	for f, n := range forkNames {
		if strings.EqualFold(n, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown fork %q", name)
}
