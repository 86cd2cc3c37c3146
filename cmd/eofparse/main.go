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

// eofparse validates hex-encoded EOF containers, one per line. Containers
// are taken from the command line arguments, or from standard input when no
// arguments are given. Lines starting with '#' are skipped.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/evmtools/eofkit/eof"
	"github.com/evmtools/eofkit/params/forks"
)

var (
	forkFlag = &cli.StringFlag{
		Name:  "fork",
		Usage: "revision to validate against",
		Value: forks.Cancun.String(),
	}
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "print the parsed header of valid containers as JSON",
	}
	dumpFlag = &cli.BoolFlag{
		Name:  "dump",
		Usage: "print the parsed header of valid containers as text",
	}
)

func main() {
	app := &cli.App{
		Name:   "eofparse",
		Usage:  "validate EVM object format containers",
		Flags:  []cli.Flag{forkFlag, jsonFlag, dumpFlag},
		Action: parse,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parse(ctx *cli.Context) error {
	fork, err := forks.Parse(ctx.String(forkFlag.Name))
	if err != nil {
		return err
	}
	inputs := ctx.Args().Slice()
	if len(inputs) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
		for scanner.Scan() {
			inputs = append(inputs, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}
	var failed int
	for _, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" || strings.HasPrefix(in, "#") {
			continue
		}
		container, err := hex.DecodeString(strings.TrimPrefix(strings.ReplaceAll(in, " ", ""), "0x"))
		if err != nil {
			return fmt.Errorf("invalid hex input: %v", err)
		}
		header, err := eof.Validate(fork, container)
		if err != nil {
			failed++
			fmt.Printf("err: %v\n", err)
			continue
		}
		fmt.Printf("OK %d code sections, %d bytes of data\n", len(header.CodeSizes), header.DataSize)
		switch {
		case ctx.Bool(jsonFlag.Name):
			out, err := json.MarshalIndent(header, "", "  ")
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", out)
		case ctx.Bool(dumpFlag.Name):
			fmt.Print(header.String())
		}
	}
	if failed != 0 {
		return fmt.Errorf("%d containers rejected", failed)
	}
	return nil
}
