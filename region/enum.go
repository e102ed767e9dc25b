// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

import "errors"

type (
	// enum is a list of possible choices and their strings
	enum struct {
		choices map[string]enumChoice // choices maps from strings to choices
		strings []string              // strings maps from choices to strings
		name    string                // name of enum for error
	}

	// enumChoice is a choice of an enum
	enumChoice uint8
)

// newEnum creates an enum whose choices are numbered in the order given.
func newEnum(name string, strings ...string) enum {
	e := enum{
		choices: make(map[string]enumChoice, len(strings)),
		strings: strings,
		name:    name,
	}
	for i, s := range strings {
		if _, ok := e.choices[s]; ok {
			panic("duplicate " + name + ": " + s)
		}
		e.choices[s] = enumChoice(i)
	}
	return e
}

func (enum *enum) string(c enumChoice) string {
	if int(c) >= len(enum.strings) {
		return "invalid"
	}
	return enum.strings[c]
}

func (enum *enum) mustParse(s string) enumChoice {
	c, ok := enum.choices[s]
	if !ok {
		panic("invalid " + enum.name + ": " + s)
	}
	return c
}

func (c *enumChoice) unmarshalText(enum *enum, text []byte) error {
	var ok bool
	*c, ok = enum.choices[string(text)]
	if !ok {
		return errors.New("invalid " + enum.name + ": " + string(text))
	}
	return nil
}
