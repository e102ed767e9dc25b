// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

// Rock is the surface rock category of a Point.
type Rock uint8

const (
	RockGranite Rock = iota
	RockLimestone
	RockSandstone
	RockBasalt
	RockSlate
	RockMarble
	rockCount
)

var rockEnum = newEnum("rock",
	"granite",
	"limestone",
	"sandstone",
	"basalt",
	"slate",
	"marble",
)

var (
	lowlandRocks  = []Rock{RockLimestone, RockSandstone, RockGranite, RockLimestone}
	highlandRocks = []Rock{RockGranite, RockSlate, RockSandstone}
	mountainRocks = []Rock{RockGranite, RockSlate, RockMarble}
	coastalRocks  = []Rock{RockGranite, RockBasalt, RockSlate}
	islandRocks   = []Rock{RockBasalt, RockLimestone, RockBasalt}
)

func (rock Rock) String() string {
	return rockEnum.string(enumChoice(rock))
}

func (rock Rock) AppendText(buf []byte) []byte {
	return append(buf, rock.String()...)
}

func (rock Rock) MarshalText() ([]byte, error) {
	return rock.AppendText(nil), nil
}

func (rock *Rock) UnmarshalText(text []byte) (err error) {
	var choice enumChoice
	err = choice.unmarshalText(&rockEnum, text)
	*rock = Rock(choice)
	return
}

func ParseRock(s string) Rock {
	return Rock(rockEnum.mustParse(s))
}
