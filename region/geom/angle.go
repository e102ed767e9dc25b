// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package geom

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Angle in radians.
type Angle float32

const Pi = Angle(math32.Pi)

func (angle Angle) Vec2f() Vec2f {
	sin, cos := math32.Sincos(float32(angle))
	return Vec2f{
		X: cos,
		Y: sin,
	}
}

func (angle Angle) Diff(otherAngle Angle) (difference Angle) {
	difference = angle - otherAngle
	const mod = Angle(math32.Pi * 2)

	if difference >= mod || difference < -mod {
		difference = Angle(math32.Mod(float32(difference), float32(mod)))
	}

	if difference < -Pi {
		difference += Pi * 2
	} else if difference >= Pi {
		difference -= Pi * 2
	}
	return
}

func (angle Angle) Float() float32 {
	return float32(angle)
}

func (angle Angle) String() string {
	return fmt.Sprintf("%.01f degrees", float32(angle)*180/math32.Pi)
}
