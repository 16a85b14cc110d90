// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package termios

// flag word and speed field types of unix.Termios on this platform
type (
	tcflagT = uint64
	speedT  = uint64
)
