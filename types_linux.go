// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package termios

// flag word type of unix.Termios on this platform
type tcflagT = uint32
