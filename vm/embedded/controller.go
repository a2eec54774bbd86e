/*
 * BatPU-2 - Controller device
 *
 * Copyright 2026
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package embedded

import "strings"

// Button bit positions in the controller state byte.
const (
	ButtonLeft uint8 = 1 << iota
	ButtonDown
	ButtonRight
	ButtonUp
	ButtonB
	ButtonA
	ButtonSelect
	ButtonStart
)

// buttonNames lists the button names in bit order, for SetButton and
// String.
var buttonNames = [8]string{"LEFT", "DOWN", "RIGHT", "UP", "B", "A", "SELECT", "START"}

// Controller is the 8-button input device. The host sets and clears bits;
// the program reads the whole state byte through controller_input.
type Controller struct {
	State uint8
}

// Pressed reports whether the button bit is set.
func (c *Controller) Pressed(button uint8) bool {
	return c.State&button != 0
}

// Press sets the button bit.
func (c *Controller) Press(button uint8) {
	c.State |= button
}

// Release clears the button bit.
func (c *Controller) Release(button uint8) {
	c.State &^= button
}

// SetButton presses or releases a button by name, case-insensitively. It
// reports false for a name that matches no button, so a host keymap can
// pass user input through without validating it first.
func (c *Controller) SetButton(name string, down bool) bool {
	name = strings.ToUpper(name)
	for i, n := range buttonNames {
		if n != name {
			continue
		}
		if down {
			c.Press(1 << i)
		} else {
			c.Release(1 << i)
		}
		return true
	}
	return false
}

// String lists the currently pressed button names.
func (c *Controller) String() string {
	var pressed []string
	for i, n := range buttonNames {
		if c.Pressed(1 << i) {
			pressed = append(pressed, n)
		}
	}
	return strings.Join(pressed, " ")
}
