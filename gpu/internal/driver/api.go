// SPDX-License-Identifier: Unlicense OR MIT

package driver

import (
	"fmt"
)

// See gpu/api.go for documentation for the API types.

type API interface {
	implementsAPI()
}

// OpenGL selects the OpenGL ES 3 backend. An OpenGL ES context
// is assumed current on the calling thread when NewDevice is
// called.
type OpenGL struct{}

// Custom wraps a Device implemented outside the driver
// packages, such as a recording device for tests.
type Custom struct {
	Device Device
}

// API specific device constructors.
var (
	NewOpenGLDevice func(api OpenGL) (Device, error)
)

// NewDevice creates a new Device given the api.
func NewDevice(api API) (Device, error) {
	switch api := api.(type) {
	case OpenGL:
		if NewOpenGLDevice != nil {
			return NewOpenGLDevice(api)
		}
	case Custom:
		if api.Device != nil {
			return api.Device, nil
		}
	}
	return nil, fmt.Errorf("driver: no driver available for the API %T", api)
}

func (OpenGL) implementsAPI() {}
func (Custom) implementsAPI() {}
