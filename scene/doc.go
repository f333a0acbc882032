// SPDX-License-Identifier: Unlicense OR MIT

/*
Package scene implements 3D viewing helpers on top of package gpu: an
orbiting camera navigated by pointer gestures, colored line and
triangle meshes built from simple shapes, and a renderer drawing them.
*/
package scene
