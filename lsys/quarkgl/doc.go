// Package quarkgl provides a minimal, predictable software 3D engine for the growth viewer.
//
// QuarkGL is intended for visualization of line geometry: a camera, an orbit controller
// and a line rasterizer with an optional depth buffer. It is not a game engine and does
// not provide a GPU abstraction.
//
// Pipeline (fixed):
//
//	Lines → View → Projection → Near clipping → Rasterization → Frame output.
//
// The renderer is software-only and draws into a caller-provided Target. It avoids
// allocations in the render hot path; the depth buffer is reused between frames.
package quarkgl
