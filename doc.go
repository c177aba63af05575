// SPDX-License-Identifier: Unlicense OR MIT

/*
Package eglview implements an EGL rendering surface for the standard
and stereo (XR) rendering pipelines.

A View negotiates an EGL configuration through the backend's fallback
chain, owns the primary context driven by a dedicated render thread,
and optionally a secondary offscreen context for preparing resources
on other threads.

# Hosts

The windowing host creates a View with New and forwards its events:
SurfaceCreated, SurfaceChanged and SurfaceDestroyed for the native
window, OnPause and OnResume (or HandleLifecycle) for activity
transitions, and Touch, Key and GenericMotion for input.

Lifecycle notifications run on the render thread in the order they were
requested: pausing stops engine focus before pausing the renderer, and
resuming resumes the renderer before restoring focus.

# Offscreen contexts

CreateOffscreenGL, SetOffscreenGLCurrent and DestroyOffscreenGL manage
a surfaceless context that shares the configuration of the primary
context. The caller synchronizes access to it; see package offscreen.

# Logging

The package logs nothing unless SetLogger is called.
*/
package eglview
