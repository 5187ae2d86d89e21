package glmem

import "errors"

// Package errors. Capability gaps (missing staging support) are not
// errors: those recover through the direct transfer paths and surface at
// debug log level only.
var (
	// ErrAllocation is returned when the driver refuses to create a
	// texture or buffer object. The memory object is left unconstructed.
	ErrAllocation = errors.New("glmem: allocation failed")

	// ErrUnsupportedMapping is returned for CPU-side mapping of an
	// external/opaque texture target.
	ErrUnsupportedMapping = errors.New("glmem: cannot map external textures for CPU access")

	// ErrIncompatibleRespecify is returned when a respecify copy would
	// change the total backing byte size.
	ErrIncompatibleRespecify = errors.New("glmem: respecify copy requires equal backing sizes")

	// ErrRespecifyRequiresStaging is returned when a respecify copy is
	// requested without staging buffer support.
	ErrRespecifyRequiresStaging = errors.New("glmem: respecify copy requires a staging buffer")

	// ErrRespecifyRequiresDownload is returned when a respecify copy is
	// requested on a context without staged download support, which the
	// source re-read needs.
	ErrRespecifyRequiresDownload = errors.New("glmem: respecify copy requires staged download support")

	// ErrUnsupportedRespecifyFormat is returned on GLES2-only contexts
	// for respecify sources other than RGBA/UNSIGNED_BYTE.
	ErrUnsupportedRespecifyFormat = errors.New("glmem: respecify source format unsupported on GLES2")

	// ErrFramebufferUnsupported is returned when the context lacks
	// framebuffer object support needed for readback or texel copies.
	ErrFramebufferUnsupported = errors.New("glmem: framebuffer objects unsupported")

	// ErrTransferMap is returned when the staging buffer cannot be mapped
	// and no direct path exists.
	ErrTransferMap = errors.New("glmem: failed to map staging buffer")

	// ErrExternalTexture is returned when copying an external/opaque
	// texture, whose content cannot be read by ordinary texture calls.
	ErrExternalTexture = errors.New("glmem: external textures cannot be copied")

	// ErrDestroyed is returned when operating on a destroyed memory object.
	ErrDestroyed = errors.New("glmem: memory has been destroyed")
)
