// Package video describes raw video frame geometry: pixel formats, the
// per-plane width/height/stride/offset bookkeeping of a frame (Info), and
// the padding/alignment applied to an allocation (Alignment).
//
// The package is deliberately small. It answers exactly the geometry
// questions the memory engine asks: how many planes a format has, how
// large each plane is, and where a plane's first unpadded pixel lives
// inside a padded allocation.
package video
