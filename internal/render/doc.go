// Package render draws vanishing point analysis results onto images:
// segment clusters in distinct colors, estimated points, and horizon lines.
//
// Rendering never mutates the source image; Overlay clones it first. Points
// that fall outside the frame are projected onto the image border in the
// direction they lie, so distant vanishing points stay visible in context.
package render
