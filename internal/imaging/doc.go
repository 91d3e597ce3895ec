// Package imaging provides the image processing operations behind vanishing
// point analysis: cached loading, Canny edge detection, and border expansion
// for rendering geometry that falls outside the frame.
//
// All operations work with standard Go image.Image types and use a
// coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image
// operations are stateless and can be called concurrently on different
// images.
//
// # Performance Considerations
//
// For repeated operations on the same photograph, use ImageCache to avoid
// redundant disk reads and decodes. Large images may consume significant
// memory when cached; use Evict or Clear in long-running processes.
package imaging
