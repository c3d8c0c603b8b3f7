// Package overlay renders replacement price labels over recognized text.
//
// The render surface is an *image.RGBA sharing the source image's pixel
// coordinate space. For each detected price the renderer paints an opaque
// padded patch over the original digits and centers the converted amount
// inside the original bounding box, with the font size derived from the box
// height. Rendering is a pure overwrite: repeating a call produces the same
// pixels, and separate calls only touch their own regions.
package overlay
