package scene

// Options carries the caller's choices that shape a built-in scene
type Options struct {
	Width     int    // Image width; 0 keeps the scene's default
	Height    int    // Image height; 0 derives it from the scene's aspect ratio
	Seed      int64  // Seed for randomly placed objects and procedural textures
	ImagePath string // Optional image texture used by scenes that show one
}

// size resolves the image size against a scene's default width and aspect ratio
func (o Options) size(defaultWidth int, aspectRatio float64) (int, int) {
	width := o.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := o.Height
	if height <= 0 {
		height = int(float64(width) / aspectRatio)
		if height < 1 {
			height = 1
		}
	}
	return width, height
}
