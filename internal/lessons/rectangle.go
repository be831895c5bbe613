package lessons

// Rectangle is shared by the methods and playing-with-structs lessons: the
// first computes its area with a method, the second with a plain function.
type Rectangle struct {
	Width  uint32
	Height uint32
}

// Area returns Width * Height. A value receiver works on a copy.
func (r Rectangle) Area() uint32 {
	return r.Width * r.Height
}

// ScaleHeight multiplies the height in place, so it needs a pointer receiver.
func (r *Rectangle) ScaleHeight(factor uint32) {
	r.Height *= factor
}

// Resized returns a new rectangle and leaves r unchanged.
func (r Rectangle) Resized(width, height uint32) Rectangle {
	r.Width = width
	r.Height = height
	return r
}

// LargerThan reports whether r covers more area than other.
func (r Rectangle) LargerThan(other Rectangle) bool {
	return r.Area() > other.Area()
}

// Square is a constructor function. Go has no associated functions, so
// package-level functions named after the type play that role.
func Square(size uint32) Rectangle {
	return Rectangle{Width: size, Height: size}
}
