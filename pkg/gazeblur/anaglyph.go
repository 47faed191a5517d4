package gazeblur

import "github.com/abworrall/gazeblur/pkg/ecolor"

// Anaglyph multiplexes a stereo pair into one red/cyan image: the left
// eye's gray goes in red, the right eye's gray in green and blue.
func Anaglyph(left, right ecolor.RGBA) ecolor.RGBA {
	l, r := left.Gray(), right.Gray()
	return ecolor.RGBA{l, r, r, 1.0}
}
