package preprocess

import (
	"log"

	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/spaces"
)

// IsImageSpaceChannelsFirst returns whether an image observation
// space (see IsImageSpace) is channels-first (CxHxW, true) or
// channels-last (HxWxC, false).
//
// The channel axis is taken to be whichever of the three axes has the
// smallest extent. If the middle axis is smallest, the layout is
// ambiguous: a warning is logged and the space is treated as
// channels-last.
func IsImageSpaceChannelsFirst(space *spaces.Box) bool {
	shape := space.Shape()
	smallest := 0
	for i := 1; i < len(shape); i++ {
		if shape[i] < shape[smallest] {
			smallest = i
		}
	}
	if smallest == 1 {
		log.Printf("isImageSpaceChannelsFirst: treating image space as " +
			"channels-last, while second dimension was smallest of the three")
	}
	return smallest == 0
}

// IsImageSpace returns whether an observation space has the shape,
// bounds, and data type of a valid image. The check is conservative
// and returns false whenever there is a doubt. Valid images are
// grayscale, RGB, or RGBD with values in [0, 255].
//
// When checkChannels is true, the channel count (resolved via
// IsImageSpaceChannelsFirst) must be 1, 3, or 4. With frame stacking
// the observation space may hold more channels than expected, so the
// check is optional. When normalizedImage is true, the image is
// assumed to be already normalized and the data type and bounds
// checks are skipped.
func IsImageSpace(space spaces.Space, checkChannels,
	normalizedImage bool) bool {
	box, ok := space.(*spaces.Box)
	if !ok || len(box.Shape()) != 3 {
		return false
	}

	if !normalizedImage {
		if box.Dtype() != tensor.Uint8 {
			return false
		}

		low, high := box.Low()[0], box.High()[0]
		for i := 0; i < low.Len(); i++ {
			if low.AtVec(i) != 0.0 || high.AtVec(i) != 255.0 {
				return false
			}
		}
	}

	if !checkChannels {
		return true
	}

	shape := box.Shape()
	var channels int
	if IsImageSpaceChannelsFirst(box) {
		channels = shape[0]
	} else {
		channels = shape[len(shape)-1]
	}

	// Grayscale, RGB, RGBD
	return channels == 1 || channels == 3 || channels == 4
}
