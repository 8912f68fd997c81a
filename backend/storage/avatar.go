package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp" // registers the webp decoder with image.Decode

	"learnhub/backend/apperr"
)

const avatarSide = 512

var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Avatar is an uploaded picture ready to store.
type Avatar struct {
	Data        []byte
	ContentType string
	Ext         string
}

// PrepareAvatar checks size and sniffed type before decoding, then fits the
// image into a 512px square. PNG input stays PNG, everything else becomes JPEG.
func PrepareAvatar(data []byte, maxBytes int64) (Avatar, error) {
	if len(data) == 0 {
		return Avatar{}, apperr.Validation("no file selected")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return Avatar{}, apperr.Validation(fmt.Sprintf("file must be %dMB or smaller", maxBytes>>20))
	}

	mt := mimetype.Detect(data)
	if !allowedAvatarTypes[mt.String()] {
		return Avatar{}, apperr.Validation("only JPEG, PNG and WebP images are supported")
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Avatar{}, apperr.Validation("image could not be read")
	}
	img = imaging.Fit(img, avatarSide, avatarSide, imaging.Lanczos)

	var out bytes.Buffer
	if mt.Is("image/png") {
		if err := imaging.Encode(&out, img, imaging.PNG); err != nil {
			return Avatar{}, fmt.Errorf("encode avatar: %w", err)
		}
		return Avatar{Data: out.Bytes(), ContentType: "image/png", Ext: "png"}, nil
	}
	if err := imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return Avatar{}, fmt.Errorf("encode avatar: %w", err)
	}
	return Avatar{Data: out.Bytes(), ContentType: "image/jpeg", Ext: "jpg"}, nil
}
