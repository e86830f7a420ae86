package picstash

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	thumbnailMax = 100
	jpegQuality  = 80
)

// makeThumbnail decodes src, scales it to fit a 100x100 bounding box while
// preserving aspect ratio, and encodes the result as JPEG. The format is
// sniffed from the bytes; if sniffing fails the bytes get a second chance
// as bare JPEG before the upload is declared undecodable.
func makeThumbnail(src []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		img, err = jpeg.Decode(bytes.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tw, th := fitWithin(w, h, thumbnailMax)
	if tw != w || th != h {
		dst := image.NewRGBA(image.Rect(0, 0, tw, th))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin scales (w, h) down to fit in a max-by-max box, preserving
// aspect ratio. Images already inside the box keep their dimensions.
func fitWithin(w, h, max int) (int, int) {
	if w <= max && h <= max {
		return w, h
	}
	if w >= h {
		th := h * max / w
		if th < 1 {
			th = 1
		}
		return max, th
	}
	tw := w * max / h
	if tw < 1 {
		tw = 1
	}
	return tw, max
}

// Thumbnailer derives thumbnail blobs from stored originals.
type Thumbnailer struct {
	blobs *BlobStore
}

// NewThumbnailer creates a Thumbnailer over the given blob store.
func NewThumbnailer(blobs *BlobStore) *Thumbnailer {
	return &Thumbnailer{blobs: blobs}
}

// Generate reads the original for id, derives its thumbnail, and stores
// it. Re-running for the same id rewrites the thumbnail in place.
func (t *Thumbnailer) Generate(id int64) error {
	src, err := t.blobs.ReadOriginal(id)
	if err != nil {
		return err
	}
	thumb, err := makeThumbnail(src)
	if err != nil {
		return fmt.Errorf("thumbnail %d: %w", id, err)
	}
	return t.blobs.WriteThumbnail(id, thumb)
}
