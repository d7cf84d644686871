package render

import (
	"bufio"
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// DecodeImage decodes PNG, JPEG, BMP, WebP or TGA data. The container is
// picked from the leading bytes; data without a known signature is read as
// TGA, which has none. image.Decode is not used because the TGA package
// registers an empty magic string that matches every input.
func DecodeImage(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(12)

	switch {
	case bytes.HasPrefix(head, []byte("\x89PNG\r\n\x1a\n")):
		return png.Decode(br)
	case bytes.HasPrefix(head, []byte{0xff, 0xd8}):
		return jpeg.Decode(br)
	case bytes.HasPrefix(head, []byte("BM")):
		return bmp.Decode(br)
	case len(head) == 12 && string(head[:4]) == "RIFF" && string(head[8:]) == "WEBP":
		return webp.Decode(br)
	default:
		return tga.Decode(br)
	}
}
