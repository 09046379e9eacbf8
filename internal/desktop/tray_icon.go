package desktop

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/nfnt/resize"
	ico "github.com/sergeymakinen/go-ico"
)

// ICO entries are at most 256x256
const maxICOSize = 256

var icoHeader = []byte{0, 0, 1, 0}

func isICO(data []byte) bool {
	return len(data) > 6 && bytes.HasPrefix(data, icoHeader)
}

// checkIcon reports whether data decodes as an image the tray can show
func checkIcon(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("tray icon is empty")
	}
	if isICO(data) {
		return nil
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("decode tray icon: %w", err)
	}
	return nil
}

// encodeICO converts a PNG icon into a single-entry ICO, shrinking it to fit
func encodeICO(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode tray icon: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > maxICOSize || b.Dy() > maxICOSize {
		img = resize.Thumbnail(maxICOSize, maxICOSize, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := ico.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode tray icon: %w", err)
	}
	return buf.Bytes(), nil
}
