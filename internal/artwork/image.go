package artwork

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"

	httpclient "github.com/chenyg/ytpl-downloader/internal/http"
)

// Service fetches video thumbnails and prepares them for embedding as
// ID3 cover art: images are resized to a maximum dimension and
// re-encoded as JPEG for player compatibility.
type Service struct {
	client *httpclient.Client
}

// NewService creates a new artwork Service.
func NewService() *Service {
	return &Service{client: httpclient.NewClient()}
}

// FetchCover downloads a thumbnail and returns it as JPEG bytes,
// resized to fit within maxSize × maxSize pixels.
func (s *Service) FetchCover(ctx context.Context, url string, maxSize int) ([]byte, error) {
	data, err := s.client.DownloadBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.ResizeImage(ctx, data, maxSize, maxSize)
}

// ResizeImage resizes an image to fit within the specified maximum
// dimensions, preserving the aspect ratio, and returns JPEG-encoded
// bytes. Images already within bounds are re-encoded unchanged in
// size.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
func (s *Service) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Calculate new dimensions maintaining aspect ratio
	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			// Width is the limiting factor
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ConvertToJPEG converts an image to JPEG format without resizing.
func (s *Service) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
