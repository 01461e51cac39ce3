package jpeg

import (
    "image"
    "image/color"
)

// sizer is an optional Sink extension that learns the frame's pixel
// dimensions and component count once SOF0 has been parsed, before any
// Emit call (the scan only begins once segment parsing finishes). Decode checks
// for it via a type assertion and calls it once per scan.
type sizer interface {
    setSize( width, height int, grayscale bool )
}

// DecodeImage wraps Decode with a Sink that materializes a standard
// library image.Image, for callers that want a full raster instead of
// implementing the Emit callback themselves. A Sink may instead buffer to
// a contiguous height x width x 3 array. Grounded on jpeg.go/decode.go's
// SaveRawPicture/writeYCbCr/writeBW family, which also
// materializes a full raster rather than only streaming pixels, but
// targets the ecosystem's own interchange type (image.RGBA / image.Gray)
// instead of ad-hoc byte planes.
func DecodeImage( data []byte, ctrl *Control ) (image.Image, error) {
    img := &imageSink{}
    if err := Decode( data, ctrl, img ); err != nil {
        return nil, err
    }
    return img.result(), nil
}

type imageSink struct {
    rgba      *image.RGBA
    gray      *image.Gray
    grayscale bool
}

func (s *imageSink) setSize( width, height int, grayscale bool ) {
    s.grayscale = grayscale
    if grayscale {
        s.gray = image.NewGray( image.Rect( 0, 0, width, height ) )
    } else {
        s.rgba = image.NewRGBA( image.Rect( 0, 0, width, height ) )
    }
}

func (s *imageSink) Emit( x, y uint16, r, g, b uint8 ) {
    if s.grayscale {
        s.gray.SetGray( int(x), int(y), color.Gray{ Y: r } )
        return
    }
    s.rgba.Set( int(x), int(y), color.RGBA{ R: r, G: g, B: b, A: 0xFF } )
}

func (s *imageSink) result() image.Image {
    if s.grayscale {
        return s.gray
    }
    return s.rgba
}
