package jpeg

import (
    "bytes"
    "fmt"
)

// APP0/JFIF recognition, ambient and diagnostic only:
// it never changes decode outcome, only what gets printed under
// Control.Markers. Adapted from jfif.go's
// (markerAPP0discriminator, getUnitsString); APP1/EXIF support (app.go,
// exif.go) is intentionally not carried forward: no component in this
// package consumes EXIF/APP1 payloads.

const (
    dotsPerArbitraryUnit = 0
    dotsPerInch          = 1
    dotsPerCM            = 2
)

func unitsString( units byte ) string {
    switch units {
    case dotsPerInch:
        return "dpi"
    case dotsPerCM:
        return "dpcm"
    }
    return "dp?"
}

// printJFIF peeks (without consuming) at an APP0 payload and prints a
// one-line summary if it looks like a JFIF header. The caller is
// responsible for skipping the segment regardless of what this prints.
func printJFIF( c *byteCursor, payloadLen uint ) {
    if payloadLen < 14 {
        return
    }
    h, err := c.peek( payloadLen, 0 )
    if err != nil {
        return
    }
    if !bytes.Equal( h[0:5], []byte("JFIF\x00") ) {
        return
    }
    major, minor := h[5], h[6]
    units := h[7]
    hDensity := uint(h[8])<<8 + uint(h[9])
    vDensity := uint(h[10])<<8 + uint(h[11])
    fmt.Printf( "  JFIF %d.%02d, density %d x %d %s\n", major, minor, hDensity, vDensity, unitsString(units) )
}
