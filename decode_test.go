package jpeg

import "testing"

// buildSolidGrayJPEG hand-assembles a minimal JPEG byte stream for an 8x8
// grayscale image, DC=0, all AC=0, qt[0]=1 -- every pixel decodes to 128.
func buildSolidGrayJPEG( t *testing.T ) []byte {
    t.Helper()
    var b []byte
    app := func( bs ...byte ) { b = append( b, bs... ) }
    u16 := func( v uint ) { app( byte(v>>8), byte(v) ) }

    app( 0xFF, 0xD8 ) // SOI

    // DQT: one table, id 0, all entries 1.
    u16( 0xFFDB ); u16( 2 + 1 + 64 )
    app( 0x00 )
    for i := 0; i < 64; i++ {
        app( 1 )
    }

    // DHT: DC table id 0, one symbol (category 0) at length 1.
    u16( 0xFFC4 ); u16( 2 + 1 + 16 + 1 )
    app( 0x00 )          // class 0 (DC), id 0
    app( 1 )              // L1 = 1
    for i := 0; i < 15; i++ { app( 0 ) }
    app( 0x00 )            // symbol: category 0

    // DHT: AC table id 0, one symbol (EOB, 0x00) at length 1.
    u16( 0xFFC4 ); u16( 2 + 1 + 16 + 1 )
    app( 0x10 )          // class 1 (AC), id 0
    app( 1 )
    for i := 0; i < 15; i++ { app( 0 ) }
    app( 0x00 )            // symbol: EOB

    // SOF0: 8x8, Nf=1.
    u16( 0xFFC0 ); u16( 2 + 1 + 2 + 2 + 1 + 3 )
    app( 8 )              // precision
    u16( 8 )               // height
    u16( 8 )               // width
    app( 1 )                // Nf
    app( 1, 0x11, 0 )        // id=1, sampling 1x1, quant id 0

    // SOS: one component.
    u16( 0xFFDA ); u16( 2 + 1 + 2 + 3 )
    app( 1 )              // Ns
    app( 1, 0x00 )          // id=1, DC/AC table 0
    app( 0, 63, 0 )          // Ss, Se, AhAl (unused for baseline)

    // Entropy data: DC "0" (category 0) + AC "0" (EOB) = bits "00",
    // padded to one zero byte.
    app( 0x00 )

    app( 0xFF, 0xD9 ) // EOI

    return b
}

func TestDecodeSolidGray( t *testing.T ) {
    data := buildSolidGrayJPEG( t )
    sink := newRecordingSink()
    if err := Decode( data, nil, sink ); err != nil {
        t.Fatalf( "Decode: %v", err )
    }
    if len( sink.pixels ) != 64 {
        t.Fatalf( "emitted %d pixels, want 64", len(sink.pixels) )
    }
    for xy, px := range sink.pixels {
        if px != [3]uint8{ 128, 128, 128 } {
            t.Fatalf( "pixel %v = %v, want (128,128,128)", xy, px )
        }
    }
}

func TestDecodeMissingEOI( t *testing.T ) {
    data := buildSolidGrayJPEG( t )
    truncated := data[:len(data)-2] // drop the trailing 0xFF 0xD9

    err := Decode( truncated, nil, newRecordingSink() )
    if err == nil {
        t.Fatalf( "expected an error for a stream truncated before EOI" )
    }
    jpegErr, ok := err.(*Error)
    if !ok {
        t.Fatalf( "error %v is not *Error", err )
    }
    if jpegErr.Kind != MissingEOI {
        t.Fatalf( "Kind = %v, want MissingEOI", jpegErr.Kind )
    }
}

func TestDecodeImageGrayscale( t *testing.T ) {
    data := buildSolidGrayJPEG( t )
    img, err := DecodeImage( data, nil )
    if err != nil {
        t.Fatalf( "DecodeImage: %v", err )
    }
    bounds := img.Bounds()
    if bounds.Dx() != 8 || bounds.Dy() != 8 {
        t.Fatalf( "image bounds = %v, want 8x8", bounds )
    }
    r, g, bb, _ := img.At( 3, 3 ).RGBA()
    if r>>8 != 128 || g>>8 != 128 || bb>>8 != 128 {
        t.Fatalf( "pixel (3,3) = (%d,%d,%d), want (128,128,128)", r>>8, g>>8, bb>>8 )
    }
}

func TestDecodeMissingSOI( t *testing.T ) {
    sink := newRecordingSink()
    // a well-formed marker that is simply not SOI as the very first marker.
    if err := Decode( []byte{ 0xFF, 0xD9 }, nil, sink ); err == nil {
        t.Fatalf( "expected MissingSOI" )
    }
}

func TestDecodeUnsupportedComponentCount( t *testing.T ) {
    var b []byte
    app := func( bs ...byte ) { b = append( b, bs... ) }
    u16 := func( v uint ) { app( byte(v>>8), byte(v) ) }
    app( 0xFF, 0xD8 )
    u16( 0xFFC0 ); u16( 2 + 1 + 2 + 2 + 1 + 3*2 )
    app( 8 )
    u16( 8 )
    u16( 8 )
    app( 2 ) // Nf=2, unsupported (only 1 or 3 allowed)
    app( 1, 0x11, 0 )
    app( 2, 0x11, 0 )
    app( 0xFF, 0xD9 )

    if err := Decode( b, nil, newRecordingSink() ); err == nil {
        t.Fatalf( "expected UnsupportedFeature for Nf=2" )
    }
}
