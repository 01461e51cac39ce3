package jpeg

import "fmt"

// Decoder State Machine: Init -> Segments -> Done. Init waits for SOI;
// the scan runs to completion inside the SOS case of the Segments state.
// Grounded on jpeg.go's Parse dispatch loop shape --
// `for i := uint(0); i < tLen; { marker := ...; switch marker { ... } }` --
// generalized from a multi-frame/thumbnail/EXIF-aware state
// machine down to the three states this decoder keeps.

// marker constants, named the way jpeg.go names them.
const (
    _SOI  = 0xFFD8
    _EOI  = 0xFFD9
    _DQT  = 0xFFDB
    _DHT  = 0xFFC4
    _SOF0 = 0xFFC0
    _SOS  = 0xFFDA
    _DRI  = 0xFFDD
    _COM  = 0xFFFE
    _RST0 = 0xD0
    _RST7 = 0xD7

    _APP0  = 0xFFE0
    _APP15 = 0xFFEF
)

func isRST( marker uint ) bool {
    return marker >= 0xFFD0 && marker <= 0xFFD7
}

func isAPPn( marker uint ) bool {
    return marker >= _APP0 && marker <= _APP15
}

// Control carries decode-time options, mirroring the
// Control struct in jpeg.go. Every field except Warn is read
// by the decoder.
type Control struct {
    Warn          bool // accepted but has no effect: the decoder reports no non-fatal warnings
    Markers       bool // print each marker as it is parsed
    Mcu           bool // print each MCU as it is decoded
    AllowRestarts bool // opt-in DRI/RSTn support
}

type decodeState int

const (
    stateInit decodeState = iota
    stateSegments
    stateDone
)

// Decode parses a baseline sequential JPEG bitstream and emits every pixel
// of the decoded image to sink, in MCU-raster then pixel-raster order.
func Decode( data []byte, ctrl *Control, sink Sink ) error {
    if ctrl == nil {
        ctrl = &Control{}
    }
    c := newByteCursor( data )

    st := stateInit
    var ht huffmanTables
    var qt quantTables
    var fr *frame
    var restartInterval uint
    sawSOS := false
    done := false

    for !done {
        if c.remaining() < 2 {
            if sawSOS {
                return newError( "Decode", MissingEOI, "" )
            }
            return newError( "Decode", UnexpectedEOF, "" )
        }
        markerByte, err := c.u16be()
        if err != nil {
            return err
        }
        marker := markerByte

        if marker>>8 != 0xFF {
            return newError( "Decode", BadMarker, "expected 0xFF prefix, got %#04x", marker )
        }

        if ctrl.Markers {
            fmt.Printf( "marker %#04x\n", marker )
        }

        switch {
        case marker == _SOI:
            if st != stateInit {
                return newError( "Decode", BadMarker, "unexpected SOI in state %d", st )
            }
            st = stateSegments

        case st == stateInit:
            return newError( "Decode", MissingSOI, "" )

        case marker == _EOI:
            if !sawSOS {
                return newError( "Decode", MissingSOS, "" )
            }
            st = stateDone
            done = true

        case marker == _DQT:
            if err := readDQT( c, &qt ); err != nil {
                return err
            }

        case marker == _DHT:
            if err := readDHT( c, &ht ); err != nil {
                return err
            }

        case marker == _SOF0:
            segLen, err := c.u16be()
            if err != nil {
                return err
            }
            fr, err = parseSOF0( c, segLen-2 )
            if err != nil {
                return err
            }

        case marker == _DRI:
            segLen, err := c.u16be()
            if err != nil {
                return err
            }
            if segLen != 4 {
                return newError( "Decode", BadMarker, "DRI length %d != 4", segLen )
            }
            ri, err := c.u16be()
            if err != nil {
                return err
            }
            restartInterval = ri

        case marker == _SOS:
            if fr == nil {
                return newError( "Decode", MissingSOF, "" )
            }
            segLen, err := c.u16be()
            if err != nil {
                return err
            }
            scanComps, err := parseSOS( c, segLen-2, fr, &ht )
            if err != nil {
                return err
            }
            if sz, ok := sink.(sizer); ok {
                sz.setSize( int(fr.width), int(fr.height), fr.nComp == 1 )
            }
            br := newBitReader( data, c.pos )
            if err := decodeScan( br, fr, scanComps, &qt, sink, restartInterval, ctrl ); err != nil {
                return err
            }
            c.pos = br.markerPos()
            sawSOS = true

        case isAPPn( marker ) || marker == _COM:
            segLen, err := c.u16be()
            if err != nil {
                return err
            }
            if err := readAppOrComment( c, marker, segLen, ctrl ); err != nil {
                return err
            }

        case isRST( marker ):
            return newError( "Decode", BadMarker, "restart marker outside a scan" )

        default:
            segLen, err := c.u16be()
            if err != nil {
                return err
            }
            if err := c.skip( segLen - 2 ); err != nil {
                return err
            }
        }
    }

    if fr == nil {
        return newError( "Decode", MissingSOF, "" )
    }
    if !sawSOS {
        return newError( "Decode", MissingSOS, "" )
    }
    return nil
}

// readDQT reads one DQT segment, which may pack multiple tables back to
// back: consume exactly L-2 bytes.
func readDQT( c *byteCursor, qt *quantTables ) error {
    segLen, err := c.u16be()
    if err != nil {
        return err
    }
    remaining := segLen - 2
    for remaining > 0 {
        info, err := c.u8()
        if err != nil {
            return err
        }
        remaining--
        precision := info >> 4
        id := info & 0x0F
        if precision != 0 {
            return newError( "readDQT", UnsupportedFeature, "16-bit quant table not supported" )
        }
        if id > 3 {
            return newError( "readDQT", BadMarker, "quant table id %d out of range", id )
        }
        raw, err := c.bytes( 64 )
        if err != nil {
            return err
        }
        remaining -= 64
        var values [64]uint16
        for i, v := range raw {
            values[i] = uint16( v )
        }
        qt.set( id, values )
    }
    return nil
}

// readDHT reads one DHT segment, which may pack multiple tables back to
// back: consume exactly L-2 bytes.
func readDHT( c *byteCursor, ht *huffmanTables ) error {
    segLen, err := c.u16be()
    if err != nil {
        return err
    }
    remaining := segLen - 2
    for remaining > 0 {
        info, err := c.u8()
        if err != nil {
            return err
        }
        remaining--
        class := info >> 4
        id := info & 0x0F
        if class > 1 || id > 3 {
            return newError( "readDHT", BadMarker, "bad table_info %#02x", info )
        }
        countBytes, err := c.bytes( 16 )
        if err != nil {
            return err
        }
        remaining -= 16
        var counts [16]byte
        total := 0
        for i, n := range countBytes {
            counts[i] = n
            total += int( n )
        }
        symbols, err := c.bytes( uint(total) )
        if err != nil {
            return err
        }
        remaining -= uint(total)
        root, err := buildHuffmanTree( counts, symbols )
        if err != nil {
            return err
        }
        ht.set( class, id, root )
    }
    return nil
}

// readAppOrComment skips an APPn/COM segment's payload, optionally
// recognizing APP0/JFIF for diagnostic printing (jfif.go).
func readAppOrComment( c *byteCursor, marker, segLen uint, ctrl *Control ) error {
    payloadLen := segLen - 2
    if marker == _APP0 && ctrl.Markers {
        printJFIF( c, payloadLen ) // diagnostic only; never affects decode outcome
    }
    return c.skip( payloadLen )
}
