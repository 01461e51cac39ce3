package jpeg

import (
    "fmt"
    "math"
)

// MCU Assembler & Color Converter. Grounded on
// other_examples/dd5d74b5_cocosip...jpeg-baseline-decoder.go's
// convertToPixels for the generalized chroma-sampling shape (that file
// already computes sx := (x*comp.H)/maxH, the correct generalized form),
// adapted here to use a floating-point YCbCr matrix instead
// of that file's integer fixed-point approximation. Deliberately NOT
// grounded on original_source/main.py's update_output, whose
// `global_y // self.sampling[1]` formula is only correct when
// v_sampling == max_v, a shortcut this decoder deliberately avoids.

// Sink receives decoded pixels in MCU-raster, then pixel-raster order.
// Called at most once per (x,y).
type Sink interface {
    Emit( x, y uint16, r, g, b uint8 )
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func( x, y uint16, r, g, b uint8 )

func (f SinkFunc) Emit( x, y uint16, r, g, b uint8 ) { f( x, y, r, g, b ) }

// mcuBlock holds one component's decoded, spatial-domain 8x8 samples,
// level-shifted but not yet clamped (clamping happens at the final R/G/B
// or grayscale output stage).
type mcuBlock = [64]int16

// reconstructBlock runs the block reconstruction stage:
// dequantize, zig-zag reorder to natural order, IDCT with level shift.
func reconstructBlock( zz *[64]int32, qt *[64]uint16 ) mcuBlock {
    dequantize( zz, qt )
    nat := naturalOrder( zz )
    return idct8x8( &nat )
}

// decodeScan drives the Entropy Decoder + Block Reconstruction + MCU
// Assembler over a full interleaved scan and emits every pixel of the
// frame. restartInterval == 0 disables
// restart handling regardless of ctrl.AllowRestarts (no DRI was seen).
func decodeScan( br *bitReader, f *frame, scanComps []scanComponent, qt *quantTables, sink Sink,
                  restartInterval uint, ctrl *Control ) error {
    totalMcus := f.mcusPerLine * f.mcusPerColumn
    mcusSinceRestart := uint(0)

    for mcuIdx := uint(0); mcuIdx < totalMcus; mcuIdx++ {
        mx := mcuIdx % f.mcusPerLine
        my := mcuIdx / f.mcusPerLine

        if restartInterval > 0 && mcusSinceRestart == restartInterval {
            if !ctrl.AllowRestarts {
                return newError( "decodeScan", UnsupportedFeature, "restart interval reached, restarts disabled" )
            }
            if err := consumeRestartMarker( br ); err != nil {
                return err
            }
            for ci := range scanComps {
                scanComps[ci].comp.dcPredictor = 0
            }
            mcusSinceRestart = 0
        }

        var blocks [4][]mcuBlock // indexed by component position
        for ci := range scanComps {
            sc := &scanComps[ci]
            comp := sc.comp
            n := int(comp.hSamp) * int(comp.vSamp)
            compBlocks := make( []mcuBlock, n )
            for bi := 0; bi < n; bi++ {
                qtab, err := qt.get( comp.quantID )
                if err != nil {
                    return err
                }
                zz, err := decodeBlock( br, sc )
                if err != nil {
                    return err
                }
                compBlocks[bi] = reconstructBlock( zz, qtab )
            }
            blocks[ci] = compBlocks
        }

        if ctrl.Mcu {
            fmt.Printf( "mcu %d (%d,%d)\n", mcuIdx, mx, my )
        }

        if err := emitMCU( f, scanComps, blocks, mx, my, sink ); err != nil {
            return err
        }
        mcusSinceRestart++
    }
    return nil
}

// consumeRestartMarker discards any leftover bits in the current byte,
// then expects and consumes a 0xFF RSTn marker (an opt-in, supplemented
// restart-interval feature).
func consumeRestartMarker( br *bitReader ) error {
    br.nbits = 0 // byte-align: discard stuffing bits left in the register
    br.fill()
    if br.pos+1 >= uint(len(br.data)) {
        return newError( "consumeRestartMarker", UnexpectedEOF, "" )
    }
    if br.data[br.pos] != 0xFF || br.data[br.pos+1] < _RST0 || br.data[br.pos+1] > _RST7 {
        return newError( "consumeRestartMarker", BadMarker, "expected RSTn, found %02x %02x",
            br.data[br.pos], br.data[br.pos+1] )
    }
    br.pos += 2
    br.atMarker = false
    return nil
}

// emitMCU converts one MCU's decoded blocks to RGB and emits every pixel
// within the frame bounds.
func emitMCU( f *frame, scanComps []scanComponent, blocks [4][]mcuBlock, mx, my uint, sink Sink ) error {
    grayscale := len( scanComps ) == 1

    mcuPxW := 8 * uint(f.maxH)
    mcuPxH := 8 * uint(f.maxV)

    lumaComp := &scanComps[0]
    lumaBlocks := blocks[0]
    var cbComp, crComp *scanComponent
    var cbBlocks, crBlocks []mcuBlock
    if !grayscale {
        cbComp, cbBlocks = &scanComps[1], blocks[1]
        crComp, crBlocks = &scanComps[2], blocks[2]
    }

    for ly := uint(0); ly < mcuPxH; ly++ {
        py := my*mcuPxH + ly
        if py >= f.height {
            continue // MCU padding row beyond frame
        }
        for lx := uint(0); lx < mcuPxW; lx++ {
            px := mx*mcuPxW + lx
            if px >= f.width {
                continue // MCU padding column beyond frame
            }

            lumaBx := lx / 8
            lumaBy := ly / 8
            lumaBlockIdx := lumaBy*uint(lumaComp.comp.hSamp) + lumaBx
            Y := lumaBlocks[lumaBlockIdx][(ly%8)*8+(lx%8)]

            if grayscale {
                yv := clamp8( int(Y) )
                sink.Emit( uint16(px), uint16(py), yv, yv, yv )
                continue
            }

            cx := lx * uint(cbComp.comp.hSamp) / uint(f.maxH)
            cy := ly * uint(cbComp.comp.vSamp) / uint(f.maxV)
            cbBx := cx / 8
            cbBy := cy / 8
            cbBlockIdx := cbBy*uint(cbComp.comp.hSamp) + cbBx
            Cb := cbBlocks[cbBlockIdx][(cy%8)*8+(cx%8)]

            cx2 := lx * uint(crComp.comp.hSamp) / uint(f.maxH)
            cy2 := ly * uint(crComp.comp.vSamp) / uint(f.maxV)
            crBx := cx2 / 8
            crBy := cy2 / 8
            crBlockIdx := crBy*uint(crComp.comp.hSamp) + crBx
            Cr := crBlocks[crBlockIdx][(cy2%8)*8+(cx2%8)]

            r, g, b := ycbcrToRGB( Y, Cb, Cr )
            sink.Emit( uint16(px), uint16(py), r, g, b )
        }
    }
    return nil
}

// ycbcrToRGB applies the standard floating-point YCbCr matrix. Inputs are
// already level-shifted by the IDCT (+128) and may still carry the IDCT's
// unclamped overshoot; only the resulting R/G/B are clamped, here.
func ycbcrToRGB( y, cb, cr int16 ) (uint8, uint8, uint8) {
    yf := float64( y )
    cbf := float64( cb ) - 128
    crf := float64( cr ) - 128

    r := yf + 1.402*crf
    g := yf - 0.34414*cbf - 0.71414*crf
    b := yf + 1.772*cbf

    return roundClamp( r ), roundClamp( g ), roundClamp( b )
}

func roundClamp( v float64 ) uint8 {
    return clamp8( int( math.Round( v ) ) )
}
