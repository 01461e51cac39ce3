package jpeg

// Entropy Decoder: per-block DC+AC symbol decoding using
// Huffman trees and the DC predictor.
//
// No complete version of this exists anywhere in the reference snapshot --
// segment.go's getEcsFct dispatches to jpg.processSequentialEcs, which is
// never defined in any available file. The control flow below is grounded on
// analyse.go's processECS (an older JpegDesc-typed draft, but
// the one actual working implementation present), cross-checked against
// other_examples/dd5d74b5_cocosip...jpeg-baseline-decoder.go's decodeBlock
// and original_source/main.py's _build_matrix/_decode_number for the
// signed-magnitude rule.

// extend converts an S-bit raw magnitude to its signed value:
// value = bits if bits >= 2^(S-1), else bits - (2^S - 1). S=0 => 0.
func extend( bits uint, size uint ) int32 {
    if size == 0 {
        return 0
    }
    half := uint(1) << (size - 1)
    if bits >= half {
        return int32( bits )
    }
    return int32(bits) - int32( (1<<size)-1 )
}

// decodeBlock decodes one 8x8 block's 64 zig-zag-ordered coefficients for
// the given scan component, updating its DC predictor.
func decodeBlock( br *bitReader, sc *scanComponent ) (*[64]int32, error) {
    var coeffs [64]int32

    // 1-3: DC symbol, magnitude bits, signed value, running predictor.
    dcSize, err := decodeSymbol( sc.dcRoot, br )
    if err != nil {
        return nil, err
    }
    if dcSize > 11 {
        return nil, newError( "decodeBlock", InvalidHuffmanCode, "DC category %d > 11", dcSize )
    }
    dcBits, err := br.readBits( uint(dcSize) )
    if err != nil {
        return nil, err
    }
    diff := extend( dcBits, uint(dcSize) )
    sc.comp.dcPredictor += diff
    coeffs[0] = sc.comp.dcPredictor

    // 4-5: AC run-length decode until EOB or k reaches 64 (ZRL skips 16 zeros).
    k := 1
    for k < 64 {
        rs, err := decodeSymbol( sc.acRoot, br )
        if err != nil {
            return nil, err
        }
        run := int( rs >> 4 )
        size := rs & 0x0F

        if rs == 0x00 { // EOB
            break
        }
        if rs == 0xF0 { // ZRL: 16 zeros
            k += 16
            if k >= 64 {
                return nil, newError( "decodeBlock", InvalidAcRun, "k=%d after ZRL", k )
            }
            continue
        }

        k += run
        if k >= 64 {
            return nil, newError( "decodeBlock", InvalidAcRun, "k=%d after run %d", k, run )
        }

        bits, err := br.readBits( uint(size) )
        if err != nil {
            return nil, err
        }
        coeffs[k] = extend( bits, uint(size) )
        k++
    }

    return &coeffs, nil
}
