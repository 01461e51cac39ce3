package jpeg

import "math"

// 8x8 inverse DCT:
//
//   s(x,y) = round( 1/4 * sum_u sum_v C(u) C(v) F(u,v) cos(pi(2x+1)u/16) cos(pi(2y+1)v/16) ) + 128
//
// with C(0) = 1/sqrt(2), C(k>0) = 1. Structured as a separable row-then-
// column pass, the way decode.go's inverseDCT8 is structured --
// but decode.go's actual multiply/add constants (is0..is7, ia1, a2, ia3,
// a4, a5) are a specific AAN fast-IDCT factorization with its own scaling
// convention; reusing those numbers here would silently implement a
// different (if faster) transform than the direct cosine-sum one below. This
// implementation instead precomputes the literal cosine table the transform
// calls for and performs the direct two 1-D passes, cross-checked against
// original_source/main.py's idct_table / _idct.

var cosTable [8][8]float64 // cosTable[x][u] = cos(pi*(2x+1)*u/16)

func init() {
    for x := 0; x < 8; x++ {
        for u := 0; u < 8; u++ {
            cosTable[x][u] = math.Cos( math.Pi * float64(2*x+1) * float64(u) / 16 )
        }
    }
}

func cCoef( k int ) float64 {
    if k == 0 {
        return 1 / math.Sqrt2
    }
    return 1
}

// idct8x8 takes a natural-order (after dequantize + zig-zag reorder) block
// of 64 coefficients and returns 64 level-shifted samples in natural
// row-major order. Samples are left unclamped: clamping happens only once,
// at the final R/G/B (or grayscale) output stage, the way
// original_source/main.py's _idct hands its raw level-shifted int straight
// to _YCbCr_to_rgb without clamping in between.
func idct8x8( f *[64]int32 ) [64]int16 {
    // column pass: for each column v, compute intermediate[y][v] = sum_u C(u) F(u,v) cos(...)
    var tmp [8][8]float64
    for v := 0; v < 8; v++ {
        for y := 0; y < 8; y++ {
            var sum float64
            for u := 0; u < 8; u++ {
                sum += cCoef(u) * float64( f[u*8+v] ) * cosTable[y][u]
            }
            tmp[y][v] = sum
        }
    }

    // row pass: for each row y, compute s(x,y) = 1/4 sum_v C(v) tmp[y][v] cos(...)
    var out [64]int16
    for y := 0; y < 8; y++ {
        for x := 0; x < 8; x++ {
            var sum float64
            for v := 0; v < 8; v++ {
                sum += cCoef(v) * tmp[y][v] * cosTable[x][v]
            }
            val := int( math.Round( sum/4 ) ) + 128
            out[y*8+x] = int16( val )
        }
    }
    return out
}

func clamp8( v int ) uint8 {
    if v < 0 {
        return 0
    }
    if v > 255 {
        return 255
    }
    return uint8( v )
}
