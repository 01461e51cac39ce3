package jpeg

import "testing"

func TestIdctDCOnlyIsConstant( t *testing.T ) {
    // DC=0, all AC=0 => every sample is 128.
    var f [64]int32
    out := idct8x8( &f )
    for i, v := range out {
        if v != 128 {
            t.Fatalf( "sample %d = %d, want 128", i, v )
        }
    }
}

func TestIdctNonzeroDCShiftsUniformly( t *testing.T ) {
    // F(0,0) = 8 with all other coefficients 0: after the 1/4 scaling and
    // the two C(0)=1/sqrt(2) factors, every spatial sample should shift by
    // the same constant amount relative to the DC-only-zero case.
    var f [64]int32
    f[0] = 8
    out := idct8x8( &f )
    want := out[0]
    for i, v := range out {
        if v != want {
            t.Fatalf( "sample %d = %d, want uniform %d", i, v, want )
        }
    }
    if want == 128 {
        t.Fatalf( "nonzero DC should shift the level away from 128" )
    }
}

func TestClamp8(t *testing.T) {
    cases := []struct{ in int; want uint8 }{
        { -10, 0 },
        { 0, 0 },
        { 255, 255 },
        { 300, 255 },
        { 128, 128 },
    }
    for _, c := range cases {
        if got := clamp8( c.in ); got != c.want {
            t.Errorf( "clamp8(%d) = %d, want %d", c.in, got, c.want )
        }
    }
}
