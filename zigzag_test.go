package jpeg

import "testing"

func TestZigZagIsPermutation( t *testing.T ) {
    seen := make( map[int]bool, 64 )
    for _, n := range zigZagToNatural {
        if n < 0 || n > 63 {
            t.Fatalf( "natural index %d out of range", n )
        }
        if seen[n] {
            t.Fatalf( "natural index %d appears twice", n )
        }
        seen[n] = true
    }
    if len( seen ) != 64 {
        t.Fatalf( "expected 64 distinct indices, got %d", len(seen) )
    }
}

func TestNaturalOrderRoundTrip( t *testing.T ) {
    var zz [64]int32
    for i := range zz {
        zz[i] = int32( i )
    }
    nat := naturalOrder( &zz )
    for i := 0; i < 64; i++ {
        if nat[zigZagToNatural[i]] != int32(i) {
            t.Fatalf( "natural[%d] = %d, want %d", zigZagToNatural[i], nat[zigZagToNatural[i]], i )
        }
    }
}
