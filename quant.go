package jpeg

// Quantization Table Store: a fixed-size mapping from id (0..3)
// to 64 zig-zag-ordered byte values, grounded on decode.go's dequantize
// for the multiply-by-table shape, and segment.go's
// defineQuantizationTable for multi-table-per-segment storage.

type quantTables struct {
    tables [4]*[64]uint16
}

func (q *quantTables) set( id byte, values [64]uint16 ) {
    t := values
    q.tables[id] = &t
}

func (q *quantTables) get( id byte ) (*[64]uint16, error) {
    t := q.tables[id]
    if t == nil {
        return nil, newError( "quantTables.get", MissingQuantTable, "id=%d", id )
    }
    return t, nil
}

// dequantize multiplies each zig-zag-ordered coefficient by the matching
// zig-zag-ordered quantization value.
func dequantize( coeffs *[64]int32, qt *[64]uint16 ) {
    for k := 0; k < 64; k++ {
        coeffs[k] *= int32( qt[k] )
    }
}
