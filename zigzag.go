package jpeg

// Zig-zag reorder table. zigZagToNatural[i] gives the natural
// (row-major) index of the i-th zig-zag coefficient. Cross-checked against
// jpeg.go's zigZagRowCol and original_source/main.py's
// _zigzag list -- all three agree on the permutation.
var zigZagToNatural = [64]int{
    0, 1, 5, 6, 14, 15, 27, 28,
    2, 4, 7, 13, 16, 26, 29, 42,
    3, 8, 12, 17, 25, 30, 41, 43,
    9, 11, 18, 24, 31, 40, 44, 53,
    10, 19, 23, 32, 39, 45, 52, 54,
    20, 22, 33, 38, 46, 51, 55, 60,
    21, 34, 37, 47, 50, 56, 59, 61,
    35, 36, 48, 49, 57, 58, 62, 63,
}

// naturalOrder maps a zig-zag-ordered block to natural (row-major) order:
// natural[zigzag[i]] = dequant[i].
func naturalOrder( zz *[64]int32 ) [64]int32 {
    var nat [64]int32
    for i := 0; i < 64; i++ {
        nat[zigZagToNatural[i]] = zz[i]
    }
    return nat
}
