package jpeg

// Frame/Scan Header State. Grounded on segment.go's
// startOfFrame/processScanHeader for the ceiling-division MCU
// grid and per-component id-to-index mapping; components are kept in a
// fixed [4]component array, indexed by position rather than id; SOS
// resolves each referenced id by a linear search (componentByID).

type component struct {
    id                byte
    hSamp, vSamp      byte
    quantID           byte
    dcID, acID        byte
    dcPredictor       int32
    blocksPerLine     uint // component block columns in the frame
    blocksPerColumn   uint // component block rows in the frame
}

type frame struct {
    width, height uint
    maxH, maxV    byte
    nComp         int
    comps         [4]component

    mcusPerLine   uint
    mcusPerColumn uint
}

func (f *frame) componentByID( id byte ) (*component, error) {
    for i := 0; i < f.nComp; i++ {
        if f.comps[i].id == id {
            return &f.comps[i], nil
        }
    }
    return nil, newError( "componentByID", BadMarker, "no component with id %d", id )
}

// parseSOF0 reads the SOF0 payload after the 2-byte length field has
// already been consumed by the marker dispatch loop.
func parseSOF0( c *byteCursor, segLen uint ) (*frame, error) {
    start := c.pos
    precision, err := c.u8()
    if err != nil {
        return nil, err
    }
    if precision != 8 {
        return nil, newError( "parseSOF0", UnsupportedFeature, "precision %d not supported", precision )
    }
    height, err := c.u16be()
    if err != nil {
        return nil, err
    }
    width, err := c.u16be()
    if err != nil {
        return nil, err
    }
    if width == 0 || height == 0 {
        return nil, newError( "parseSOF0", InvalidDimensions, "%dx%d", width, height )
    }
    nf, err := c.u8()
    if err != nil {
        return nil, err
    }
    if nf != 1 && nf != 3 {
        return nil, newError( "parseSOF0", UnsupportedFeature, "Nf=%d not supported (only 1 or 3)", nf )
    }

    f := &frame{ width: width, height: height, nComp: int(nf) }
    for i := 0; i < int(nf); i++ {
        id, err := c.u8()
        if err != nil {
            return nil, err
        }
        samp, err := c.u8()
        if err != nil {
            return nil, err
        }
        quantID, err := c.u8()
        if err != nil {
            return nil, err
        }
        h := samp >> 4
        v := samp & 0x0F
        if h == 0 || v == 0 {
            return nil, newError( "parseSOF0", InvalidDimensions, "zero sampling factor for component %d", id )
        }
        f.comps[i] = component{ id: id, hSamp: h, vSamp: v, quantID: quantID }
        if h > f.maxH {
            f.maxH = h
        }
        if v > f.maxV {
            f.maxV = v
        }
    }

    if c.pos-start != segLen {
        return nil, newError( "parseSOF0", BadMarker, "segment length mismatch (consumed %d, declared %d)",
            c.pos-start, segLen )
    }

    mcuW := uint( 8 * f.maxH )
    mcuH := uint( 8 * f.maxV )
    f.mcusPerLine = ceilDiv( f.width, mcuW )
    f.mcusPerColumn = ceilDiv( f.height, mcuH )

    for i := 0; i < f.nComp; i++ {
        comp := &f.comps[i]
        comp.blocksPerLine = f.mcusPerLine * uint(comp.hSamp)
        comp.blocksPerColumn = f.mcusPerColumn * uint(comp.vSamp)
    }

    return f, nil
}

func ceilDiv( a, b uint ) uint {
    return (a + b - 1) / b
}

// scanComponent binds a frame component to its DC/AC Huffman table ids for
// the duration of one scan.
type scanComponent struct {
    comp       *component
    dcRoot     *hcnode
    acRoot     *hcnode
}

// parseSOS reads the SOS payload (after the 2-byte length) and resolves
// each referenced component against the frame and Huffman table store.
func parseSOS( c *byteCursor, segLen uint, f *frame, ht *huffmanTables ) ([]scanComponent, error) {
    start := c.pos
    ns, err := c.u8()
    if err != nil {
        return nil, err
    }
    scanComps := make( []scanComponent, 0, ns )
    for i := byte(0); i < ns; i++ {
        id, err := c.u8()
        if err != nil {
            return nil, err
        }
        tdTa, err := c.u8()
        if err != nil {
            return nil, err
        }
        comp, err := f.componentByID( id )
        if err != nil {
            return nil, newError( "parseSOS", BadMarker, "SOS references unknown component %d", id )
        }
        comp.dcID = tdTa >> 4
        comp.acID = tdTa & 0x0F
        dcRoot, err := ht.get( 0, comp.dcID )
        if err != nil {
            return nil, err
        }
        acRoot, err := ht.get( 1, comp.acID )
        if err != nil {
            return nil, err
        }
        comp.dcPredictor = 0
        scanComps = append( scanComps, scanComponent{ comp: comp, dcRoot: dcRoot, acRoot: acRoot } )
    }
    // Ss, Se, AhAl: 3 trailing bytes, not verified for baseline.
    if err := c.skip( 3 ); err != nil {
        return nil, err
    }
    if c.pos-start != segLen {
        return nil, newError( "parseSOS", BadMarker, "segment length mismatch (consumed %d, declared %d)",
            c.pos-start, segLen )
    }
    return scanComps, nil
}
