// Package disk lays out the tracks of a Gray code encoder disk.
//
// # Overview
//
// [Layout] turns an immutable [Config] into a [Disk]: one [Track] per code
// bit, each holding the angular runs of that bit and the wedge outlines
// that print them. The most significant bit sits on the outermost track;
// every following track moves inward by TrackDistance (the track's outer
// diameter shrinks by 2*TrackDistance).
//
//	cfg := disk.Config{Bits: 6, EncoderDiameter: 80, TrackWidth: 4, TrackDistance: 5}
//	d, err := disk.Layout(cfg)
//	for _, w := range d.Wedges() {
//	    // outer track first, increasing angle within a track
//	}
//
// # Incremental rings
//
// Independently of the Gray code tracks, a disk may carry one or two
// incremental rings of Segments evenly spaced wedges. The inner ring is
// shifted by half a wedge so the two rings read in quadrature. They are
// returned in [Disk.Incremental].
//
// # Decoration
//
// Diameter and HoleDiameter describe the rim and center hole. They are
// carried on Config for renderers and never influence the layout.
package disk
