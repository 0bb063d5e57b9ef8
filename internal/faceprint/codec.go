package faceprint

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Binary record layout, little-endian:
//
//	version             int32
//	numberOfDescriptors int32
//	featuresType        int32
//	origDescriptor      [DescriptorLength]int16
//	avgDescriptor       [DescriptorLength]int16
//
// The descriptor arrays are treated as opaque fixed-size blobs; the host
// never interprets individual elements. The same record is used for the
// export/import snapshot files and for database storage.

// RecordSize is the encoded size of one template record in bytes.
const RecordSize = 3*4 + 2*DescriptorLength*2

type diskRecord struct {
	Version             int32
	NumberOfDescriptors int32
	FeaturesType        int32
	OrigDescriptor      Descriptor
	AvgDescriptor       Descriptor
}

// EncodeRecord writes the binary record for one template.
func EncodeRecord(w io.Writer, fp Faceprints) error {
	rec := diskRecord{
		Version:             int32(fp.Version),
		NumberOfDescriptors: int32(fp.NumberOfDescriptors),
		FeaturesType:        int32(fp.FeaturesType),
		OrigDescriptor:      fp.OrigDescriptor,
		AvgDescriptor:       fp.AvgDescriptor,
	}
	if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
		return fmt.Errorf("encoding faceprint record: %w", err)
	}
	return nil
}

// DecodeRecord reads one binary template record.
func DecodeRecord(r io.Reader) (Faceprints, error) {
	var rec diskRecord
	if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
		return Faceprints{}, fmt.Errorf("decoding faceprint record: %w", err)
	}
	return Faceprints{
		Version:             int(rec.Version),
		NumberOfDescriptors: int(rec.NumberOfDescriptors),
		FeaturesType:        FeaturesType(rec.FeaturesType),
		OrigDescriptor:      rec.OrigDescriptor,
		AvgDescriptor:       rec.AvgDescriptor,
	}, nil
}
